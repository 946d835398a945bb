package arogo

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/arogo-health/arogo-go/pkg/core/schedule"
)

// AppointmentsService books and manages appointments.
type AppointmentsService struct {
	client *Client
}

// Appointment is one booked consultation.
type Appointment struct {
	ID        string `json:"id"`
	DoctorID  string `json:"doctor_id"`
	PatientID string `json:"patient_id"`
	Date      string `json:"date"` // e.g. "1_6_2025"
	Time      string `json:"time"` // e.g. "12:00 PM"
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// BookRequest creates an appointment at a generated slot.
type BookRequest struct {
	DoctorID  string `json:"doctor_id"`
	PatientID string `json:"patient_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason,omitempty"`
}

// Book creates an appointment.
func (s *AppointmentsService) Book(ctx context.Context, req *BookRequest) (*Appointment, error) {
	if req == nil {
		return nil, NewInvalidRequestError("req must not be nil")
	}
	if req.DoctorID == "" {
		return nil, NewInvalidRequestError("doctor_id is required")
	}
	if req.Date == "" || req.Time == "" {
		return nil, NewInvalidRequestError("date and time are required")
	}

	var appt Appointment
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/appointments", req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Cancel cancels an appointment by id.
func (s *AppointmentsService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return NewInvalidRequestError("id is required")
	}
	return s.client.doJSON(ctx, http.MethodDelete, "/v1/appointments/"+url.PathEscape(id), nil, nil)
}

type appointmentList struct {
	Appointments []Appointment `json:"appointments"`
}

// List returns the caller's appointments.
func (s *AppointmentsService) List(ctx context.Context) ([]Appointment, error) {
	var list appointmentList
	if err := s.client.doJSON(ctx, http.MethodGet, "/v1/appointments", nil, &list); err != nil {
		return nil, err
	}
	return list.Appointments, nil
}

type bookedSlotList struct {
	Booked []bookedSlot `json:"booked"`
}

type bookedSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Availability fetches a doctor's existing bookings and enumerates the open
// slots for the next seven days, today first. Slot generation itself is pure
// and local; only the booked set comes from the backend.
func (s *AppointmentsService) Availability(ctx context.Context, doctorID string) ([]schedule.DaySlots, error) {
	return s.AvailabilityAt(ctx, doctorID, time.Now())
}

// AvailabilityAt is Availability with an explicit "now", mainly for tests and
// deterministic rendering.
func (s *AppointmentsService) AvailabilityAt(ctx context.Context, doctorID string, now time.Time) ([]schedule.DaySlots, error) {
	if doctorID == "" {
		return nil, NewInvalidRequestError("doctorID is required")
	}

	var list bookedSlotList
	path := "/v1/doctors/" + url.PathEscape(doctorID) + "/bookings"
	if err := s.client.doJSON(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}

	booked := make(schedule.BookedSet, len(list.Booked))
	for _, b := range list.Booked {
		booked[[2]string{b.Date, b.Time}] = struct{}{}
	}
	return schedule.Generate(now, booked), nil
}
