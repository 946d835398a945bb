package arogo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentsBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/appointments", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "clinic-7", r.Header.Get("X-Arogo-Tenant"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req BookRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "doc-1", req.DoctorID)
		assert.Equal(t, "1_6_2025", req.Date)

		json.NewEncoder(w).Encode(Appointment{
			ID:       "appt-42",
			DoctorID: req.DoctorID,
			Date:     req.Date,
			Time:     req.Time,
			Status:   "confirmed",
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithToken("test-token"), WithTenant("clinic-7"))

	appt, err := client.Appointments.Book(context.Background(), &BookRequest{
		DoctorID:  "doc-1",
		PatientID: "pat-9",
		Date:      "1_6_2025",
		Time:      "12:00 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, "appt-42", appt.ID)
	assert.Equal(t, "confirmed", appt.Status)
}

func TestAppointmentsBookValidation(t *testing.T) {
	client := NewClient(WithBaseURL("http://unused"))

	_, err := client.Appointments.Book(context.Background(), nil)
	require.Error(t, err)

	_, err = client.Appointments.Book(context.Background(), &BookRequest{Date: "1_6_2025", Time: "12:00 PM"})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrInvalidRequest, apiErr.Type)
}

func TestAppointmentsCancel(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	require.NoError(t, client.Appointments.Cancel(context.Background(), "appt-42"))
	assert.Equal(t, "/v1/appointments/appt-42", gotPath)
}

func TestAppointmentsAvailability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/doctors/doc-1/bookings", r.URL.Path)
		w.Write([]byte(`{"booked":[{"date":"1_6_2025","time":"12:00 PM"}]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	now := time.Date(2025, time.June, 1, 11, 15, 0, 0, time.UTC)

	days, err := client.Appointments.AvailabilityAt(context.Background(), "doc-1", now)
	require.NoError(t, err)
	require.Len(t, days, 7)

	// 12:00 PM is booked, so today starts at 12:30 PM.
	require.NotEmpty(t, days[0].Slots)
	assert.Equal(t, "12:30 PM", days[0].Slots[0].TimeKey)
	assert.Equal(t, "10:00 AM", days[1].Slots[0].TimeKey)
}

func TestAppointmentsListNotFoundMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found_error","message":"no appointments"}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	_, err := client.Appointments.List(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrNotFound, apiErr.Type)
	assert.Equal(t, "no appointments", apiErr.Message)
}
