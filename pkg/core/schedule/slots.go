// Package schedule enumerates bookable appointment slots.
//
// Generation is a pure function of "now" and the doctor's booked set, so the
// calendar can be recomputed at any time without holding state.
package schedule

import (
	"fmt"
	"time"
)

const (
	// Horizon is the number of days covered, today first.
	Horizon = 7

	// OpeningHour is the earliest bookable hour of a day.
	OpeningHour = 10

	// ClosingHour is the daily cutoff; no slot starts at or after it.
	ClosingHour = 21

	// SlotInterval is the spacing between consecutive slots.
	SlotInterval = 30 * time.Minute
)

// Slot is one bookable instant. Slots have no identity beyond (date, time).
type Slot struct {
	Start   time.Time
	DateKey string
	TimeKey string
}

// DaySlots holds the ordered open slots for a single day.
type DaySlots struct {
	Date  time.Time
	Slots []Slot
}

// BookedSet indexes a doctor's existing bookings by (date key, time key).
type BookedSet map[[2]string]struct{}

// NewBookedSet builds a BookedSet from (dateKey, timeKey) pairs.
func NewBookedSet(pairs ...[2]string) BookedSet {
	set := make(BookedSet, len(pairs))
	for _, p := range pairs {
		set[p] = struct{}{}
	}
	return set
}

// Contains reports whether the given slot is already booked.
func (s BookedSet) Contains(dateKey, timeKey string) bool {
	_, ok := s[[2]string{dateKey, timeKey}]
	return ok
}

// DateKey formats the booking date key, e.g. "1_6_2025" for June 1st 2025.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d", t.Day(), int(t.Month()), t.Year())
}

// TimeKey formats the booking time key on the 12-hour clock, e.g. "12:00 PM".
func TimeKey(t time.Time) string {
	return t.Format("3:04 PM")
}

// Generate enumerates the open slots for the next Horizon days.
//
// Every day runs from 10:00 to the 21:00 closing in 30-minute steps. For
// today the cursor floor moves with the clock: past 10:00 the first slot is
// the next full hour, pushed to :30 when more than half of the current hour
// has passed. Days may come back empty once today is past closing.
func Generate(now time.Time, booked BookedSet) []DaySlots {
	days := make([]DaySlots, 0, Horizon)

	for i := 0; i < Horizon; i++ {
		day := now.AddDate(0, 0, i)
		closing := time.Date(day.Year(), day.Month(), day.Day(), ClosingHour, 0, 0, 0, day.Location())

		cursor := time.Date(day.Year(), day.Month(), day.Day(), OpeningHour, 0, 0, 0, day.Location())
		if i == 0 && now.Hour() > OpeningHour {
			minute := 0
			if now.Minute() > 30 {
				minute = 30
			}
			cursor = time.Date(day.Year(), day.Month(), day.Day(), now.Hour()+1, minute, 0, 0, day.Location())
		}

		out := DaySlots{Date: day}
		for cursor.Before(closing) {
			dateKey, timeKey := DateKey(cursor), TimeKey(cursor)
			if !booked.Contains(dateKey, timeKey) {
				out.Slots = append(out.Slots, Slot{Start: cursor, DateKey: dateKey, TimeKey: timeKey})
			}
			cursor = cursor.Add(SlotInterval)
		}
		days = append(days, out)
	}

	return days
}
