package model

import (
	"time"

	"github.com/semmysuihana/meeting-scheduler-backend/internal/availability"
)

// Organizer is the owner of a bookable calendar.
type Organizer struct {
	ID        string
	Name      string
	Email     string
	Timezone  string
	CreatedAt time.Time
}

// Settings is the persisted organizer configuration: the numeric knobs plus
// the weekly hours and blackout days loaded from their side tables.
type Settings struct {
	OrganizerID     string
	MeetingDuration int
	BufferBefore    int
	BufferAfter     int
	MinNotice       int
	Hours           availability.WeekHours
	BlackoutDates   []availability.Date
	UpdatedAt       time.Time
}

// Booking statuses. Anything else is a collaborator-defined terminal state;
// the engine only distinguishes booked from not-booked.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Booking is one reserved meeting slot. Instants are UTC; the attendee's
// zone is advisory display data and never feeds conflict logic.
type Booking struct {
	ID           string
	OrganizerID  string
	Name         string
	Email        string
	SlotStartUTC time.Time
	SlotEndUTC   time.Time
	UserTimezone string
	Status       string
	CreatedAt    time.Time
}

// Interval returns the booking's reserved span as an engine interval.
func (b Booking) Interval() availability.Interval {
	return availability.Interval{Start: b.SlotStartUTC, End: b.SlotEndUTC}
}

// Booked converts bookings into the minimal view the engine checks against.
func Booked(bookings []Booking) []availability.Booked {
	out := make([]availability.Booked, len(bookings))
	for i, b := range bookings {
		out[i] = availability.Booked{ID: b.ID, Interval: b.Interval()}
	}
	return out
}
