package availability

import (
	"strings"
	"time"
)

// BookingRequest is the raw client input for a new booking, before any
// normalization. Instants arrive as RFC 3339 strings; everything downstream
// of ValidateBookingRequest works with parsed UTC values only.
type BookingRequest struct {
	OrganizerID  string
	Name         string
	Email        string
	StartTimeUTC string
	EndTimeUTC   string
	UserTimezone string
}

// ValidateBookingRequest checks input shape only: required fields, email
// shape, instant syntax, ordering, and the client's zone. It returns the
// parsed candidate interval in UTC.
func ValidateBookingRequest(req BookingRequest) (Interval, error) {
	if req.Name == "" || req.Email == "" || req.StartTimeUTC == "" || req.EndTimeUTC == "" || req.UserTimezone == "" {
		return Interval{}, &FormatError{Msg: "all fields are required"}
	}
	if !strings.Contains(req.Email, "@") {
		return Interval{}, &FormatError{Msg: "invalid email"}
	}
	start, err := time.Parse(time.RFC3339, req.StartTimeUTC)
	if err != nil {
		return Interval{}, &FormatError{Msg: "invalid start/end time format"}
	}
	end, err := time.Parse(time.RFC3339, req.EndTimeUTC)
	if err != nil {
		return Interval{}, &FormatError{Msg: "invalid start/end time format"}
	}
	if !start.Before(end) {
		return Interval{}, &FormatError{Msg: "start time must be before end time"}
	}
	if _, err := LoadZone(req.UserTimezone); err != nil {
		return Interval{}, err
	}
	if req.OrganizerID == "" {
		return Interval{}, &FormatError{Msg: "organizer id is required"}
	}
	return Interval{Start: start.UTC(), End: end.UTC()}, nil
}

// ValidateSlotAvailability decides whether the candidate interval is bookable
// under the organizer's configuration: not on a blackout day, and exactly
// contained in one of the slots generated for the candidate's organizer-local
// working day. now is supplied by the caller to keep the check deterministic.
func ValidateSlotAvailability(s Settings, candidate Interval, now time.Time, trace Trace) error {
	loc, err := LoadZone(s.Timezone)
	if err != nil {
		return err
	}

	if err := CheckBlackouts(s.BlackoutDates, loc, candidate, trace); err != nil {
		return err
	}

	// The working day is the one the candidate starts on in the organizer's
	// zone; its hours resolve to a UTC window for that same local date.
	day := DateOf(candidate.Start, loc)
	hours := s.Hours[day.Weekday(loc)]
	trace.emit("slot validation", "day", day.String(), "hours", hours.String(), "candidate", candidate.String())
	if !hours.Working() {
		return &SlotUnavailableError{}
	}

	window := Interval{
		Start: day.AtMinute(hours.StartMinute, loc),
		End:   day.AtMinute(hours.EndMinute, loc),
	}
	gap := time.Duration(s.BufferBefore+s.BufferAfter) * time.Minute
	duration := time.Duration(s.MeetingDuration) * time.Minute
	minNotice := time.Duration(s.MinNotice) * time.Minute

	if !FitsSlot(Slots(window, duration, gap, minNotice, now), candidate) {
		return &SlotUnavailableError{}
	}
	return nil
}

// ValidateNoOverlap rejects the candidate if it overlaps any existing active
// booking. Intervals that merely touch at a boundary coexist.
func ValidateNoOverlap(existing []Booked, candidate Interval, trace Trace) error {
	for _, b := range existing {
		trace.emit("duplication check", "booking_id", b.ID, "interval", b.Interval.String())
		if b.Overlaps(candidate) {
			return &DuplicateBookingError{BookingID: b.ID}
		}
	}
	return nil
}
