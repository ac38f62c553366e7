package availability

import (
	"fmt"
	"strings"
)

// Validation failures are returned as typed values so handlers can translate
// them into responses with errors.As. None of them wrap other errors; each is
// a final, self-contained verdict.

// FormatError reports missing or malformed input: fields, emails, instants,
// working-hours strings, blackout dates.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return e.Msg }

// TimezoneError reports an unrecognized IANA zone name.
type TimezoneError struct {
	Zone string
}

func (e *TimezoneError) Error() string { return "invalid timezone" }

// SlotUnavailableError means the proposed interval does not exactly fit any
// generated slot. Day off, outside hours, buffer misalignment and
// insufficient notice all collapse into this single verdict.
type SlotUnavailableError struct{}

func (e *SlotUnavailableError) Error() string {
	return "selected time does not fit a slot or is outside the working hours"
}

// BlackoutConflictError reports an interval intersecting a blackout day.
// BookingID is set when the conflict was found while validating a blackout
// edit against an existing booking.
type BlackoutConflictError struct {
	Date      Date
	BookingID string
}

func (e *BlackoutConflictError) Error() string {
	if e.BookingID != "" {
		return fmt.Sprintf("booking %s conflicts with blackout date %s", e.BookingID, e.Date)
	}
	return fmt.Sprintf("the selected time is unavailable (blackout %s)", e.Date)
}

// DuplicateBookingError reports an overlap with an existing active booking.
type DuplicateBookingError struct {
	BookingID string
}

func (e *DuplicateBookingError) Error() string { return "selected time is already booked" }

// SettingsLockedError rejects a configuration edit because active bookings
// exist. The ids are carried structurally so callers can format their own
// summary.
type SettingsLockedError struct {
	BookingIDs []string
}

func (e *SettingsLockedError) Error() string {
	return "settings are locked by active bookings: " + strings.Join(e.BookingIDs, ", ")
}
