package availability

import "fmt"

// Bounds for the numeric organizer settings.
const (
	MinMeetingDuration = 30
	MaxMeetingDuration = 240
	MaxBufferMinutes   = 60
	MaxNoticeMinutes   = 120
)

// Settings is the organizer configuration the engine validates bookings
// against. All fields are already materialized by the caller; the engine
// performs no loading of its own.
type Settings struct {
	OrganizerID     string
	Timezone        string
	Hours           WeekHours
	MeetingDuration int // minutes
	BufferBefore    int // minutes
	BufferAfter     int // minutes
	MinNotice       int // minutes
	BlackoutDates   []Date
}

// GeneralSettings carries the fields of a general settings edit.
type GeneralSettings struct {
	Name            string
	Timezone        string
	MeetingDuration int
	BufferBefore    int
	BufferAfter     int
	MinNotice       int
}

// Booked is the minimal view of an existing booking the engine needs for
// conflict checks.
type Booked struct {
	ID string
	Interval
}

func ids(bookings []Booked) []string {
	out := make([]string, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID
	}
	return out
}

// ValidateGeneralSettings checks a general settings edit against the static
// rules and against the organizer's active bookings. Any active booking locks
// the edit out entirely.
func ValidateGeneralSettings(g GeneralSettings, active []Booked) error {
	if g.Name == "" {
		return &FormatError{Msg: "name is required"}
	}
	if g.MeetingDuration < MinMeetingDuration || g.MeetingDuration > MaxMeetingDuration {
		return &FormatError{Msg: fmt.Sprintf("meeting duration must be between %d and %d minutes", MinMeetingDuration, MaxMeetingDuration)}
	}
	if g.BufferBefore < 0 || g.BufferBefore > MaxBufferMinutes {
		return &FormatError{Msg: fmt.Sprintf("buffer before must be between 0 and %d minutes", MaxBufferMinutes)}
	}
	if g.BufferAfter < 0 || g.BufferAfter > MaxBufferMinutes {
		return &FormatError{Msg: fmt.Sprintf("buffer after must be between 0 and %d minutes", MaxBufferMinutes)}
	}
	if g.MinNotice < 0 || g.MinNotice > MaxNoticeMinutes {
		return &FormatError{Msg: fmt.Sprintf("minimum notice must be between 0 and %d minutes", MaxNoticeMinutes)}
	}
	if _, err := LoadZone(g.Timezone); err != nil {
		return err
	}
	if len(active) > 0 {
		return &SettingsLockedError{BookingIDs: ids(active)}
	}
	return nil
}

// ValidateWorkingHoursUpdate checks a working-hours edit. The map must be
// keyed only by the seven weekday names, non-empty, with every entry parsing
// per the range grammar or empty. Active bookings lock the edit out.
func ValidateWorkingHoursUpdate(raw map[string]string, active []Booked) (WeekHours, error) {
	week, err := ParseWeekHours(raw)
	if err != nil {
		return WeekHours{}, err
	}
	if len(active) > 0 {
		return WeekHours{}, &SettingsLockedError{BookingIDs: ids(active)}
	}
	return week, nil
}

// ValidateBlackoutsUpdate checks a blackout-list edit. Unlike the other two
// edits this one is allowed while bookings exist, as long as no booked
// interval falls on one of the new blackout days.
func ValidateBlackoutsUpdate(dates []string, active []Booked, zone string) ([]Date, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return nil, err
	}
	parsed := make([]Date, 0, len(dates))
	for _, s := range dates {
		d, err := ParseDate(s)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, d)
	}
	for _, b := range active {
		for _, d := range parsed {
			if d.DayBounds(loc).Overlaps(b.Interval) {
				return nil, &BlackoutConflictError{Date: d, BookingID: b.ID}
			}
		}
	}
	return parsed, nil
}
