package availability

import (
	"fmt"
	"strings"
	"time"
)

// DayHours is a single availability range for one weekday, expressed as
// minutes since local midnight. The zero value means the day is off.
type DayHours struct {
	StartMinute int
	EndMinute   int
}

// Working reports whether the day has any availability.
func (d DayHours) Working() bool { return d.EndMinute > d.StartMinute }

func (d DayHours) String() string {
	if !d.Working() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		d.StartMinute/60, d.StartMinute%60, d.EndMinute/60, d.EndMinute%60)
}

// WeekHours maps every weekday to its availability range, indexed by
// time.Weekday. A fixed-size array keeps invalid weekday keys unrepresentable
// in the core.
type WeekHours [7]DayHours

// weekdayNames are the only keys accepted in a working-hours update payload.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDayRange parses "HH:MM-HH:MM" into a DayHours. The empty string is a
// valid day off. Each half must be an exact two-digit wall clock (hours
// 00-23, minutes 00-59) and the start must come strictly before the end.
func ParseDayRange(s string) (DayHours, error) {
	if s == "" {
		return DayHours{}, nil
	}
	from, to, found := strings.Cut(s, "-")
	if !found {
		return DayHours{}, &FormatError{Msg: "invalid working hours range: " + s}
	}
	start, ok := parseWallMinute(from)
	if !ok {
		return DayHours{}, &FormatError{Msg: "invalid working hours range: " + s}
	}
	end, ok := parseWallMinute(to)
	if !ok {
		return DayHours{}, &FormatError{Msg: "invalid working hours range: " + s}
	}
	if start >= end {
		return DayHours{}, &FormatError{Msg: "working hours start must be before end: " + s}
	}
	return DayHours{StartMinute: start, EndMinute: end}, nil
}

// parseWallMinute parses an exact "HH:MM" into minutes since local midnight.
// The length check closes time.Parse's tolerance for one-digit hours.
func parseWallMinute(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// ParseWeekHours parses a weekday-name keyed map of range strings. Only the
// seven lowercase weekday names are accepted as keys; missing days are days
// off. An empty map is rejected.
func ParseWeekHours(raw map[string]string) (WeekHours, error) {
	var week WeekHours
	if len(raw) == 0 {
		return week, &FormatError{Msg: "working hours must not be empty"}
	}
	for name, rangeStr := range raw {
		wd, ok := weekdayNames[name]
		if !ok {
			return WeekHours{}, &FormatError{Msg: "unknown weekday: " + name}
		}
		day, err := ParseDayRange(rangeStr)
		if err != nil {
			return WeekHours{}, err
		}
		week[wd] = day
	}
	return week, nil
}

// Map renders the week back into the weekday-name keyed wire shape. Days off
// are emitted as empty strings so clients see all seven keys.
func (w WeekHours) Map() map[string]string {
	out := make(map[string]string, 7)
	for name, wd := range weekdayNames {
		out[name] = w[wd].String()
	}
	return out
}
