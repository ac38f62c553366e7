package availability

import (
	"errors"
	"testing"
	"time"
)

func jakartaSettings(t *testing.T) Settings {
	t.Helper()
	week, err := ParseWeekHours(map[string]string{"monday": "09:00-17:00"})
	if err != nil {
		t.Fatal(err)
	}
	return Settings{
		OrganizerID:     "org-1",
		Timezone:        "Asia/Jakarta",
		Hours:           week,
		MeetingDuration: 30,
		BufferBefore:    0,
		BufferAfter:     10,
		MinNotice:       60,
	}
}

// jak returns a UTC instant for the given Jakarta wall-clock time on
// Monday 2026-03-02 (UTC+7).
func jak(h, m int) time.Time {
	return time.Date(2026, 3, 2, h-7, m, 0, 0, time.UTC)
}

func TestValidateBookingRequest(t *testing.T) {
	ok := BookingRequest{
		OrganizerID:  "org-1",
		Name:         "Dewi",
		Email:        "dewi@example.com",
		StartTimeUTC: "2026-03-02T02:00:00Z",
		EndTimeUTC:   "2026-03-02T02:30:00Z",
		UserTimezone: "Asia/Jakarta",
	}
	cand, err := ValidateBookingRequest(ok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cand.Start.Equal(time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)) {
		t.Fatalf("candidate start = %s", cand.Start)
	}

	var fe *FormatError
	var tz *TimezoneError

	missing := ok
	missing.Name = ""
	if _, err := ValidateBookingRequest(missing); !errors.As(err, &fe) {
		t.Fatalf("missing name: got %v", err)
	}

	badEmail := ok
	badEmail.Email = "not-an-email"
	if _, err := ValidateBookingRequest(badEmail); !errors.As(err, &fe) {
		t.Fatalf("bad email: got %v", err)
	}

	badTime := ok
	badTime.StartTimeUTC = "02:00"
	if _, err := ValidateBookingRequest(badTime); !errors.As(err, &fe) {
		t.Fatalf("bad time: got %v", err)
	}

	inverted := ok
	inverted.StartTimeUTC, inverted.EndTimeUTC = ok.EndTimeUTC, ok.StartTimeUTC
	if _, err := ValidateBookingRequest(inverted); !errors.As(err, &fe) {
		t.Fatalf("inverted interval: got %v", err)
	}

	badZone := ok
	badZone.UserTimezone = "Mars/Olympus"
	if _, err := ValidateBookingRequest(badZone); !errors.As(err, &tz) {
		t.Fatalf("bad zone: got %v", err)
	}

	noOrg := ok
	noOrg.OrganizerID = ""
	if _, err := ValidateBookingRequest(noOrg); !errors.As(err, &fe) {
		t.Fatalf("missing organizer: got %v", err)
	}
}

func TestValidateSlotAvailability_ExactFit(t *testing.T) {
	s := jakartaSettings(t)
	now := jak(7, 0) // two hours before opening, notice satisfied

	// Slots run 09:00, 09:40, 10:20, ... Jakarta time.
	if err := ValidateSlotAvailability(s, Interval{jak(9, 0), jak(9, 30)}, now, nil); err != nil {
		t.Fatalf("exact 09:00-09:30 should pass: %v", err)
	}
	if err := ValidateSlotAvailability(s, Interval{jak(9, 40), jak(10, 10)}, now, nil); err != nil {
		t.Fatalf("exact 09:40-10:10 should pass: %v", err)
	}

	var unavailable *SlotUnavailableError
	err := ValidateSlotAvailability(s, Interval{jak(9, 15), jak(9, 45)}, now, nil)
	if !errors.As(err, &unavailable) {
		t.Fatalf("misaligned 09:15-09:45 should fail with SlotUnavailableError, got %v", err)
	}
}

func TestValidateSlotAvailability_MinNotice(t *testing.T) {
	s := jakartaSettings(t)
	// now = 08:30 Jakarta; 09:00 starts in 30 min, below the 60 min notice.
	now := jak(8, 30)

	var unavailable *SlotUnavailableError
	err := ValidateSlotAvailability(s, Interval{jak(9, 0), jak(9, 30)}, now, nil)
	if !errors.As(err, &unavailable) {
		t.Fatalf("insufficient notice should fail, got %v", err)
	}
	// The next slot keeps its grid position at 09:40.
	if err := ValidateSlotAvailability(s, Interval{jak(9, 40), jak(10, 10)}, now, nil); err != nil {
		t.Fatalf("09:40 slot should pass: %v", err)
	}
}

func TestValidateSlotAvailability_DayOff(t *testing.T) {
	s := jakartaSettings(t)
	// 2026-03-03 is a Tuesday with no hours configured.
	tue := time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC)
	var unavailable *SlotUnavailableError
	err := ValidateSlotAvailability(s, Interval{tue, tue.Add(30 * time.Minute)}, jak(7, 0), nil)
	if !errors.As(err, &unavailable) {
		t.Fatalf("day off should fail with SlotUnavailableError, got %v", err)
	}
}

func TestValidateSlotAvailability_Blackout(t *testing.T) {
	s := jakartaSettings(t)
	s.BlackoutDates = []Date{{2026, time.March, 2}}

	var blackout *BlackoutConflictError
	err := ValidateSlotAvailability(s, Interval{jak(9, 0), jak(9, 30)}, jak(7, 0), nil)
	if !errors.As(err, &blackout) {
		t.Fatalf("blackout day should fail with BlackoutConflictError, got %v", err)
	}
	if blackout.Date != (Date{2026, time.March, 2}) {
		t.Fatalf("error names wrong date: %+v", blackout.Date)
	}

	// The same candidate passes once the blackout moves elsewhere.
	s.BlackoutDates = []Date{{2026, time.March, 9}}
	if err := ValidateSlotAvailability(s, Interval{jak(9, 0), jak(9, 30)}, jak(7, 0), nil); err != nil {
		t.Fatalf("unrelated blackout should not block: %v", err)
	}
}

func TestValidateSlotAvailability_BadZone(t *testing.T) {
	s := jakartaSettings(t)
	s.Timezone = "Nowhere/Here"
	var tz *TimezoneError
	if err := ValidateSlotAvailability(s, Interval{jak(9, 0), jak(9, 30)}, jak(7, 0), nil); !errors.As(err, &tz) {
		t.Fatalf("expected TimezoneError, got %v", err)
	}
}

func TestValidateNoOverlap(t *testing.T) {
	existing := []Booked{
		{ID: "b-1", Interval: Interval{utc(10, 0), utc(10, 30)}},
	}

	if err := ValidateNoOverlap(existing, Interval{utc(10, 30), utc(11, 0)}, nil); err != nil {
		t.Fatalf("touching boundary must not conflict: %v", err)
	}

	var dup *DuplicateBookingError
	err := ValidateNoOverlap(existing, Interval{utc(10, 15), utc(10, 45)}, nil)
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateBookingError, got %v", err)
	}
	if dup.BookingID != "b-1" {
		t.Fatalf("conflict names booking %q", dup.BookingID)
	}

	if err := ValidateNoOverlap(nil, Interval{utc(10, 0), utc(11, 0)}, nil); err != nil {
		t.Fatalf("no bookings should pass: %v", err)
	}
}

func TestTraceHookObservesSteps(t *testing.T) {
	s := jakartaSettings(t)
	s.BlackoutDates = []Date{{2026, time.March, 9}}

	var events []string
	trace := Trace(func(event string, _ ...any) { events = append(events, event) })
	if err := ValidateSlotAvailability(s, Interval{jak(9, 0), jak(9, 30)}, jak(7, 0), trace); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("trace hook was never invoked")
	}
}
