package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/semmysuihana/meeting-scheduler-backend/internal/availability"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/model"
)

func testHandler() *Handler {
	return &Handler{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not json: %v", err)
	}
	return body
}

func TestSettingsErrorFormatIs400(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().writeSettingsError(rec, &availability.FormatError{Msg: "name is required"})
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "name is required" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSettingsErrorTimezoneIs400(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().writeSettingsError(rec, &availability.TimezoneError{Zone: "Mars/Olympus"})
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSettingsErrorLockedIs200WithIDs(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().writeSettingsError(rec, &availability.SettingsLockedError{BookingIDs: []string{"b-1", "b-2"}})
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] == "" {
		t.Fatal("expected error message")
	}
	ids, ok := body["booking_ids"].([]any)
	if !ok || len(ids) != 2 {
		t.Fatalf("expected two booking ids, got %v", body["booking_ids"])
	}
}

func TestSettingsErrorBlackoutIs200WithDate(t *testing.T) {
	rec := httptest.NewRecorder()
	conflict := &availability.BlackoutConflictError{
		Date:      availability.Date{Year: 2026, Month: time.December, Day: 25},
		BookingID: "b-7",
	}
	testHandler().writeSettingsError(rec, conflict)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["date"] != "2026-12-25" {
		t.Fatalf("expected date 2026-12-25, got %v", body["date"])
	}
	if body["booking_id"] != "b-7" {
		t.Fatalf("expected booking id b-7, got %v", body["booking_id"])
	}
}

func TestOrganizerPayloadRendersAllSevenDays(t *testing.T) {
	o := model.Organizer{ID: "org-1", Name: "Dewi", Email: "dewi@example.com", Timezone: "Asia/Jakarta"}
	s := model.Settings{
		MeetingDuration: 30,
		BufferBefore:    5,
		BufferAfter:     5,
		MinNotice:       60,
		BlackoutDates: []availability.Date{
			{Year: 2026, Month: time.August, Day: 17},
		},
	}
	s.Hours[time.Monday] = availability.DayHours{StartMinute: 9 * 60, EndMinute: 17 * 60}

	p := toOrganizerPayload(o, s)
	if len(p.WorkingHours) != 7 {
		t.Fatalf("expected 7 weekday entries, got %d", len(p.WorkingHours))
	}
	if p.WorkingHours["monday"] != "09:00-17:00" {
		t.Fatalf("unexpected monday hours: %q", p.WorkingHours["monday"])
	}
	if p.WorkingHours["sunday"] != "" {
		t.Fatalf("expected sunday off, got %q", p.WorkingHours["sunday"])
	}
	if len(p.BlackoutDates) != 1 || p.BlackoutDates[0] != "2026-08-17" {
		t.Fatalf("unexpected blackouts: %v", p.BlackoutDates)
	}
}

func TestEngineVerdictClassification(t *testing.T) {
	verdicts := []error{
		&availability.FormatError{Msg: "bad"},
		&availability.TimezoneError{Zone: "x"},
		&availability.SlotUnavailableError{},
		&availability.BlackoutConflictError{Date: availability.Date{Year: 2026, Month: time.May, Day: 1}},
		&availability.DuplicateBookingError{BookingID: "b-1"},
	}
	for _, err := range verdicts {
		if !isEngineVerdict(err) {
			t.Errorf("%T should be an engine verdict", err)
		}
	}
	if isEngineVerdict(errors.New("connection refused")) {
		t.Error("infrastructure error misclassified as engine verdict")
	}
}

func TestEngineSettingsCarriesZoneAndKnobs(t *testing.T) {
	o := model.Organizer{ID: "org-1", Timezone: "Asia/Jakarta"}
	s := model.Settings{MeetingDuration: 45, BufferBefore: 10, BufferAfter: 0, MinNotice: 30}
	got := engineSettings(o, s)
	if got.OrganizerID != "org-1" || got.Timezone != "Asia/Jakarta" {
		t.Fatalf("identity fields lost: %+v", got)
	}
	if got.MeetingDuration != 45 || got.BufferBefore != 10 || got.MinNotice != 30 {
		t.Fatalf("knobs lost: %+v", got)
	}
}
