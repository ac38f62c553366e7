package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/semmysuihana/meeting-scheduler-backend/internal/availability"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/httpx"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/model"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/outbox"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/storage"
)

// Handler owns the HTTP surface. Business-rule rejections ride a 200 with an
// error field, malformed input is 400, a missing organizer 404, storage
// failures 500.
type Handler struct {
	organizers *storage.OrganizerRepository
	bookings   *storage.BookingRepository
	outbox     *outbox.Repository
	logger     *slog.Logger
}

func New(organizers *storage.OrganizerRepository, bookings *storage.BookingRepository, outboxRepo *outbox.Repository, logger *slog.Logger) *Handler {
	return &Handler{
		organizers: organizers,
		bookings:   bookings,
		outbox:     outboxRepo,
		logger:     logger,
	}
}

// trace adapts slog debug logging into the engine's observability hook,
// keyed by the request id. Validation stays silent unless debug is on.
func (h *Handler) trace(r *http.Request) availability.Trace {
	if !h.logger.Enabled(r.Context(), slog.LevelDebug) {
		return nil
	}
	requestID := httpx.RequestIDFromContext(r.Context())
	return func(event string, args ...any) {
		h.logger.Debug(event, append([]any{"request_id", requestID}, args...)...)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// engineSettings assembles the engine's view of an organizer configuration.
func engineSettings(o model.Organizer, s model.Settings) availability.Settings {
	return availability.Settings{
		OrganizerID:     o.ID,
		Timezone:        o.Timezone,
		Hours:           s.Hours,
		MeetingDuration: s.MeetingDuration,
		BufferBefore:    s.BufferBefore,
		BufferAfter:     s.BufferAfter,
		MinNotice:       s.MinNotice,
		BlackoutDates:   s.BlackoutDates,
	}
}

type organizerPayload struct {
	OrganizerID            string            `json:"organizer_id"`
	Name                   string            `json:"name"`
	Email                  string            `json:"email"`
	Timezone               string            `json:"timezone"`
	WorkingHours           map[string]string `json:"working_hours"`
	MeetingDurationMinutes int               `json:"meeting_duration_minutes"`
	BufferBeforeMinutes    int               `json:"buffer_before_minutes"`
	BufferAfterMinutes     int               `json:"buffer_after_minutes"`
	MinNoticeMinutes       int               `json:"min_notice_minutes"`
	BlackoutDates          []string          `json:"blackout_dates"`
}

func toOrganizerPayload(o model.Organizer, s model.Settings) organizerPayload {
	blackouts := make([]string, len(s.BlackoutDates))
	for i, d := range s.BlackoutDates {
		blackouts[i] = d.String()
	}
	return organizerPayload{
		OrganizerID:            o.ID,
		Name:                   o.Name,
		Email:                  o.Email,
		Timezone:               o.Timezone,
		WorkingHours:           s.Hours.Map(),
		MeetingDurationMinutes: s.MeetingDuration,
		BufferBeforeMinutes:    s.BufferBefore,
		BufferAfterMinutes:     s.BufferAfter,
		MinNoticeMinutes:       s.MinNotice,
		BlackoutDates:          blackouts,
	}
}
