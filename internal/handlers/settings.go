package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/availability"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/model"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/outbox"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/storage"
)

type generalSettingsRequest struct {
	OrganizerID     string `json:"organizer_id"`
	Name            string `json:"name"`
	Timezone        string `json:"timezone"`
	MeetingDuration int    `json:"meeting_duration_minutes"`
	BufferBefore    int    `json:"buffer_before_minutes"`
	BufferAfter     int    `json:"buffer_after_minutes"`
	MinNotice       int    `json:"min_notice_minutes"`
}

// UpdateGeneralSettings serves PUT /settings/general. The edit is refused
// outright while active bookings exist; the response lists them so the
// dashboard can show which ones block the change.
func (h *Handler) UpdateGeneralSettings(w http.ResponseWriter, r *http.Request) {
	var req generalSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.OrganizerID = strings.TrimSpace(req.OrganizerID)
	req.Name = strings.TrimSpace(req.Name)
	if req.OrganizerID == "" {
		writeError(w, http.StatusBadRequest, "organizer_id is required")
		return
	}

	ctx := r.Context()
	active, err := h.bookings.ListActive(ctx, req.OrganizerID, time.Now().UTC(), "")
	if err != nil {
		h.logger.Error("list active bookings failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	general := availability.GeneralSettings{
		Name:            req.Name,
		Timezone:        req.Timezone,
		MeetingDuration: req.MeetingDuration,
		BufferBefore:    req.BufferBefore,
		BufferAfter:     req.BufferAfter,
		MinNotice:       req.MinNotice,
	}
	if err := availability.ValidateGeneralSettings(general, model.Booked(active)); err != nil {
		h.writeSettingsError(w, err)
		return
	}

	h.applySettingsUpdate(w, r, req.OrganizerID, "general", func(tx pgx.Tx) error {
		return h.organizers.UpdateGeneral(r.Context(), tx, req.OrganizerID, general)
	})
}

type workingHoursRequest struct {
	OrganizerID  string            `json:"organizer_id"`
	WorkingHours map[string]string `json:"working_hours"`
}

// UpdateWorkingHours serves PUT /settings/working-hours.
func (h *Handler) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req workingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.OrganizerID = strings.TrimSpace(req.OrganizerID)
	if req.OrganizerID == "" {
		writeError(w, http.StatusBadRequest, "organizer_id is required")
		return
	}

	ctx := r.Context()
	if _, _, err := h.organizers.Get(ctx, req.OrganizerID); err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "organizer not found")
			return
		}
		h.logger.Error("get organizer failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	active, err := h.bookings.ListActive(ctx, req.OrganizerID, time.Now().UTC(), "")
	if err != nil {
		h.logger.Error("list active bookings failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	week, err := availability.ValidateWorkingHoursUpdate(req.WorkingHours, model.Booked(active))
	if err != nil {
		h.writeSettingsError(w, err)
		return
	}

	h.applySettingsUpdate(w, r, req.OrganizerID, "working_hours", func(tx pgx.Tx) error {
		return h.organizers.ReplaceWorkingHours(r.Context(), tx, req.OrganizerID, week)
	})
}

type blackoutsRequest struct {
	OrganizerID   string   `json:"organizer_id"`
	BlackoutDates []string `json:"blackout_dates"`
}

// UpdateBlackouts serves PUT /settings/blackouts. Blackout edits are allowed
// while bookings exist, as long as none of the new days covers a booked slot.
func (h *Handler) UpdateBlackouts(w http.ResponseWriter, r *http.Request) {
	var req blackoutsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.OrganizerID = strings.TrimSpace(req.OrganizerID)
	if req.OrganizerID == "" {
		writeError(w, http.StatusBadRequest, "organizer_id is required")
		return
	}

	ctx := r.Context()
	o, _, err := h.organizers.Get(ctx, req.OrganizerID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "organizer not found")
			return
		}
		h.logger.Error("get organizer failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	active, err := h.bookings.ListActive(ctx, req.OrganizerID, time.Now().UTC(), "")
	if err != nil {
		h.logger.Error("list active bookings failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	dates, err := availability.ValidateBlackoutsUpdate(req.BlackoutDates, model.Booked(active), o.Timezone)
	if err != nil {
		h.writeSettingsError(w, err)
		return
	}

	h.applySettingsUpdate(w, r, req.OrganizerID, "blackouts", func(tx pgx.Tx) error {
		return h.organizers.ReplaceBlackouts(r.Context(), tx, req.OrganizerID, dates)
	})
}

// writeSettingsError maps engine verdicts on a settings edit: shape problems
// are 400, business refusals 200 with structured detail.
func (h *Handler) writeSettingsError(w http.ResponseWriter, err error) {
	var formatErr *availability.FormatError
	var tzErr *availability.TimezoneError
	var lockedErr *availability.SettingsLockedError
	var blackoutErr *availability.BlackoutConflictError
	switch {
	case errors.As(err, &formatErr), errors.As(err, &tzErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &lockedErr):
		writeJSON(w, http.StatusOK, map[string]any{
			"error":       err.Error(),
			"booking_ids": lockedErr.BookingIDs,
		})
	case errors.As(err, &blackoutErr):
		writeJSON(w, http.StatusOK, map[string]any{
			"error":      err.Error(),
			"date":       blackoutErr.Date.String(),
			"booking_id": blackoutErr.BookingID,
		})
	default:
		h.logger.Error("settings validation failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update data")
	}
}

// applySettingsUpdate runs a validated settings write plus its outbox event in
// one transaction.
func (h *Handler) applySettingsUpdate(w http.ResponseWriter, r *http.Request, organizerID, section string, apply func(tx pgx.Tx) error) {
	ctx := r.Context()
	tx, err := h.organizers.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := apply(tx); err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "organizer not found")
			return
		}
		h.logger.Error("settings update failed", "section", section, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update data")
		return
	}

	payload, err := json.Marshal(map[string]any{
		"organizer_id": organizerID,
		"section":      section,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build event payload")
		return
	}
	if err := h.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "organizer",
		AggregateID:   organizerID,
		EventType:     outbox.EventSettingsUpdated,
		Payload:       payload,
	}); err != nil {
		h.logger.Error("outbox insert failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update data")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update data")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": "settings updated"})
}
