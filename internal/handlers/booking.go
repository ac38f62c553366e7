package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/semmysuihana/meeting-scheduler-backend/internal/availability"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/model"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/outbox"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/storage"
)

type createBookingRequest struct {
	OrganizerID  string `json:"organizer_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	StartTimeUTC string `json:"start_time_utc"`
	EndTimeUTC   string `json:"end_time_utc"`
	UserTimezone string `json:"user_timezone"`
}

// CreateBooking serves POST /book: the full validation pipeline followed by
// the insert. Input-shape failures are 400; every business-rule rejection is
// a 200 carrying the reason for the client to display.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.OrganizerID = strings.TrimSpace(req.OrganizerID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	candidate, err := availability.ValidateBookingRequest(availability.BookingRequest{
		OrganizerID:  req.OrganizerID,
		Name:         req.Name,
		Email:        req.Email,
		StartTimeUTC: req.StartTimeUTC,
		EndTimeUTC:   req.EndTimeUTC,
		UserTimezone: req.UserTimezone,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	o, s, err := h.organizers.Get(ctx, req.OrganizerID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "organizer not found")
			return
		}
		h.logger.Error("get organizer failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	now := time.Now().UTC()
	trace := h.trace(r)
	if err := availability.ValidateSlotAvailability(engineSettings(o, s), candidate, now, trace); err != nil {
		writeError(w, http.StatusOK, err.Error())
		return
	}

	active, err := h.bookings.ListActive(ctx, req.OrganizerID, now, "")
	if err != nil {
		h.logger.Error("list active bookings failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}
	if err := availability.ValidateNoOverlap(model.Booked(active), candidate, trace); err != nil {
		writeError(w, http.StatusOK, err.Error())
		return
	}

	tx, err := h.bookings.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	booking := &model.Booking{
		OrganizerID:  req.OrganizerID,
		Name:         req.Name,
		Email:        req.Email,
		SlotStartUTC: candidate.Start,
		SlotEndUTC:   candidate.End,
		UserTimezone: req.UserTimezone,
		Status:       model.StatusBooked,
	}
	id, err := h.bookings.Create(ctx, tx, booking)
	if err != nil {
		if storage.IsConflict(err) {
			// Lost the check-then-act race; the exclusion constraint held.
			writeError(w, http.StatusOK, "selected time is already booked")
			return
		}
		h.logger.Error("insert booking failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to insert data")
		return
	}

	payload, err := json.Marshal(map[string]any{
		"booking_id":     id,
		"organizer_id":   req.OrganizerID,
		"email":          req.Email,
		"start_time_utc": candidate.Start.Format(time.RFC3339),
		"end_time_utc":   candidate.End.Format(time.RFC3339),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build event payload")
		return
	}
	if err := h.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   id,
		EventType:     outbox.EventBookingCreated,
		Payload:       payload,
	}); err != nil {
		h.logger.Error("outbox insert failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to insert data")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusOK, "selected time is already booked")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to insert data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    "booking created",
		"booking_id": id,
	})
}

type updateStatusRequest struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// UpdateBookingStatus serves POST /book/status. Moving a booking back into
// booked re-enters the whole pipeline as if it were new, minus the
// comparison against itself; leaving booked needs no validation.
func (h *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.BookingID = strings.TrimSpace(req.BookingID)
	req.Status = strings.TrimSpace(req.Status)
	if req.BookingID == "" || req.Status == "" {
		writeError(w, http.StatusBadRequest, "booking_id and status are required")
		return
	}

	ctx := r.Context()
	tx, err := h.bookings.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	booking, err := h.bookings.GetForUpdate(ctx, tx, req.BookingID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		h.logger.Error("load booking failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	if req.Status == model.StatusBooked && booking.Status != model.StatusBooked {
		if err := h.revalidate(r, booking); err != nil {
			if !isEngineVerdict(err) {
				if storage.IsNotFound(err) {
					writeError(w, http.StatusNotFound, "organizer not found")
					return
				}
				h.logger.Error("revalidation failed", "err", err)
				writeError(w, http.StatusInternalServerError, "failed to get data")
				return
			}
			writeError(w, http.StatusOK, err.Error())
			return
		}
	}

	if err := h.bookings.UpdateStatus(ctx, tx, booking.ID, req.Status); err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusOK, "selected time is already booked")
			return
		}
		h.logger.Error("update status failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update data")
		return
	}

	payload, err := json.Marshal(map[string]any{
		"booking_id":   booking.ID,
		"organizer_id": booking.OrganizerID,
		"old_status":   booking.Status,
		"new_status":   req.Status,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build event payload")
		return
	}
	if err := h.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   booking.ID,
		EventType:     outbox.EventBookingStatus,
		Payload:       payload,
	}); err != nil {
		h.logger.Error("outbox insert failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update data")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusOK, "selected time is already booked")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    "status updated",
		"booking_id": booking.ID,
		"status":     req.Status,
	})
}

// isEngineVerdict distinguishes validation rejections from infrastructure
// failures, which must stay 500s.
func isEngineVerdict(err error) bool {
	var (
		formatErr    *availability.FormatError
		tzErr        *availability.TimezoneError
		slotErr      *availability.SlotUnavailableError
		blackoutErr  *availability.BlackoutConflictError
		duplicateErr *availability.DuplicateBookingError
	)
	return errors.As(err, &formatErr) || errors.As(err, &tzErr) ||
		errors.As(err, &slotErr) || errors.As(err, &blackoutErr) ||
		errors.As(err, &duplicateErr)
}

// revalidate runs pipeline steps 2-5 for a booking returning to booked.
func (h *Handler) revalidate(r *http.Request, booking model.Booking) error {
	ctx := r.Context()
	o, s, err := h.organizers.Get(ctx, booking.OrganizerID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	trace := h.trace(r)
	if err := availability.ValidateSlotAvailability(engineSettings(o, s), booking.Interval(), now, trace); err != nil {
		return err
	}
	active, err := h.bookings.ListActive(ctx, booking.OrganizerID, now, booking.ID)
	if err != nil {
		return err
	}
	return availability.ValidateNoOverlap(model.Booked(active), booking.Interval(), trace)
}
