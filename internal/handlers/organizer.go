package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/semmysuihana/meeting-scheduler-backend/internal/storage"
)

// ListOrganizers serves GET /: every organizer with its bookable
// configuration.
func (h *Handler) ListOrganizers(w http.ResponseWriter, r *http.Request) {
	organizers, settings, err := h.organizers.List(r.Context())
	if err != nil {
		h.logger.Error("list organizers failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	payload := make([]organizerPayload, len(organizers))
	for i := range organizers {
		payload[i] = toOrganizerPayload(organizers[i], settings[i])
	}
	writeJSON(w, http.StatusOK, payload)
}

// GetOrganizer serves GET /book/{id}: one organizer's configuration, the
// data a booking page renders.
func (h *Handler) GetOrganizer(w http.ResponseWriter, r *http.Request) {
	o, s, err := h.organizers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "organizer not found")
			return
		}
		h.logger.Error("get organizer failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}
	writeJSON(w, http.StatusOK, toOrganizerPayload(o, s))
}

type bookingPayload struct {
	BookingID    string `json:"booking_id"`
	OrganizerID  string `json:"organizer_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	StartTimeUTC string `json:"start_time_utc"`
	EndTimeUTC   string `json:"end_time_utc"`
	UserTimezone string `json:"user_timezone"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// ListBookings serves GET /bookings/{id}: the organizer's upcoming booked
// appointments. ?status=all widens to every status and attaches the
// organizer configuration, for the dashboard read.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	organizerID := r.PathValue("id")
	all := strings.EqualFold(r.URL.Query().Get("status"), "all")

	o, s, err := h.organizers.Get(r.Context(), organizerID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "organizer not found")
			return
		}
		h.logger.Error("get organizer failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	bookings, err := h.bookings.ListUpcoming(r.Context(), organizerID, time.Now().UTC(), all)
	if err != nil {
		h.logger.Error("list bookings failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get data")
		return
	}

	items := make([]bookingPayload, len(bookings))
	for i, b := range bookings {
		items[i] = bookingPayload{
			BookingID:    b.ID,
			OrganizerID:  b.OrganizerID,
			Name:         b.Name,
			Email:        b.Email,
			StartTimeUTC: b.SlotStartUTC.Format(time.RFC3339),
			EndTimeUTC:   b.SlotEndUTC.Format(time.RFC3339),
			UserTimezone: b.UserTimezone,
			Status:       b.Status,
			CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	body := map[string]any{"bookings": items}
	if all {
		body["organizer"] = toOrganizerPayload(o, s)
	}
	writeJSON(w, http.StatusOK, body)
}
