package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/db"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/model"
)

type BookingRepository struct {
	pool *db.Pool
}

func NewBookingRepository(pool *db.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Create inserts a new booking and returns its id. An overlapping booked
// interval trips the exclusion constraint; detect it with IsConflict.
func (r *BookingRepository) Create(ctx context.Context, tx pgx.Tx, b *model.Booking) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(ctx, `
		INSERT INTO bookings (id, organizer_id, name, email, slot_start_utc, slot_end_utc, user_timezone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, b.OrganizerID, b.Name, b.Email, b.SlotStartUTC, b.SlotEndUTC, b.UserTimezone, b.Status)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetForUpdate loads one booking row-locked for a status transition.
func (r *BookingRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, bookingID string) (model.Booking, error) {
	var b model.Booking
	err := tx.QueryRow(ctx, `
		SELECT id::text, organizer_id::text, name, email, slot_start_utc, slot_end_utc,
			user_timezone, status, created_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`, bookingID).Scan(
		&b.ID, &b.OrganizerID, &b.Name, &b.Email, &b.SlotStartUTC, &b.SlotEndUTC,
		&b.UserTimezone, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// UpdateStatus writes the new status. The exclusion constraint re-arms when
// the row transitions back into booked.
func (r *BookingRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, bookingID, status string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
	`, bookingID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListActive returns the organizer's upcoming booked appointments: the rows
// that lock settings edits and that new candidates must not overlap.
// excludeID skips one booking, for re-validating its own status transition.
func (r *BookingRepository) ListActive(ctx context.Context, organizerID string, now time.Time, excludeID string) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, organizer_id::text, name, email, slot_start_utc, slot_end_utc,
			user_timezone, status, created_at
		FROM bookings
		WHERE organizer_id = $1
			AND status = 'booked'
			AND slot_end_utc > $2
			AND id::text <> $3
		ORDER BY slot_start_utc ASC
	`, organizerID, now, excludeID)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

// ListUpcoming returns the organizer's future bookings. With allStatuses set
// it includes cancelled and other terminal rows for the dashboard view.
func (r *BookingRepository) ListUpcoming(ctx context.Context, organizerID string, now time.Time, allStatuses bool) ([]model.Booking, error) {
	query := `
		SELECT id::text, organizer_id::text, name, email, slot_start_utc, slot_end_utc,
			user_timezone, status, created_at
		FROM bookings
		WHERE organizer_id = $1
			AND slot_end_utc > $2
			AND (status = 'booked' OR $3)
		ORDER BY slot_start_utc ASC
	`
	rows, err := r.pool.Query(ctx, query, organizerID, now, allStatuses)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]model.Booking, error) {
	defer rows.Close()
	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.OrganizerID, &b.Name, &b.Email, &b.SlotStartUTC, &b.SlotEndUTC,
			&b.UserTimezone, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return bookings, nil
}
