package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/availability"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/db"
	"github.com/semmysuihana/meeting-scheduler-backend/internal/model"
)

type OrganizerRepository struct {
	pool *db.Pool
}

func NewOrganizerRepository(pool *db.Pool) *OrganizerRepository {
	return &OrganizerRepository{pool: pool}
}

func (r *OrganizerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Get loads an organizer with its full configuration (settings row, weekly
// hours, blackout days). pgx.ErrNoRows surfaces when the organizer is
// missing.
func (r *OrganizerRepository) Get(ctx context.Context, organizerID string) (model.Organizer, model.Settings, error) {
	var o model.Organizer
	var s model.Settings
	err := r.pool.QueryRow(ctx, `
		SELECT o.id::text, o.name, o.email, o.timezone, o.created_at,
			s.meeting_duration_minutes, s.buffer_before_minutes,
			s.buffer_after_minutes, s.min_notice_minutes, s.updated_at
		FROM organizers o
		JOIN organizer_settings s ON s.organizer_id = o.id
		WHERE o.id = $1
	`, organizerID).Scan(
		&o.ID, &o.Name, &o.Email, &o.Timezone, &o.CreatedAt,
		&s.MeetingDuration, &s.BufferBefore, &s.BufferAfter, &s.MinNotice, &s.UpdatedAt,
	)
	if err != nil {
		return model.Organizer{}, model.Settings{}, err
	}
	s.OrganizerID = o.ID

	if s.Hours, err = r.loadHours(ctx, o.ID); err != nil {
		return model.Organizer{}, model.Settings{}, err
	}
	if s.BlackoutDates, err = r.loadBlackouts(ctx, o.ID); err != nil {
		return model.Organizer{}, model.Settings{}, err
	}
	return o, s, nil
}

// List returns every organizer joined with its settings, hours and
// blackouts, ordered by creation time.
func (r *OrganizerRepository) List(ctx context.Context) ([]model.Organizer, []model.Settings, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id::text, o.name, o.email, o.timezone, o.created_at,
			s.meeting_duration_minutes, s.buffer_before_minutes,
			s.buffer_after_minutes, s.min_notice_minutes, s.updated_at
		FROM organizers o
		JOIN organizer_settings s ON s.organizer_id = o.id
		ORDER BY o.created_at ASC
	`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var organizers []model.Organizer
	var settings []model.Settings
	for rows.Next() {
		var o model.Organizer
		var s model.Settings
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Email, &o.Timezone, &o.CreatedAt,
			&s.MeetingDuration, &s.BufferBefore, &s.BufferAfter, &s.MinNotice, &s.UpdatedAt,
		); err != nil {
			return nil, nil, err
		}
		s.OrganizerID = o.ID
		organizers = append(organizers, o)
		settings = append(settings, s)
	}
	if rows.Err() != nil {
		return nil, nil, rows.Err()
	}

	for i := range settings {
		if settings[i].Hours, err = r.loadHours(ctx, settings[i].OrganizerID); err != nil {
			return nil, nil, err
		}
		if settings[i].BlackoutDates, err = r.loadBlackouts(ctx, settings[i].OrganizerID); err != nil {
			return nil, nil, err
		}
	}
	return organizers, settings, nil
}

func (r *OrganizerRepository) loadHours(ctx context.Context, organizerID string) (availability.WeekHours, error) {
	var week availability.WeekHours
	rows, err := r.pool.Query(ctx, `
		SELECT weekday, start_minute, end_minute
		FROM organizer_working_hours
		WHERE organizer_id = $1
	`, organizerID)
	if err != nil {
		return week, err
	}
	defer rows.Close()

	for rows.Next() {
		var weekday, start, end int
		if err := rows.Scan(&weekday, &start, &end); err != nil {
			return week, err
		}
		if weekday >= 0 && weekday < 7 {
			week[weekday] = availability.DayHours{StartMinute: start, EndMinute: end}
		}
	}
	return week, rows.Err()
}

func (r *OrganizerRepository) loadBlackouts(ctx context.Context, organizerID string) ([]availability.Date, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT blackout_date
		FROM organizer_blackout_dates
		WHERE organizer_id = $1
		ORDER BY blackout_date ASC
	`, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []availability.Date
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		y, m, d := t.Date()
		dates = append(dates, availability.Date{Year: y, Month: m, Day: d})
	}
	return dates, rows.Err()
}

// UpdateGeneral writes the validated general settings: the numeric knobs on
// the settings row plus name and timezone on the organizer itself.
func (r *OrganizerRepository) UpdateGeneral(ctx context.Context, tx pgx.Tx, organizerID string, g availability.GeneralSettings) error {
	tag, err := tx.Exec(ctx, `
		UPDATE organizer_settings
		SET meeting_duration_minutes = $2,
			buffer_before_minutes = $3,
			buffer_after_minutes = $4,
			min_notice_minutes = $5,
			updated_at = now()
		WHERE organizer_id = $1
	`, organizerID, g.MeetingDuration, g.BufferBefore, g.BufferAfter, g.MinNotice)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	_, err = tx.Exec(ctx, `
		UPDATE organizers
		SET name = $2, timezone = $3
		WHERE id = $1
	`, organizerID, g.Name, g.Timezone)
	return err
}

// ReplaceWorkingHours swaps the organizer's weekly hours for the validated
// set. Days off are stored as zero ranges so all seven rows always exist.
func (r *OrganizerRepository) ReplaceWorkingHours(ctx context.Context, tx pgx.Tx, organizerID string, week availability.WeekHours) error {
	for weekday, day := range week {
		if _, err := tx.Exec(ctx, `
			INSERT INTO organizer_working_hours (organizer_id, weekday, start_minute, end_minute)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (organizer_id, weekday) DO UPDATE
			SET start_minute = EXCLUDED.start_minute,
				end_minute = EXCLUDED.end_minute
		`, organizerID, weekday, day.StartMinute, day.EndMinute); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceBlackouts swaps the organizer's blackout list for the validated set.
func (r *OrganizerRepository) ReplaceBlackouts(ctx context.Context, tx pgx.Tx, organizerID string, dates []availability.Date) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM organizer_blackout_dates WHERE organizer_id = $1
	`, organizerID); err != nil {
		return err
	}
	for _, d := range dates {
		if _, err := tx.Exec(ctx, `
			INSERT INTO organizer_blackout_dates (organizer_id, blackout_date)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, organizerID, d.String()); err != nil {
			return err
		}
	}
	return nil
}
