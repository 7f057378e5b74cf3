package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/google/uuid"
)

const sessionColumns = `id, user_id, task_id, phase, status, remaining_seconds, completed_work_count, completed_break_count, created_at, updated_at, ended_at`

func scanSession(row interface{ Scan(...interface{}) error }) (models.Session, error) {
	var s models.Session
	var phase, status string
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.TaskID,
		&phase,
		&status,
		&s.RemainingSeconds,
		&s.CompletedWorkCount,
		&s.CompletedBreakCount,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.EndedAt,
	); err != nil {
		return models.Session{}, err
	}
	s.Phase = models.Phase(phase)
	s.Status = models.SessionStatus(status)
	return s, nil
}

// CreateSession inserts s and, in the same transaction, stops every other
// running or paused session of the same user. Concurrent starters resolve
// last-writer-wins.
func (d *Database) CreateSession(ctx context.Context, s *models.Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE sessions SET status = 'stopped', ended_at = ?, updated_at = ?
			WHERE user_id = ? AND status IN ('running', 'paused') AND id != ?`,
			utcArg(s.UpdatedAt), utcArg(s.UpdatedAt), s.UserID, s.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (`+sessionColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.UserID, toNullableArg(s.TaskID), string(s.Phase), string(s.Status),
			s.RemainingSeconds, s.CompletedWorkCount, s.CompletedBreakCount,
			utcArg(s.CreatedAt), utcArg(s.UpdatedAt), nullableTimeArg(s.EndedAt))
		return err
	})
	return wrapSessionErr("create", s.ID, err)
}

// UpdateSession overwrites the mutable columns of an existing session.
// A stopped session is final: writing to one fails with
// models.ErrSessionStopped and leaves the row untouched.
func (d *Database) UpdateSession(ctx context.Context, s models.Session) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = time.Now()
		}
		res, err := d.DB.ExecContext(ctx, `
			UPDATE sessions
			SET task_id = ?, phase = ?, status = ?, remaining_seconds = ?,
			    completed_work_count = ?, completed_break_count = ?, updated_at = ?, ended_at = ?
			WHERE id = ? AND status != 'stopped'`,
			toNullableArg(s.TaskID), string(s.Phase), string(s.Status), s.RemainingSeconds,
			s.CompletedWorkCount, s.CompletedBreakCount, utcArg(s.UpdatedAt), nullableTimeArg(s.EndedAt), s.ID)
		if err != nil {
			return wrapSessionErr("update", s.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrapSessionErr("update", s.ID, err)
		}
		if n > 0 {
			return nil
		}
		var status string
		err = d.DB.QueryRowContext(ctx, "SELECT status FROM sessions WHERE id = ?", s.ID).Scan(&status)
		switch {
		case err == sql.ErrNoRows:
			return wrapSessionErr("update", s.ID, ErrNotFound)
		case err != nil:
			return wrapSessionErr("update", s.ID, err)
		}
		return wrapSessionErr("update", s.ID, models.ErrSessionStopped)
	})
}

func (d *Database) GetSession(ctx context.Context, id string) (models.Session, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.Session, error) {
		row := d.DB.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
		s, err := scanSession(row)
		if err == sql.ErrNoRows {
			return models.Session{}, wrapSessionErr("get", id, ErrNotFound)
		}
		return s, wrapSessionErr("get", id, err)
	})
}

// GetActiveSession returns the user's running or paused session, or nil when there is none.
func (d *Database) GetActiveSession(ctx context.Context, userID int64) (*models.Session, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (*models.Session, error) {
		row := d.DB.QueryRowContext(ctx, `
			SELECT `+sessionColumns+` FROM sessions
			WHERE user_id = ? AND status IN ('running', 'paused')
			ORDER BY updated_at DESC LIMIT 1`, userID)
		s, err := scanSession(row)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, wrapErr(EntitySession, "get active", userID, err)
		}
		return &s, nil
	})
}

// ListSessions returns the user's most recent sessions, newest first.
func (d *Database) ListSessions(ctx context.Context, userID int64, limit int) ([]models.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Session, error) {
		rows, err := d.DB.QueryContext(ctx, `
			SELECT `+sessionColumns+` FROM sessions
			WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`, userID, limit)
		if err != nil {
			return nil, wrapErr(EntitySession, "list", userID, err)
		}
		defer rows.Close()

		var out []models.Session
		for rows.Next() {
			s, err := scanSession(rows)
			if err != nil {
				return nil, wrapErr(EntitySession, "list", userID, err)
			}
			out = append(out, s)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntitySession, "list", userID, err)
		}
		return out, nil
	})
}
