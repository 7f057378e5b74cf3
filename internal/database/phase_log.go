package database

import (
	"context"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/util"
)

func (d *Database) LogPhase(ctx context.Context, entry models.PhaseLog) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		if entry.EndedAt.IsZero() {
			entry.EndedAt = time.Now()
		}
		_, err := d.DB.ExecContext(ctx, `
			INSERT INTO phase_logs (session_id, user_id, task_id, phase, planned_seconds, actual_seconds, skipped, interrupted, ended_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.SessionID, entry.UserID, toNullableArg(entry.TaskID), string(entry.Phase),
			entry.PlannedSeconds, entry.ActualSeconds, util.BoolToInt(entry.Skipped), util.BoolToInt(entry.Interrupted),
			utcArg(entry.EndedAt))
		return wrapErr(EntityPhaseLog, "insert", entry.UserID, err)
	})
}

// GetPhaseLogs returns the user's phase logs with from <= ended_at < to, oldest first.
func (d *Database) GetPhaseLogs(ctx context.Context, userID int64, from, to time.Time) ([]models.PhaseLog, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.PhaseLog, error) {
		rows, err := d.DB.QueryContext(ctx, `
			SELECT id, session_id, user_id, task_id, phase, planned_seconds, actual_seconds, skipped, interrupted, ended_at
			FROM phase_logs
			WHERE user_id = ? AND ended_at >= ? AND ended_at < ?
			ORDER BY ended_at ASC, id ASC`, userID, utcArg(from), utcArg(to))
		if err != nil {
			return nil, wrapErr(EntityPhaseLog, "list", userID, err)
		}
		defer rows.Close()

		var out []models.PhaseLog
		for rows.Next() {
			var l models.PhaseLog
			var phase string
			var skipped, interrupted int
			if err := rows.Scan(&l.ID, &l.SessionID, &l.UserID, &l.TaskID, &phase, &l.PlannedSeconds,
				&l.ActualSeconds, &skipped, &interrupted, &l.EndedAt); err != nil {
				return nil, wrapErr(EntityPhaseLog, "list", userID, err)
			}
			l.Phase = models.Phase(phase)
			l.Skipped = util.IntToBool(skipped)
			l.Interrupted = util.IntToBool(interrupted)
			out = append(out, l)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityPhaseLog, "list", userID, err)
		}
		return out, nil
	})
}

// DayBounds returns local midnight of day and of the following day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	y, m, dd := day.Date()
	start := time.Date(y, m, dd, 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// GetDayStats aggregates the phase logs of the calendar day containing day.
func (d *Database) GetDayStats(ctx context.Context, userID int64, day time.Time) (models.Stats, error) {
	from, to := DayBounds(day)
	logs, err := d.GetPhaseLogs(ctx, userID, from, to)
	if err != nil {
		return models.Stats{}, err
	}
	return SummarizeLogs(logs), nil
}

// SummarizeLogs folds phase logs into day statistics.
func SummarizeLogs(logs []models.PhaseLog) models.Stats {
	var st models.Stats
	for _, l := range logs {
		switch {
		case l.Interrupted:
			st.Interrupted++
		case l.Skipped:
			st.Skipped++
		}
		if l.Phase == models.PhaseWork {
			st.FocusSeconds += l.ActualSeconds
			if !l.Interrupted {
				st.CompletedWork++
			}
		} else if !l.Interrupted {
			st.CompletedBreaks++
		}
	}
	return st
}
