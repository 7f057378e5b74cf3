package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/util"
)

type ExportUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ExportSettings struct {
	UserID                 int64 `json:"user_id"`
	WorkMinutes            int   `json:"work_minutes"`
	ShortBreakMinutes      int   `json:"short_break_minutes"`
	LongBreakMinutes       int   `json:"long_break_minutes"`
	SessionsUntilLongBreak int   `json:"sessions_until_long_break"`
	SoundEnabled           bool  `json:"sound_enabled"`
	NotificationsEnabled   bool  `json:"notifications_enabled"`
	AutoStartBreaks        bool  `json:"auto_start_breaks"`
	AutoStartWork          bool  `json:"auto_start_work"`
}

type ExportSession struct {
	ID                  string  `json:"id"`
	UserID              int64   `json:"user_id"`
	TaskID              *int64  `json:"task_id,omitempty"`
	Phase               string  `json:"phase"`
	Status              string  `json:"status"`
	RemainingSeconds    int     `json:"remaining_seconds"`
	CompletedWorkCount  int     `json:"completed_work_count"`
	CompletedBreakCount int     `json:"completed_break_count"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
	EndedAt             *string `json:"ended_at,omitempty"`
}

type ExportPhaseLog struct {
	ID             int64  `json:"id"`
	SessionID      string `json:"session_id"`
	UserID         int64  `json:"user_id"`
	TaskID         *int64 `json:"task_id,omitempty"`
	Phase          string `json:"phase"`
	PlannedSeconds int    `json:"planned_seconds"`
	ActualSeconds  int    `json:"actual_seconds"`
	Skipped        bool   `json:"skipped,omitempty"`
	Interrupted    bool   `json:"interrupted,omitempty"`
	EndedAt        string `json:"ended_at"`
}

type ExportTask struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Title       string  `json:"title"`
	Status      string  `json:"status"`
	Pomodoros   int     `json:"pomodoros"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

type ExportOptions struct {
	EncryptOutput bool
	Passphrase    string
}

type VaultExport struct {
	Users     []ExportUser     `json:"users"`
	Settings  []ExportSettings `json:"settings"`
	Tasks     []ExportTask     `json:"tasks"`
	Sessions  []ExportSession  `json:"sessions"`
	PhaseLogs []ExportPhaseLog `json:"phase_logs"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	val := formatTime(*t)
	return &val
}

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (d *Database) GetAllSettingsExport(ctx context.Context) ([]ExportSettings, error) {
	users, err := d.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ExportSettings, 0, len(users))
	for _, u := range users {
		s, err := d.GetUserSettings(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, ExportSettings{
			UserID:                 u.ID,
			WorkMinutes:            s.WorkMinutes,
			ShortBreakMinutes:      s.ShortBreakMinutes,
			LongBreakMinutes:       s.LongBreakMinutes,
			SessionsUntilLongBreak: s.SessionsUntilLongBreak,
			SoundEnabled:           s.SoundEnabled,
			NotificationsEnabled:   s.NotificationsEnabled,
			AutoStartBreaks:        s.AutoStartBreaks,
			AutoStartWork:          s.AutoStartWork,
		})
	}
	return out, nil
}

func (d *Database) GetAllTasksExport(ctx context.Context) ([]ExportTask, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY id ASC")
	if err != nil {
		return nil, wrapErr(EntityExport, "tasks", 0, err)
	}
	defer rows.Close()

	var out []ExportTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, wrapErr(EntityExport, "tasks", 0, err)
		}
		out = append(out, ExportTask{
			ID:          t.ID,
			UserID:      t.UserID,
			Title:       t.Title,
			Status:      string(t.Status),
			Pomodoros:   t.Pomodoros,
			CreatedAt:   formatTime(t.CreatedAt),
			CompletedAt: formatTimePtr(t.CompletedAt),
		})
	}
	return out, rows.Err()
}

func (d *Database) GetAllSessionsExport(ctx context.Context) ([]ExportSession, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx, "SELECT "+sessionColumns+" FROM sessions ORDER BY created_at ASC")
	if err != nil {
		return nil, wrapErr(EntityExport, "sessions", 0, err)
	}
	defer rows.Close()

	var out []ExportSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, wrapErr(EntityExport, "sessions", 0, err)
		}
		out = append(out, ExportSession{
			ID:                  s.ID,
			UserID:              s.UserID,
			TaskID:              s.TaskID,
			Phase:               string(s.Phase),
			Status:              string(s.Status),
			RemainingSeconds:    s.RemainingSeconds,
			CompletedWorkCount:  s.CompletedWorkCount,
			CompletedBreakCount: s.CompletedBreakCount,
			CreatedAt:           formatTime(s.CreatedAt),
			UpdatedAt:           formatTime(s.UpdatedAt),
			EndedAt:             formatTimePtr(s.EndedAt),
		})
	}
	return out, rows.Err()
}

func (d *Database) GetAllPhaseLogsExport(ctx context.Context) ([]ExportPhaseLog, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx, `
		SELECT id, session_id, user_id, task_id, phase, planned_seconds, actual_seconds, skipped, interrupted, ended_at
		FROM phase_logs ORDER BY id ASC`)
	if err != nil {
		return nil, wrapErr(EntityExport, "phase logs", 0, err)
	}
	defer rows.Close()

	var out []ExportPhaseLog
	for rows.Next() {
		var l ExportPhaseLog
		var skipped, interrupted int
		var endedAt time.Time
		if err := rows.Scan(&l.ID, &l.SessionID, &l.UserID, &l.TaskID, &l.Phase, &l.PlannedSeconds,
			&l.ActualSeconds, &skipped, &interrupted, &endedAt); err != nil {
			return nil, wrapErr(EntityExport, "phase logs", 0, err)
		}
		l.Skipped = util.IntToBool(skipped)
		l.Interrupted = util.IntToBool(interrupted)
		l.EndedAt = formatTime(endedAt)
		out = append(out, l)
	}
	return out, rows.Err()
}

// ExportVault serialises every table to JSON, optionally encrypted with opts.Passphrase.
func (d *Database) ExportVault(ctx context.Context, opts ExportOptions) ([]byte, error) {
	users, err := d.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	exportUsers := make([]ExportUser, 0, len(users))
	for _, u := range users {
		exportUsers = append(exportUsers, ExportUser{ID: u.ID, Name: u.Name, Slug: u.Slug})
	}
	settings, err := d.GetAllSettingsExport(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := d.GetAllTasksExport(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := d.GetAllSessionsExport(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := d.GetAllPhaseLogsExport(ctx)
	if err != nil {
		return nil, err
	}

	export := VaultExport{
		Users:     exportUsers,
		Settings:  settings,
		Tasks:     tasks,
		Sessions:  sessions,
		PhaseLogs: logs,
	}
	jsonData, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, err
	}
	if opts.EncryptOutput && opts.Passphrase != "" {
		return encryptData(jsonData, opts.Passphrase)
	}
	return jsonData, nil
}

// ImportVault loads exported data, replacing rows with matching ids.
// Encrypted payloads require passphrase.
func (d *Database) ImportVault(ctx context.Context, payload []byte, passphrase string) error {
	if isEncryptedExport(payload) {
		plain, err := decryptData(payload, passphrase)
		if err != nil {
			return fmt.Errorf("import vault: %w", err)
		}
		payload = plain
	}
	var export VaultExport
	if err := json.Unmarshal(payload, &export); err != nil {
		return fmt.Errorf("import vault: %w", err)
	}

	// Settings go through Validate before the transaction starts.
	for _, s := range export.Settings {
		ms := models.Settings{
			UserID:                 s.UserID,
			WorkMinutes:            s.WorkMinutes,
			ShortBreakMinutes:      s.ShortBreakMinutes,
			LongBreakMinutes:       s.LongBreakMinutes,
			SessionsUntilLongBreak: s.SessionsUntilLongBreak,
		}
		if err := ms.Validate(); err != nil {
			return fmt.Errorf("import settings for user %d: %w", s.UserID, err)
		}
	}

	return d.WithTx(ctx, func(tx *sql.Tx) error {
		for _, u := range export.Users {
			if _, err := tx.ExecContext(ctx, "INSERT OR REPLACE INTO users (id, name, slug) VALUES (?, ?, ?)", u.ID, u.Name, u.Slug); err != nil {
				return fmt.Errorf("import user %d: %w", u.ID, err)
			}
		}
		for _, s := range export.Settings {
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO user_settings (user_id, work_minutes, short_break_minutes, long_break_minutes,
					sessions_until_long_break, sound_enabled, notifications_enabled, auto_start_breaks, auto_start_work)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				s.UserID, s.WorkMinutes, s.ShortBreakMinutes, s.LongBreakMinutes, s.SessionsUntilLongBreak,
				util.BoolToInt(s.SoundEnabled), util.BoolToInt(s.NotificationsEnabled),
				util.BoolToInt(s.AutoStartBreaks), util.BoolToInt(s.AutoStartWork)); err != nil {
				return fmt.Errorf("import settings for user %d: %w", s.UserID, err)
			}
		}
		for _, t := range export.Tasks {
			created, err := time.Parse(time.RFC3339, t.CreatedAt)
			if err != nil {
				return fmt.Errorf("import task %d: %w", t.ID, err)
			}
			completed, err := parseTimePtr(t.CompletedAt)
			if err != nil {
				return fmt.Errorf("import task %d: %w", t.ID, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO tasks (id, user_id, title, status, pomodoros, created_at, completed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.UserID, t.Title, t.Status, t.Pomodoros, utcArg(created), nullableTimeArg(completed)); err != nil {
				return fmt.Errorf("import task %d: %w", t.ID, err)
			}
		}
		for _, s := range export.Sessions {
			created, err := time.Parse(time.RFC3339, s.CreatedAt)
			if err != nil {
				return fmt.Errorf("import session %s: %w", s.ID, err)
			}
			updated, err := time.Parse(time.RFC3339, s.UpdatedAt)
			if err != nil {
				return fmt.Errorf("import session %s: %w", s.ID, err)
			}
			ended, err := parseTimePtr(s.EndedAt)
			if err != nil {
				return fmt.Errorf("import session %s: %w", s.ID, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO sessions (`+sessionColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				s.ID, s.UserID, toNullableArg(s.TaskID), s.Phase, s.Status, s.RemainingSeconds,
				s.CompletedWorkCount, s.CompletedBreakCount, utcArg(created), utcArg(updated), nullableTimeArg(ended)); err != nil {
				return fmt.Errorf("import session %s: %w", s.ID, err)
			}
		}
		for _, l := range export.PhaseLogs {
			ended, err := time.Parse(time.RFC3339, l.EndedAt)
			if err != nil {
				return fmt.Errorf("import phase log %d: %w", l.ID, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO phase_logs (id, session_id, user_id, task_id, phase, planned_seconds, actual_seconds, skipped, interrupted, ended_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				l.ID, l.SessionID, l.UserID, toNullableArg(l.TaskID), l.Phase, l.PlannedSeconds, l.ActualSeconds,
				util.BoolToInt(l.Skipped), util.BoolToInt(l.Interrupted), utcArg(ended)); err != nil {
				return fmt.Errorf("import phase log %d: %w", l.ID, err)
			}
		}
		return nil
	})
}
