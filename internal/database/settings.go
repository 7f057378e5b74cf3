package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/util"
)

// SetDefaultSettings replaces the template returned for users without saved
// settings. An out-of-range template is rejected and the previous one kept.
func (d *Database) SetDefaultSettings(s models.Settings) error {
	if err := s.Validate(); err != nil {
		return wrapErr(EntitySettings, "set defaults", 0, err)
	}
	d.defaults = &s
	return nil
}

func (d *Database) defaultSettings(userID int64) models.Settings {
	if d.defaults == nil {
		return models.DefaultSettings(userID)
	}
	s := *d.defaults
	s.UserID = userID
	return s
}

// GetUserSettings returns the saved settings for userID, or the defaults when none were saved.
func (d *Database) GetUserSettings(ctx context.Context, userID int64) (models.Settings, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.Settings, error) {
		s := models.Settings{UserID: userID}
		var sound, notify, autoBreaks, autoWork int
		err := d.DB.QueryRowContext(ctx, `
			SELECT work_minutes, short_break_minutes, long_break_minutes, sessions_until_long_break,
			       sound_enabled, notifications_enabled, auto_start_breaks, auto_start_work
			FROM user_settings WHERE user_id = ?`, userID).Scan(
			&s.WorkMinutes, &s.ShortBreakMinutes, &s.LongBreakMinutes, &s.SessionsUntilLongBreak,
			&sound, &notify, &autoBreaks, &autoWork,
		)
		if err == sql.ErrNoRows {
			return d.defaultSettings(userID), nil
		}
		if err != nil {
			return models.Settings{}, wrapErr(EntitySettings, "get", userID, err)
		}
		s.SoundEnabled = util.IntToBool(sound)
		s.NotificationsEnabled = util.IntToBool(notify)
		s.AutoStartBreaks = util.IntToBool(autoBreaks)
		s.AutoStartWork = util.IntToBool(autoWork)
		return s, nil
	})
}

// SaveUserSettings validates and upserts s.
func (d *Database) SaveUserSettings(ctx context.Context, s models.Settings) error {
	if err := s.Validate(); err != nil {
		return wrapErr(EntitySettings, "save", s.UserID, err)
	}
	return d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx, `
			INSERT INTO user_settings (user_id, work_minutes, short_break_minutes, long_break_minutes,
				sessions_until_long_break, sound_enabled, notifications_enabled, auto_start_breaks, auto_start_work, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				work_minutes = excluded.work_minutes,
				short_break_minutes = excluded.short_break_minutes,
				long_break_minutes = excluded.long_break_minutes,
				sessions_until_long_break = excluded.sessions_until_long_break,
				sound_enabled = excluded.sound_enabled,
				notifications_enabled = excluded.notifications_enabled,
				auto_start_breaks = excluded.auto_start_breaks,
				auto_start_work = excluded.auto_start_work,
				updated_at = excluded.updated_at`,
			s.UserID, s.WorkMinutes, s.ShortBreakMinutes, s.LongBreakMinutes, s.SessionsUntilLongBreak,
			util.BoolToInt(s.SoundEnabled), util.BoolToInt(s.NotificationsEnabled),
			util.BoolToInt(s.AutoStartBreaks), util.BoolToInt(s.AutoStartWork), utcArg(time.Now()),
		)
		return wrapErr(EntitySettings, "save", s.UserID, err)
	})
}

func (d *Database) GetSetting(ctx context.Context, key string) (string, bool) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var value *string
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	if value != nil {
		return *value, true
	}
	return "", false
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
		return wrapErr(EntitySettings, "set "+key, 0, err)
	})
}
