package tui

import (
	"context"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/database"
	"github.com/akyairhashvil/pomotrack/internal/models"
)

// Database defines the persistence methods the TUI requires.
type Database interface {
	EncryptionStatus() database.EncryptionInfo

	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error

	GetUserSettings(ctx context.Context, userID int64) (models.Settings, error)
	SaveUserSettings(ctx context.Context, s models.Settings) error

	GetDayStats(ctx context.Context, userID int64, day time.Time) (models.Stats, error)
	GetPhaseLogs(ctx context.Context, userID int64, from, to time.Time) ([]models.PhaseLog, error)

	AddTask(ctx context.Context, userID int64, title string) (int64, error)
	GetTasks(ctx context.Context, userID int64, includeDone bool) ([]models.Task, error)
	CompleteTask(ctx context.Context, id int64) error

	ExportVault(ctx context.Context, opts database.ExportOptions) ([]byte, error)
}

var _ Database = (*database.Database)(nil)
