package database

import (
	"context"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
)

// UserRepository defines profile operations.
type UserRepository interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	EnsureDefaultUser(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, name, slug string) (int64, error)
	GetUserIDBySlug(ctx context.Context, slug string) (int64, bool, error)
}

// SettingsRepository defines the per-user settings store and app key/value settings.
type SettingsRepository interface {
	GetUserSettings(ctx context.Context, userID int64) (models.Settings, error)
	SaveUserSettings(ctx context.Context, s models.Settings) error
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
}

// SessionRepository defines session persistence.
type SessionRepository interface {
	CreateSession(ctx context.Context, s *models.Session) error
	UpdateSession(ctx context.Context, s models.Session) error
	GetSession(ctx context.Context, id string) (models.Session, error)
	GetActiveSession(ctx context.Context, userID int64) (*models.Session, error)
	ListSessions(ctx context.Context, userID int64, limit int) ([]models.Session, error)
	LogPhase(ctx context.Context, entry models.PhaseLog) error
	GetPhaseLogs(ctx context.Context, userID int64, from, to time.Time) ([]models.PhaseLog, error)
	GetDayStats(ctx context.Context, userID int64, day time.Time) (models.Stats, error)
}

// TaskRepository defines task operations.
type TaskRepository interface {
	AddTask(ctx context.Context, userID int64, title string) (int64, error)
	GetTasks(ctx context.Context, userID int64, includeDone bool) ([]models.Task, error)
	GetTask(ctx context.Context, id int64) (models.Task, error)
	CompleteTask(ctx context.Context, id int64) error
	ReopenTask(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error
	IncrementTaskPomodoros(ctx context.Context, id int64) error
}

// Repository combines all repository interfaces.
type Repository interface {
	UserRepository
	SettingsRepository
	SessionRepository
	TaskRepository
}

var _ Repository = (*Database)(nil)
