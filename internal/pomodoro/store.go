package pomodoro

import (
	"context"

	"github.com/akyairhashvil/pomotrack/internal/models"
)

//go:generate mockgen -source=store.go -destination=mock_store_test.go -package=pomodoro

// Store is the persistence the Manager needs. *database.Database satisfies it.
type Store interface {
	GetUserSettings(ctx context.Context, userID int64) (models.Settings, error)
	GetActiveSession(ctx context.Context, userID int64) (*models.Session, error)
	CreateSession(ctx context.Context, s *models.Session) error
	UpdateSession(ctx context.Context, s models.Session) error
	LogPhase(ctx context.Context, entry models.PhaseLog) error
	IncrementTaskPomodoros(ctx context.Context, id int64) error
}
