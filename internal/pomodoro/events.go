package pomodoro

import (
	"context"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
)

//go:generate mockgen -source=events.go -destination=mock_notifier_test.go -package=pomodoro

// EventKind names the transition an Event reports.
type EventKind string

const (
	EventPhaseCompleted EventKind = "phase_completed"
	EventPhaseSkipped   EventKind = "phase_skipped"
	EventSessionStopped EventKind = "session_stopped"
)

// Event describes a transition that observers may want to announce.
type Event struct {
	Kind      EventKind
	UserID    int64
	SessionID string
	// Finished is the phase that just ended; Next is the phase now current.
	Finished models.Phase
	Next     models.Phase
	// Status of the session after the transition.
	Status models.SessionStatus
	At     time.Time
}

// Notifier receives events after the Manager has released its lock.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev Event)

func (f NotifierFunc) Notify(ctx context.Context, ev Event) { f(ctx, ev) }
