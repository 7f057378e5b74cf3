package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
)

// Phase is one segment of a Pomodoro cycle.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak:
		return true
	}
	return false
}

// IsBreak reports whether p is either break phase.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Label returns the human readable phase name.
func (p Phase) Label() string {
	switch p {
	case PhaseWork:
		return "Focus"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	}
	return string(p)
}

// SessionStatus enumerates the persisted states of a session.
type SessionStatus string

const (
	StatusRunning SessionStatus = "running"
	StatusPaused  SessionStatus = "paused"
	StatusStopped SessionStatus = "stopped"
)

// Active reports whether the status still owns the user's timer.
func (s SessionStatus) Active() bool {
	return s == StatusRunning || s == StatusPaused
}

// User is a local profile. Each profile owns at most one active session.
type User struct {
	ID   int64
	Name string
	Slug string
}

// Session is a single Pomodoro cycle.
type Session struct {
	ID                  string
	UserID              int64
	TaskID              *int64
	Phase               Phase
	Status              SessionStatus
	RemainingSeconds    int
	CompletedWorkCount  int
	CompletedBreakCount int
	CreatedAt           time.Time
	UpdatedAt           time.Time
	EndedAt             *time.Time
}

// Settings holds the per-user timer configuration.
type Settings struct {
	UserID                 int64
	WorkMinutes            int
	ShortBreakMinutes      int
	LongBreakMinutes       int
	SessionsUntilLongBreak int
	SoundEnabled           bool
	NotificationsEnabled   bool
	AutoStartBreaks        bool
	AutoStartWork          bool
}

// PhaseDuration returns the configured length of phase in seconds.
func (s Settings) PhaseDuration(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return s.ShortBreakMinutes * 60
	case PhaseLongBreak:
		return s.LongBreakMinutes * 60
	default:
		return s.WorkMinutes * 60
	}
}

// AutoStart reports whether phase should begin running as soon as it is entered.
func (s Settings) AutoStart(phase Phase) bool {
	if phase.IsBreak() {
		return s.AutoStartBreaks
	}
	return s.AutoStartWork
}

// TaskStatus enumerates task states.
type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)

// Task is an item of work a session can be linked to.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Status      TaskStatus
	Pomodoros   int // completed work phases logged against the task
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// PhaseLog records a finished, skipped or interrupted phase.
type PhaseLog struct {
	ID             int64
	SessionID      string
	UserID         int64
	TaskID         *int64
	Phase          Phase
	PlannedSeconds int
	ActualSeconds  int
	Skipped        bool
	Interrupted    bool
	EndedAt        time.Time
}

// Stats aggregates phase logs for one day.
type Stats struct {
	CompletedWork   int
	CompletedBreaks int
	FocusSeconds    int
	Skipped         int
	Interrupted     int
}

var (
	// ErrInvalidSettings is returned when a settings value is out of range.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrSessionStopped is returned when a write targets a session that has
	// already been stopped. Stopped sessions are never revived.
	ErrSessionStopped = errors.New("session already stopped")
)

// Validate checks that every duration and counter is within the supported range.
func (s Settings) Validate() error {
	check := func(name string, v, min, max int) error {
		if v < min || v > max {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidSettings, name, min, max, v)
		}
		return nil
	}
	if err := check("work minutes", s.WorkMinutes, config.MinPhaseMinutes, config.MaxPhaseMinutes); err != nil {
		return err
	}
	if err := check("short break minutes", s.ShortBreakMinutes, config.MinPhaseMinutes, config.MaxPhaseMinutes); err != nil {
		return err
	}
	if err := check("long break minutes", s.LongBreakMinutes, config.MinPhaseMinutes, config.MaxPhaseMinutes); err != nil {
		return err
	}
	return check("sessions until long break", s.SessionsUntilLongBreak, 1, config.MaxSessionsUntilLongBreak)
}

// DefaultSettings returns the built-in settings for userID.
func DefaultSettings(userID int64) Settings {
	return Settings{
		UserID:                 userID,
		WorkMinutes:            config.DefaultWorkMinutes,
		ShortBreakMinutes:      config.DefaultShortBreakMinutes,
		LongBreakMinutes:       config.DefaultLongBreakMinutes,
		SessionsUntilLongBreak: config.DefaultSessionsUntilLongBreak,
		SoundEnabled:           true,
		NotificationsEnabled:   true,
	}
}
