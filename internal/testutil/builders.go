package testutil

import (
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/util"
)

// SettingsBuilder provides fluent API for creating test settings.
type SettingsBuilder struct {
	settings models.Settings
}

func NewSettings(userID int64) *SettingsBuilder {
	return &SettingsBuilder{settings: models.DefaultSettings(userID)}
}

// WithMinutes sets the work, short break and long break lengths.
func (b *SettingsBuilder) WithMinutes(work, shortBreak, longBreak int) *SettingsBuilder {
	b.settings.WorkMinutes = work
	b.settings.ShortBreakMinutes = shortBreak
	b.settings.LongBreakMinutes = longBreak
	return b
}

func (b *SettingsBuilder) WithLongBreakEvery(n int) *SettingsBuilder {
	b.settings.SessionsUntilLongBreak = n
	return b
}

func (b *SettingsBuilder) WithAutoStart(breaks, work bool) *SettingsBuilder {
	b.settings.AutoStartBreaks = breaks
	b.settings.AutoStartWork = work
	return b
}

func (b *SettingsBuilder) Quiet() *SettingsBuilder {
	b.settings.SoundEnabled = false
	b.settings.NotificationsEnabled = false
	return b
}

func (b *SettingsBuilder) Build() models.Settings {
	return b.settings
}

// SessionBuilder provides fluent API for creating test sessions.
type SessionBuilder struct {
	session models.Session
}

func NewSession(id string, userID int64) *SessionBuilder {
	now := time.Now()
	return &SessionBuilder{
		session: models.Session{
			ID:               id,
			UserID:           userID,
			Phase:            models.PhaseWork,
			Status:           models.StatusRunning,
			RemainingSeconds: 25 * 60,
			CreatedAt:        now,
			UpdatedAt:        now,
		},
	}
}

func (b *SessionBuilder) WithPhase(p models.Phase, remaining int) *SessionBuilder {
	b.session.Phase = p
	b.session.RemainingSeconds = remaining
	return b
}

func (b *SessionBuilder) WithStatus(s models.SessionStatus) *SessionBuilder {
	b.session.Status = s
	return b
}

func (b *SessionBuilder) WithTask(id int64) *SessionBuilder {
	b.session.TaskID = util.Ptr(id)
	return b
}

func (b *SessionBuilder) WithCounts(work, breaks int) *SessionBuilder {
	b.session.CompletedWorkCount = work
	b.session.CompletedBreakCount = breaks
	return b
}

// UpdatedAt sets the last write time; Load fast-forwards a running session from it.
func (b *SessionBuilder) UpdatedAt(t time.Time) *SessionBuilder {
	b.session.UpdatedAt = t
	if b.session.CreatedAt.After(t) {
		b.session.CreatedAt = t
	}
	return b
}

func (b *SessionBuilder) Build() models.Session {
	return b.session
}

// TaskBuilder provides fluent API for creating test tasks.
type TaskBuilder struct {
	task models.Task
}

func NewTask(userID int64) *TaskBuilder {
	return &TaskBuilder{
		task: models.Task{
			UserID:    userID,
			Title:     "Test Task",
			Status:    models.TaskOpen,
			CreatedAt: time.Now(),
		},
	}
}

func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.task.Title = title
	return b
}

func (b *TaskBuilder) WithPomodoros(n int) *TaskBuilder {
	b.task.Pomodoros = n
	return b
}

func (b *TaskBuilder) Done(at time.Time) *TaskBuilder {
	b.task.Status = models.TaskDone
	b.task.CompletedAt = &at
	return b
}

func (b *TaskBuilder) Build() models.Task {
	return b.task
}
