// Package pomodoro owns the lifecycle of a user's Pomodoro session: the
// phase state machine, tick handling and persistence of every transition.
package pomodoro

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/util"
	"github.com/google/uuid"
)

// State is the manager-level view of a session.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateStopped State = "stopped"
)

func stateOf(s *models.Session) State {
	if s == nil {
		return StateIdle
	}
	switch s.Status {
	case models.StatusRunning:
		return StateRunning
	case models.StatusPaused:
		return StatePaused
	default:
		return StateStopped
	}
}

// Snapshot is a copy of the manager state safe to hand to renderers.
type Snapshot struct {
	State    State
	Session  models.Session
	Settings models.Settings
	// Duration is the full length of the current phase in seconds.
	Duration int
}

// HasSession reports whether the snapshot carries a session.
func (s Snapshot) HasSession() bool {
	return s.State != StateIdle
}

// Active reports whether the session is running or paused.
func (s Snapshot) Active() bool {
	return s.State == StateRunning || s.State == StatePaused
}

// Elapsed returns the seconds already spent in the current phase.
func (s Snapshot) Elapsed() int {
	if !s.HasSession() {
		return 0
	}
	return s.Duration - s.Session.RemainingSeconds
}

// Progress returns the fraction of the current phase already spent.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 || !s.HasSession() {
		return 0
	}
	return float64(s.Elapsed()) / float64(s.Duration)
}

// Option configures a Manager.
type Option func(*Manager)

// WithNotifier sets the receiver of transition events.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator replaces the session id generator.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// WithCheckpointEvery sets how many in-phase ticks pass between persisted snapshots.
func WithCheckpointEvery(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.checkpointEvery = n
		}
	}
}

// Manager drives one user's session. All methods are safe for concurrent use.
type Manager struct {
	mu              sync.Mutex
	store           Store
	userID          int64
	notifier        Notifier
	now             func() time.Time
	newID           func() string
	checkpointEvery int

	session  *models.Session
	settings models.Settings
	pending  int
}

// NewManager returns an idle manager for userID. Call Load to pick up a
// session left active by an earlier run.
func NewManager(store Store, userID int64, opts ...Option) *Manager {
	m := &Manager{
		store:           store,
		userID:          userID,
		now:             time.Now,
		newID:           uuid.NewString,
		checkpointEvery: config.CheckpointEvery,
		settings:        models.DefaultSettings(userID),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// UserID returns the profile the manager acts for.
func (m *Manager) UserID() int64 {
	return m.userID
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{State: stateOf(m.session), Settings: m.settings}
	if m.session != nil {
		snap.Session = *m.session
		if m.session.TaskID != nil {
			taskID := *m.session.TaskID
			snap.Session.TaskID = &taskID
		}
		if m.session.EndedAt != nil {
			ended := *m.session.EndedAt
			snap.Session.EndedAt = &ended
		}
		snap.Duration = m.settings.PhaseDuration(m.session.Phase)
	}
	return snap
}

// Load restores the user's active session from the store. A running session
// is fast-forwarded by the wall-clock time since it was last written.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	settings, err := m.store.GetUserSettings(ctx, m.userID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	active, err := m.store.GetActiveSession(ctx, m.userID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	m.settings = settings
	m.pending = 0
	if active == nil {
		m.session = nil
		return nil
	}

	s := *active
	now := m.now()
	if s.Status == models.StatusRunning {
		if elapsed := int(now.Sub(s.UpdatedAt) / time.Second); elapsed > 0 {
			s.RemainingSeconds -= elapsed
			s.UpdatedAt = now
		}
	}
	s.RemainingSeconds = util.Clamp(s.RemainingSeconds, 0, settings.PhaseDuration(s.Phase))
	m.session = &s
	return nil
}

// RefreshSettings re-reads settings from the store. The remaining time of the
// current phase is clamped to the new duration.
func (m *Manager) RefreshSettings(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	settings, err := m.store.GetUserSettings(ctx, m.userID)
	if err != nil {
		return fmt.Errorf("refresh settings: %w", err)
	}
	m.settings = settings
	if m.session != nil && m.session.Status.Active() {
		if limit := settings.PhaseDuration(m.session.Phase); m.session.RemainingSeconds > limit {
			m.session.RemainingSeconds = limit
		}
	}
	return nil
}

// Start begins a fresh session in phase with the full configured duration.
func (m *Manager) Start(ctx context.Context, phase models.Phase, taskID *int64) error {
	if !phase.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPhase, phase)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil && m.session.Status.Active() {
		return fmt.Errorf("start %s: %w", phase, ErrSessionActive)
	}
	settings, err := m.store.GetUserSettings(ctx, m.userID)
	if err != nil {
		return fmt.Errorf("start %s: load settings: %w", phase, err)
	}

	now := m.now()
	s := models.Session{
		ID:               m.newID(),
		UserID:           m.userID,
		TaskID:           copyID(taskID),
		Phase:            phase,
		Status:           models.StatusRunning,
		RemainingSeconds: settings.PhaseDuration(phase),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := m.store.CreateSession(ctx, &s); err != nil {
		return fmt.Errorf("start %s: %w", phase, err)
	}
	m.settings = settings
	m.session = &s
	m.pending = 0
	return nil
}

// Pause halts a running session.
func (m *Manager) Pause(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.Status != models.StatusRunning {
		return m.invalid("pause")
	}
	next := *m.session
	next.Status = models.StatusPaused
	next.UpdatedAt = m.now()
	return m.commit(ctx, "pause", next)
}

// Resume restarts a paused session.
func (m *Manager) Resume(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.Status != models.StatusPaused {
		return m.invalid("resume")
	}
	next := *m.session
	next.Status = models.StatusRunning
	next.UpdatedAt = m.now()
	return m.commit(ctx, "resume", next)
}

// Toggle pauses a running session or resumes a paused one.
func (m *Manager) Toggle(ctx context.Context) error {
	switch m.Snapshot().State {
	case StateRunning:
		return m.Pause(ctx)
	case StatePaused:
		return m.Resume(ctx)
	}
	return m.invalid("toggle")
}

// Stop ends the session. Stopping an already stopped manager is a no-op, and
// so is stopping an idle one: there is no session to mark stopped, so the
// state stays idle.
func (m *Manager) Stop(ctx context.Context) error {
	ev, err := m.stop(ctx)
	if err != nil || ev == nil {
		return err
	}
	m.emit(ctx, *ev)
	return nil
}

// Terminate is an alias for Stop.
func (m *Manager) Terminate(ctx context.Context) error {
	return m.Stop(ctx)
}

func (m *Manager) stop(ctx context.Context) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || !m.session.Status.Active() {
		return nil, nil
	}
	now := m.now()
	prev := *m.session
	next := prev
	next.Status = models.StatusStopped
	next.UpdatedAt = now
	next.EndedAt = &now
	if err := m.commit(ctx, "stop", next); err != nil {
		if errors.Is(err, models.ErrSessionStopped) {
			return nil, nil
		}
		return nil, err
	}

	duration := m.settings.PhaseDuration(prev.Phase)
	if spent := duration - prev.RemainingSeconds; spent > 0 {
		m.logPhase(ctx, prev, models.PhaseLog{
			PlannedSeconds: duration,
			ActualSeconds:  spent,
			Interrupted:    true,
			EndedAt:        now,
		})
	}
	return &Event{
		Kind:      EventSessionStopped,
		UserID:    m.userID,
		SessionID: prev.ID,
		Finished:  prev.Phase,
		Next:      prev.Phase,
		Status:    models.StatusStopped,
		At:        now,
	}, nil
}

// Skip abandons the rest of the current phase and starts the next one running.
// The skipped phase counts towards the cycle.
func (m *Manager) Skip(ctx context.Context) error {
	ev, err := m.skip(ctx)
	if err != nil {
		return err
	}
	m.emit(ctx, ev)
	return nil
}

func (m *Manager) skip(ctx context.Context) (Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || !m.session.Status.Active() {
		return Event{}, m.invalid("skip")
	}
	prevSettings := m.settings
	settings := m.currentSettings(ctx)
	now := m.now()
	prev := *m.session
	next := advance(prev, settings)
	next.Status = models.StatusRunning
	next.UpdatedAt = now
	if err := m.commit(ctx, "skip", next); err != nil {
		return Event{}, err
	}
	m.settings = settings

	duration := prevSettings.PhaseDuration(prev.Phase)
	m.logPhase(ctx, prev, models.PhaseLog{
		PlannedSeconds: duration,
		ActualSeconds:  duration - prev.RemainingSeconds,
		Skipped:        true,
		EndedAt:        now,
	})
	return Event{
		Kind:      EventPhaseSkipped,
		UserID:    m.userID,
		SessionID: next.ID,
		Finished:  prev.Phase,
		Next:      next.Phase,
		Status:    next.Status,
		At:        now,
	}, nil
}

// Tick advances a running session by one second. Ticks on a paused, stopped
// or idle manager are ignored. When the phase runs out the session moves to
// the next phase and is persisted; otherwise the new remaining time is
// persisted every checkpoint interval.
func (m *Manager) Tick(ctx context.Context) error {
	ev, err := m.tick(ctx)
	if ev != nil {
		m.emit(ctx, *ev)
	}
	return err
}

func (m *Manager) tick(ctx context.Context) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.Status != models.StatusRunning {
		return nil, nil
	}
	now := m.now()
	if m.session.RemainingSeconds > 1 {
		m.session.RemainingSeconds--
		m.session.UpdatedAt = now
		m.pending++
		if m.pending < m.checkpointEvery {
			return nil, nil
		}
		m.pending = 0
		if err := m.store.UpdateSession(ctx, *m.session); err != nil {
			m.markStoppedOn(err)
			return nil, fmt.Errorf("checkpoint session: %w", err)
		}
		return nil, nil
	}

	// The phase is over. A failed write leaves the session as it was so the
	// next tick retries the transition.
	prevSettings := m.settings
	settings := m.currentSettings(ctx)
	prev := *m.session
	next := advance(prev, settings)
	next.Status = models.StatusPaused
	if settings.AutoStart(next.Phase) {
		next.Status = models.StatusRunning
	}
	next.UpdatedAt = now
	if err := m.commit(ctx, "complete phase", next); err != nil {
		return nil, err
	}
	m.settings = settings

	duration := prevSettings.PhaseDuration(prev.Phase)
	m.logPhase(ctx, prev, models.PhaseLog{
		PlannedSeconds: duration,
		ActualSeconds:  duration,
		EndedAt:        now,
	})
	if prev.Phase == models.PhaseWork && prev.TaskID != nil {
		util.LogError("increment task pomodoros", m.store.IncrementTaskPomodoros(ctx, *prev.TaskID))
	}
	return &Event{
		Kind:      EventPhaseCompleted,
		UserID:    m.userID,
		SessionID: next.ID,
		Finished:  prev.Phase,
		Next:      next.Phase,
		Status:    next.Status,
		At:        now,
	}, nil
}

// SetTask links the active session to taskID, or unlinks it when taskID is nil.
func (m *Manager) SetTask(ctx context.Context, taskID *int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || !m.session.Status.Active() {
		return fmt.Errorf("set task: %w", ErrNoSession)
	}
	next := *m.session
	next.TaskID = copyID(taskID)
	next.UpdatedAt = m.now()
	return m.commit(ctx, "set task", next)
}

// commit persists next and only then makes it the in-memory state.
func (m *Manager) commit(ctx context.Context, op string, next models.Session) error {
	if err := m.store.UpdateSession(ctx, next); err != nil {
		m.markStoppedOn(err)
		return fmt.Errorf("%s session: %w", op, err)
	}
	m.session = &next
	m.pending = 0
	return nil
}

// markStoppedOn follows the store when it reports that the session was
// stopped elsewhere, e.g. by another manager starting a new one.
func (m *Manager) markStoppedOn(err error) {
	if m.session == nil || !errors.Is(err, models.ErrSessionStopped) {
		return
	}
	now := m.now()
	s := *m.session
	s.Status = models.StatusStopped
	s.UpdatedAt = now
	s.EndedAt = &now
	m.session = &s
	m.pending = 0
}

// currentSettings re-reads settings so edits apply at the next phase boundary.
// The cached copy is used when the store is unavailable.
func (m *Manager) currentSettings(ctx context.Context) models.Settings {
	settings, err := m.store.GetUserSettings(ctx, m.userID)
	if err != nil {
		util.LogError("reload settings", err)
		return m.settings
	}
	return settings
}

func (m *Manager) logPhase(ctx context.Context, s models.Session, entry models.PhaseLog) {
	entry.SessionID = s.ID
	entry.UserID = s.UserID
	entry.TaskID = copyID(s.TaskID)
	entry.Phase = s.Phase
	util.LogError("log phase", m.store.LogPhase(ctx, entry))
}

func (m *Manager) invalid(action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, stateOf(m.session))
}

func (m *Manager) emit(ctx context.Context, ev Event) {
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(ctx, ev)
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// NextPhase returns the phase that follows finished, given the number of
// work phases completed so far in the session.
func NextPhase(finished models.Phase, completedWork, sessionsUntilLongBreak int) models.Phase {
	if finished.IsBreak() {
		return models.PhaseWork
	}
	if sessionsUntilLongBreak > 0 && completedWork > 0 && completedWork%sessionsUntilLongBreak == 0 {
		return models.PhaseLongBreak
	}
	return models.PhaseShortBreak
}

// advance counts the current phase as completed and moves s to the next one
// with its full duration.
func advance(s models.Session, settings models.Settings) models.Session {
	finished := s.Phase
	if finished == models.PhaseWork {
		s.CompletedWorkCount++
	} else {
		s.CompletedBreakCount++
	}
	s.Phase = NextPhase(finished, s.CompletedWorkCount, settings.SessionsUntilLongBreak)
	s.RemainingSeconds = settings.PhaseDuration(s.Phase)
	return s
}
