package pomodoro

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/testutil"
)

const testUserID int64 = 1

// memStore is an in-memory Store used by the state machine tests.
type memStore struct {
	mu        sync.Mutex
	settings  models.Settings
	sessions  map[string]models.Session
	logs      []models.PhaseLog
	pomodoros map[int64]int
	updates   int
	failWrite error
}

func newMemStore(settings models.Settings) *memStore {
	return &memStore{
		settings:  settings,
		sessions:  map[string]models.Session{},
		pomodoros: map[int64]int{},
	}
}

func (s *memStore) GetUserSettings(ctx context.Context, userID int64) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.settings
	settings.UserID = userID
	return settings, nil
}

func (s *memStore) GetActiveSession(ctx context.Context, userID int64) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.Session
	for _, sess := range s.sessions {
		if sess.UserID != userID || !sess.Status.Active() {
			continue
		}
		if latest == nil || sess.UpdatedAt.After(latest.UpdatedAt) {
			cp := sess
			latest = &cp
		}
	}
	return latest, nil
}

func (s *memStore) CreateSession(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite != nil {
		return s.failWrite
	}
	for id, other := range s.sessions {
		if other.UserID == sess.UserID && other.Status.Active() {
			other.Status = models.StatusStopped
			s.sessions[id] = other
		}
	}
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *memStore) UpdateSession(ctx context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite != nil {
		return s.failWrite
	}
	prev, ok := s.sessions[sess.ID]
	if !ok {
		return fmt.Errorf("session %s not found", sess.ID)
	}
	if prev.Status == models.StatusStopped {
		return fmt.Errorf("session %s: %w", sess.ID, models.ErrSessionStopped)
	}
	s.sessions[sess.ID] = sess
	s.updates++
	return nil
}

func (s *memStore) LogPhase(ctx context.Context, entry models.PhaseLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	return nil
}

func (s *memStore) IncrementTaskPomodoros(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pomodoros[id]++
	return nil
}

func (s *memStore) setFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = err
}

func (s *memStore) stored(id string) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *memStore) phaseLogs() []models.PhaseLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PhaseLog(nil), s.logs...)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testSettings uses one-minute phases and a long break after every second work phase.
func testSettings() models.Settings {
	return testutil.NewSettings(testUserID).WithMinutes(1, 1, 2).WithLongBreakEvery(2).Build()
}

func newTestManager(t *testing.T, settings models.Settings, opts ...Option) (*Manager, *memStore, *fakeClock) {
	t.Helper()
	store := newMemStore(settings)
	clock := newFakeClock()
	seq := 0
	base := []Option{
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("session-%d", seq)
		}),
	}
	return NewManager(store, testUserID, append(base, opts...)...), store, clock
}

// tickN ticks m n times, advancing clock by a second per tick.
func tickN(t *testing.T, ctx context.Context, m *Manager, clock *fakeClock, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		clock.Advance(time.Second)
		if err := m.Tick(ctx); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
}

func checkRemainingInRange(t *testing.T, snap Snapshot) {
	t.Helper()
	if !snap.HasSession() {
		return
	}
	if snap.Session.RemainingSeconds < 0 || snap.Session.RemainingSeconds > snap.Duration {
		t.Fatalf("remaining %d outside [0, %d]", snap.Session.RemainingSeconds, snap.Duration)
	}
}
