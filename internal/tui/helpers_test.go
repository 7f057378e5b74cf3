package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/database"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	"github.com/akyairhashvil/pomotrack/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	ctx    context.Context
	db     *database.Database
	userID int64
	clock  *testClock
	events chan pomodoro.Event
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"), "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	userID, err := db.EnsureDefaultUser(ctx)
	if err != nil {
		t.Fatalf("EnsureDefaultUser failed: %v", err)
	}
	settings := testutil.NewSettings(userID).WithMinutes(1, 1, 2).WithLongBreakEvery(2).Quiet().Build()
	if err := db.SaveUserSettings(ctx, settings); err != nil {
		t.Fatalf("SaveUserSettings failed: %v", err)
	}
	return &testEnv{
		ctx:    ctx,
		db:     db,
		userID: userID,
		clock:  &testClock{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)},
		events: make(chan pomodoro.Event, 16),
	}
}

// model builds a MainModel over a freshly loaded manager.
func (e *testEnv) model(t *testing.T) MainModel {
	t.Helper()
	notifier := pomodoro.NotifierFunc(func(_ context.Context, ev pomodoro.Event) {
		e.events <- ev
	})
	mgr := pomodoro.NewManager(e.db, e.userID, pomodoro.WithClock(e.clock.Now), pomodoro.WithNotifier(notifier))
	if err := mgr.Load(e.ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	dir := t.TempDir()
	return NewMainModel(e.ctx, e.db, mgr, Options{
		Events:     e.events,
		ReportsDir: filepath.Join(dir, "reports"),
		ExportDir:  filepath.Join(dir, "exports"),
		Now:        e.clock.Now,
	})
}

func setupTestModel(t *testing.T) (MainModel, *testEnv) {
	t.Helper()
	env := setupTestEnv(t)
	return env.model(t), env
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m MainModel, keys ...string) MainModel {
	t.Helper()
	for _, k := range keys {
		model, _ := m.Update(keyMsg(k))
		m = model.(MainModel)
	}
	return m
}

func typeText(t *testing.T, m MainModel, text string) MainModel {
	t.Helper()
	for _, r := range text {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = model.(MainModel)
	}
	return m
}

func tick(t *testing.T, m MainModel, env *testEnv, n int) MainModel {
	t.Helper()
	for i := 0; i < n; i++ {
		env.clock.Advance(time.Second)
		model, _ := m.Update(TickMsg(env.clock.Now()))
		m = model.(MainModel)
	}
	return m
}

// drainEvents feeds every queued manager event back into the model.
func drainEvents(t *testing.T, m MainModel, env *testEnv) MainModel {
	t.Helper()
	for {
		select {
		case ev := <-env.events:
			model, _ := m.Update(EventMsg(ev))
			m = model.(MainModel)
		default:
			return m
		}
	}
}
