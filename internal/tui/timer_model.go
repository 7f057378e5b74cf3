package tui

import (
	"fmt"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/notify"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	tea "github.com/charmbracelet/bubbletea"
)

type TickMsg time.Time

// EventMsg delivers a manager event to the update loop.
type EventMsg pomodoro.Event

func (m MainModel) tickCmd() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForEvent blocks on ch for the next event. A nil channel yields no command.
func waitForEvent(ch <-chan pomodoro.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return EventMsg(ev)
	}
}

// handleTick advances a running session by one second and keeps the tick
// loop alive. The timer keeps counting behind the lock screen.
func (m MainModel) handleTick(_ TickMsg) (MainModel, tea.Cmd) {
	if m.lock.ShouldAutoLock(m.now()) {
		m.lock.Lock("Session locked (idle)")
	}
	if m.manager.Snapshot().State == pomodoro.StateRunning {
		if err := m.manager.Tick(m.ctx); err != nil {
			m.setStatusError(fmt.Sprintf("Timer not saved: %v", err))
		}
	}
	m.snapshot = m.manager.Snapshot()
	return m, m.tickCmd()
}

// handleEvent shows the event and reloads what it changed.
func (m MainModel) handleEvent(msg EventMsg) (MainModel, tea.Cmd) {
	ev := pomodoro.Event(msg)
	if ev.UserID == m.manager.UserID() {
		_, body := notify.Message(ev)
		m.Message = body
		m.refreshData()
	}
	return m, waitForEvent(m.events)
}
