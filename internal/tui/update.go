package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case TickMsg:
		return m.handleTick(msg)
	case EventMsg:
		return m.handleEvent(msg)
	case progress.FrameMsg:
		newProg, cmd := m.progress.Update(msg)
		m.progress = newProg.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MainModel) handleWindowSize(msg tea.WindowSizeMsg) (MainModel, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	if m.width > 0 {
		target := config.TargetProgressWidth
		if m.width < config.CompactModeThreshold {
			target = m.width / 2
		}
		if target < config.MinProgressWidth {
			target = config.MinProgressWidth
		}
		m.progress.Width = target
	}
	return m, nil
}

func (m MainModel) handleKey(msg tea.KeyMsg) (MainModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	m.lock.LastInput = m.now()
	if m.lock.Locked {
		return m.updateLocked(msg)
	}

	// Clear transient messages on keypress
	m.Message = ""
	m.statusError = ""

	switch m.viewMode {
	case ViewTaskInput:
		return m.updateTaskInput(msg)
	case ViewSettings:
		return m.updateSettings(msg)
	}
	next, cmd, _ := m.registry.Handle(m, msg.String())
	return next, cmd
}

func (m MainModel) updateLocked(msg tea.KeyMsg) (MainModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, nil
	case tea.KeyEnter:
	default:
		var cmd tea.Cmd
		m.lock.PassphraseInput, cmd = m.lock.PassphraseInput.Update(msg)
		return m, cmd
	}

	now := m.now()
	if limited, wait := m.lock.RateLimited(now); limited {
		remaining := wait.Round(time.Second)
		if remaining < time.Second {
			remaining = time.Second
		}
		m.lock.Message = fmt.Sprintf("Too many attempts. Try again in %s", remaining)
		m.lock.PassphraseInput.Reset()
		m.lock.PassphraseInput.Focus()
		return m, nil
	}

	entered := strings.TrimSpace(m.lock.PassphraseInput.Value())
	result := newAuthHandler(m.db, m.ctx).ValidatePassphrase(entered, m.lock.PassphraseHash)
	if !result.Success {
		if m.lock.PassphraseHash != "" {
			m.lock.Fail(now, result.Message)
			return m, nil
		}
		m.lock.Message = result.Message
		m.lock.PassphraseInput.Reset()
		m.lock.PassphraseInput.Focus()
		return m, nil
	}
	m.lock.PassphraseHash = result.PassphraseHash
	m.lock.Unlock(now)
	if result.StatusError != "" {
		m.setStatusError(result.StatusError)
	}
	m.snapshot = m.manager.Snapshot()
	return m, nil
}

// apply turns a manager error into a status line and reloads the view data.
func (m MainModel) apply(action string, err error) MainModel {
	switch {
	case err == nil:
	case errors.Is(err, pomodoro.ErrSessionActive):
		m.Message = "A session is already active. Press x to stop it first."
	case errors.Is(err, pomodoro.ErrInvalidTransition):
		m.Message = fmt.Sprintf("Nothing to %s.", action)
	default:
		m.setStatusError(fmt.Sprintf("Error trying to %s: %v", action, err))
	}
	m.refreshData()
	return m
}

func handleStartWork(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if m.manager.Snapshot().State == pomodoro.StatePaused {
		return m.apply("resume", m.manager.Resume(m.ctx)), nil, true
	}
	return m.apply("start", m.manager.Start(m.ctx, models.PhaseWork, m.selectedTaskID())), nil, true
}

func handleStartBreak(m MainModel, key string) (MainModel, tea.Cmd, bool) {
	phase := models.PhaseShortBreak
	if key == "l" {
		phase = models.PhaseLongBreak
	}
	return m.apply("start", m.manager.Start(m.ctx, phase, m.selectedTaskID())), nil, true
}

func handleToggle(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	return m.apply("pause", m.manager.Toggle(m.ctx)), nil, true
}

func handleSkip(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	return m.apply("skip", m.manager.Skip(m.ctx)), nil, true
}

func handleStop(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if !m.manager.Snapshot().Active() {
		m.Message = "Nothing to stop."
		return m, nil, true
	}
	return m.apply("stop", m.manager.Stop(m.ctx)), nil, true
}

func handleCycleTask(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if len(m.tasks) == 0 {
		m.Message = "No open tasks. Press a to add one."
		return m, nil, true
	}
	m.taskIdx++
	if m.taskIdx >= len(m.tasks) {
		m.taskIdx = -1
	}
	if m.manager.Snapshot().Active() {
		return m.apply("link task", m.manager.SetTask(m.ctx, m.selectedTaskID())), nil, true
	}
	return m, nil, true
}

func handleAddTask(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	m.viewMode = ViewTaskInput
	m.taskInput.Reset()
	m.taskInput.Focus()
	return m, textinput.Blink, true
}

func (m MainModel) updateTaskInput(msg tea.KeyMsg) (MainModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.viewMode = ViewTimer
		m.taskInput.Blur()
		return m, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(m.taskInput.Value())
		if title == "" {
			m.Message = "Task title required"
			return m, nil
		}
		id, err := m.db.AddTask(m.ctx, m.manager.UserID(), title)
		m.viewMode = ViewTimer
		m.taskInput.Blur()
		if err != nil {
			m.setStatusError(fmt.Sprintf("Error adding task: %v", err))
			return m, nil
		}
		m.refreshData()
		if !m.manager.Snapshot().Active() {
			for i, t := range m.tasks {
				if t.ID == id {
					m.taskIdx = i
				}
			}
		}
		m.Message = fmt.Sprintf("Added task: %s", title)
		return m, nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func handleCompleteTask(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	t := m.selectedTask()
	if t == nil {
		m.Message = "Select a task with t first."
		return m, nil, true
	}
	if err := m.db.CompleteTask(m.ctx, t.ID); err != nil {
		m.setStatusError(fmt.Sprintf("Error completing task: %v", err))
		return m, nil, true
	}
	m.taskIdx = -1
	m.refreshData()
	m.Message = fmt.Sprintf("Completed: %s (%s)", t.Title, FormatPomodoroCount(t.Pomodoros))
	return m, nil, true
}

func handleOpenSettings(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	settings, err := m.db.GetUserSettings(m.ctx, m.manager.UserID())
	if err != nil {
		m.setStatusError(fmt.Sprintf("Error loading settings: %v", err))
		return m, nil, true
	}
	m.form = newSettingsForm(settings)
	m.viewMode = ViewSettings
	return m, textinput.Blink, true
}

func handleLock(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	m.lock.Lock("")
	return m, nil, true
}

func handleQuit(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	return m, tea.Quit, true
}
