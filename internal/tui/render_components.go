package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m MainModel) View() string {
	if m.lock.Locked {
		return m.theme.Base.Render(m.renderLock())
	}
	sections := []string{m.renderHeader(), m.renderTimer()}
	switch m.viewMode {
	case ViewTaskInput:
		sections = append(sections, m.renderTaskInput())
	case ViewSettings:
		sections = append(sections, m.renderSettings())
	default:
		sections = append(sections, m.renderTasks(), m.renderStats())
	}
	sections = append(sections, m.renderFooter())
	return m.theme.Base.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m MainModel) renderHeader() string {
	dbLabel := "DB: plain"
	if m.db.EncryptionStatus().Encrypted {
		dbLabel = "DB: encrypted"
	}
	title := fmt.Sprintf("%s v%s  |  %s  |  %s", config.AppName, VersionLabel(), m.now().Format("Mon 02 Jan"), dbLabel)
	return m.theme.Header.Render(title)
}

func (m MainModel) renderTimer() string {
	snap := m.snapshot
	if !snap.HasSession() {
		return m.box("Ready. Press s to focus, b for a short break, l for a long break.")
	}
	s := snap.Session
	remaining := time.Duration(s.RemainingSeconds) * time.Second

	style := m.theme.Phase(s.Phase)
	if snap.State == pomodoro.StatePaused {
		style = m.theme.Paused
	}
	lines := []string{
		style.Render(fmt.Sprintf("%s  %s", strings.ToUpper(s.Phase.Label()), FormatTimeRemaining(remaining))),
		m.progress.ViewAs(snap.Progress()),
		m.theme.Dim.Render(FormatSessionStatus(snap.State, remaining)),
		fmt.Sprintf("Focus sessions: %d  |  Breaks: %d  |  Long break every %d",
			s.CompletedWorkCount, s.CompletedBreakCount, snap.Settings.SessionsUntilLongBreak),
	}
	if snap.Active() {
		lines = append(lines, m.theme.Dim.Render("Next: "+m.nextPhaseLabel()))
	}
	if t := m.linkedTask(); t != "" {
		lines = append(lines, "Task: "+m.theme.Focused.Render(t))
	}
	return m.box(strings.Join(lines, "\n"))
}

func (m MainModel) nextPhaseLabel() string {
	s := m.snapshot.Session
	work := s.CompletedWorkCount
	if s.Phase == models.PhaseWork {
		work++
	}
	return pomodoro.NextPhase(s.Phase, work, m.snapshot.Settings.SessionsUntilLongBreak).Label()
}

func (m MainModel) linkedTask() string {
	id := m.snapshot.Session.TaskID
	if id == nil {
		return ""
	}
	for _, t := range m.tasks {
		if t.ID == *id {
			return truncateTitle(t.Title, m.titleWidth())
		}
	}
	return fmt.Sprintf("#%d", *id)
}

func (m MainModel) titleWidth() int {
	w := config.MaxTaskTitleWidth
	if m.width > 0 && m.width < config.CompactModeThreshold {
		w = m.width - 12
	}
	if w < config.MinProgressWidth {
		w = config.MinProgressWidth
	}
	return w
}

func (m MainModel) renderTasks() string {
	if len(m.tasks) == 0 {
		return m.box(m.theme.Dim.Render("No open tasks. Press a to add one."))
	}
	var lines []string
	lines = append(lines, m.theme.Highlight.Render("Tasks"))
	limit := len(m.tasks)
	if limit > config.MaxVisibleTasks {
		limit = config.MaxVisibleTasks
	}
	for i := 0; i < limit; i++ {
		t := m.tasks[i]
		cursor := "  "
		style := m.theme.Task
		if i == m.taskIdx {
			cursor = "> "
			style = m.theme.Focused
		}
		label := fmt.Sprintf("%s%s  (%s)", cursor, truncateTitle(t.Title, m.titleWidth()), FormatPomodoroCount(t.Pomodoros))
		lines = append(lines, style.Render(label))
	}
	if extra := len(m.tasks) - limit; extra > 0 {
		lines = append(lines, m.theme.Dim.Render(fmt.Sprintf("  +%d more", extra)))
	}
	return m.box(strings.Join(lines, "\n"))
}

func (m MainModel) renderStats() string {
	st := m.stats
	lines := []string{
		m.theme.Highlight.Render("Today"),
		fmt.Sprintf("Focus: %s  |  Pomodoros: %d  |  Breaks: %d  |  Skipped: %d  |  Interrupted: %d",
			FormatDuration(time.Duration(st.FocusSeconds)*time.Second), st.CompletedWork, st.CompletedBreaks, st.Skipped, st.Interrupted),
	}
	start := len(m.logs) - config.MaxVisibleLogs
	if start < 0 {
		start = 0
	}
	for _, l := range m.logs[start:] {
		lines = append(lines, m.theme.Dim.Render(FormatLogLine(l)))
	}
	return m.box(strings.Join(lines, "\n"))
}

// FormatLogLine renders one phase log as "HH:MM  Phase  outcome  duration".
func FormatLogLine(l models.PhaseLog) string {
	outcome := "done"
	switch {
	case l.Skipped:
		outcome = "skipped"
	case l.Interrupted:
		outcome = "stopped"
	}
	spent := time.Duration(l.ActualSeconds) * time.Second
	return fmt.Sprintf("%s  %-11s %-7s %s", l.EndedAt.Local().Format("15:04"), l.Phase.Label(), outcome, FormatDuration(spent))
}

func (m MainModel) renderTaskInput() string {
	return m.box("New task\n" + m.theme.Input.Render(m.taskInput.View()) + "\n" + m.theme.Dim.Render("[enter]Save|[esc]Cancel"))
}

func (m MainModel) renderSettings() string {
	f := m.form
	lines := []string{m.theme.Highlight.Render("Settings")}
	for i := 0; i < fieldCount; i++ {
		var value string
		if i < numericFields {
			value = f.inputs[i].View()
		} else if f.toggles[i] {
			value = "[x]"
		} else {
			value = "[ ]"
		}
		label := fmt.Sprintf("%-30s %s", fieldLabels[i], value)
		if i == f.focus {
			label = m.theme.Focused.Render("> " + label)
		} else {
			label = "  " + label
		}
		lines = append(lines, label)
	}
	if f.err != "" {
		lines = append(lines, m.theme.Error.Render(f.err))
	}
	lines = append(lines, m.theme.Dim.Render("[tab]Next|[space]Toggle|[enter]Save|[esc]Cancel"))
	return m.box(strings.Join(lines, "\n"))
}

func (m MainModel) renderLock() string {
	lockTitle := fmt.Sprintf("%s v%s", config.AppName, VersionLabel())
	body := []string{
		m.theme.Header.Render(lockTitle),
		"",
		m.lock.Message,
		m.theme.Input.Render(m.lock.PassphraseInput.View()),
	}
	if m.snapshot.Active() {
		remaining := time.Duration(m.snapshot.Session.RemainingSeconds) * time.Second
		body = append(body, m.theme.Dim.Render(fmt.Sprintf("%s  %s", m.snapshot.Session.Phase.Label(), FormatTimeRemaining(remaining))))
	}
	return strings.Join(body, "\n")
}

func (m MainModel) renderFooter() string {
	var content string
	switch {
	case m.statusError != "":
		content = m.theme.Error.Render(m.statusError)
	case m.Message != "":
		content = m.theme.Focused.Render(m.Message)
	case m.viewMode == ViewTimer:
		content = m.theme.Dim.Render(wrapHelp(m.helpLine(), m.innerWidth()))
	default:
		return ""
	}
	return m.box(content)
}

// helpLine labels the pause binding with what it will do next.
func (m MainModel) helpLine() string {
	help := m.registry.HelpForView(ViewTimer)
	if m.snapshot.State == pomodoro.StatePaused {
		help = strings.Replace(help, "[space]Pause", "[space]Resume", 1)
	}
	return help
}

func (m MainModel) box(content string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)
	if m.width > 0 {
		style = style.Width(m.innerWidth())
	}
	return style.Render(content)
}

// innerWidth is the content width inside a box, or 0 before the first resize.
func (m MainModel) innerWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - 8
	if w < 1 {
		w = 1
	}
	return w
}

// wrapHelp splits "[k]Desc|[k]Desc" help into balanced lines that fit width.
func wrapHelp(help string, width int) string {
	const sep = " | "
	var tokens []string
	for _, t := range strings.Split(help, "|") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return ""
	}
	total := ansi.StringWidth(strings.Join(tokens, sep))
	if width <= 0 || total <= width {
		return strings.Join(tokens, sep)
	}
	linesTarget := int(math.Ceil(float64(total) / float64(width)))
	idealMax := int(math.Ceil(float64(total) / float64(linesTarget)))
	if idealMax > width {
		idealMax = width
	}

	var lines []string
	var current []string
	currentWidth := 0
	for _, token := range tokens {
		w := ansi.StringWidth(token)
		if currentWidth > 0 && currentWidth+ansi.StringWidth(sep)+w > idealMax {
			lines = append(lines, strings.Join(current, sep))
			current, currentWidth = nil, 0
		}
		if currentWidth > 0 {
			currentWidth += ansi.StringWidth(sep)
		}
		current = append(current, token)
		currentWidth += w
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, sep))
	}
	return strings.Join(lines, "\n")
}
