package tui

import (
	"fmt"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	"github.com/charmbracelet/x/ansi"
)

// FormatDuration formats a duration for display (e.g., "2h 15m", "45s").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatTimeRemaining formats remaining time as MM:SS.
func FormatTimeRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return "00:00"
	}
	mins := int(remaining.Minutes())
	secs := int(remaining.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// FormatSessionStatus returns a human-readable session status.
func FormatSessionStatus(state pomodoro.State, remaining time.Duration) string {
	switch state {
	case pomodoro.StateRunning:
		return fmt.Sprintf("Running - %s remaining", FormatTimeRemaining(remaining))
	case pomodoro.StatePaused:
		return fmt.Sprintf("Paused - %s remaining", FormatTimeRemaining(remaining))
	case pomodoro.StateStopped:
		return "Stopped"
	default:
		return "Ready"
	}
}

// FormatPomodoroCount formats a task's completed work phases.
func FormatPomodoroCount(n int) string {
	switch n {
	case 0:
		return "no pomodoros"
	case 1:
		return "1 pomodoro"
	}
	return fmt.Sprintf("%d pomodoros", n)
}

func truncateTitle(title string, width int) string {
	if width <= 0 {
		width = config.MaxTaskTitleWidth
	}
	return ansi.Truncate(title, width, config.TruncationSuffix)
}
