package tui

import (
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name       string
	Base       lipgloss.Style
	Border     lipgloss.Color
	Header     lipgloss.Style
	Work       lipgloss.Style
	ShortBreak lipgloss.Style
	LongBreak  lipgloss.Style
	Paused     lipgloss.Style
	Task       lipgloss.Style
	DoneTask   lipgloss.Style
	Input      lipgloss.Style
	Error      lipgloss.Style
	Focused    lipgloss.Style
	Dim        lipgloss.Style
	Highlight  lipgloss.Style
}

// Phase returns the style used for the timer while phase is current.
func (t Theme) Phase(phase models.Phase) lipgloss.Style {
	switch phase {
	case models.PhaseShortBreak:
		return t.ShortBreak
	case models.PhaseLongBreak:
		return t.LongBreak
	default:
		return t.Work
	}
}

var Themes = map[string]Theme{
	"default": {
		Name:       "Default",
		Base:       lipgloss.NewStyle().Margin(1, 2),
		Border:     lipgloss.Color("63"),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Align(lipgloss.Center),
		Work:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		ShortBreak: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		LongBreak:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Paused:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Task:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		DoneTask:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Input:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(50),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Focused:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:  lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:       "Dracula",
		Base:       lipgloss.NewStyle().Margin(1, 2),
		Border:     lipgloss.Color("62"),                                                                   // Purple
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true).Align(lipgloss.Center), // Cyan
		Work:       lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true),                       // Red/Pink
		ShortBreak: lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true),                       // Green
		LongBreak:  lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),                       // Cyan
		Paused:     lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),                       // Orange
		Task:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")),                                  // White
		DoneTask:   lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),               // Comment
		Input:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(50),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Focused:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:  lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}
