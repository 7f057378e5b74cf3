package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Settings form fields, in tab order. Numeric inputs come first.
const (
	fieldWork = iota
	fieldShortBreak
	fieldLongBreak
	fieldCycle
	fieldSound
	fieldNotifications
	fieldAutoBreaks
	fieldAutoWork
	fieldCount
)

const numericFields = fieldCycle + 1

var fieldLabels = [fieldCount]string{
	"Focus minutes",
	"Short break minutes",
	"Long break minutes",
	"Focus sessions per long break",
	"Sound",
	"Desktop notifications",
	"Auto-start breaks",
	"Auto-start focus",
}

type settingsForm struct {
	base    models.Settings
	inputs  [numericFields]textinput.Model
	toggles [fieldCount]bool
	focus   int
	err     string
}

func newSettingsForm(s models.Settings) settingsForm {
	f := settingsForm{base: s}
	for i, v := range []int{s.WorkMinutes, s.ShortBreakMinutes, s.LongBreakMinutes, s.SessionsUntilLongBreak} {
		ti := textinput.New()
		ti.CharLimit = 3
		ti.Width = 5
		ti.SetValue(strconv.Itoa(v))
		f.inputs[i] = ti
	}
	f.toggles[fieldSound] = s.SoundEnabled
	f.toggles[fieldNotifications] = s.NotificationsEnabled
	f.toggles[fieldAutoBreaks] = s.AutoStartBreaks
	f.toggles[fieldAutoWork] = s.AutoStartWork
	f.setFocus(fieldWork)
	return f
}

func (f *settingsForm) setFocus(field int) {
	f.focus = (field + fieldCount) % fieldCount
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// Settings parses the form into a settings value. Range checks are left to
// models.Settings.Validate.
func (f settingsForm) Settings() (models.Settings, error) {
	s := f.base
	targets := [numericFields]*int{&s.WorkMinutes, &s.ShortBreakMinutes, &s.LongBreakMinutes, &s.SessionsUntilLongBreak}
	for i, target := range targets {
		v, err := strconv.Atoi(strings.TrimSpace(f.inputs[i].Value()))
		if err != nil {
			return s, fmt.Errorf("%s must be a number", strings.ToLower(fieldLabels[i]))
		}
		*target = v
	}
	s.SoundEnabled = f.toggles[fieldSound]
	s.NotificationsEnabled = f.toggles[fieldNotifications]
	s.AutoStartBreaks = f.toggles[fieldAutoBreaks]
	s.AutoStartWork = f.toggles[fieldAutoWork]
	return s, nil
}

func (m MainModel) updateSettings(msg tea.KeyMsg) (MainModel, tea.Cmd) {
	f := &m.form
	switch msg.String() {
	case "esc":
		m.viewMode = ViewTimer
		return m, nil
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case " ":
		if f.focus >= numericFields {
			f.toggles[f.focus] = !f.toggles[f.focus]
			return m, nil
		}
	case "enter":
		return m.saveSettings()
	}
	if f.focus < numericFields {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// saveSettings validates and stores the form, then lets the manager pick up
// the new durations.
func (m MainModel) saveSettings() (MainModel, tea.Cmd) {
	s, err := m.form.Settings()
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	if err := m.db.SaveUserSettings(m.ctx, s); err != nil {
		m.form.err = fmt.Sprintf("Error saving settings: %v", err)
		return m, nil
	}
	if err := m.manager.RefreshSettings(m.ctx); err != nil {
		m.setStatusError(fmt.Sprintf("Settings saved but not applied: %v", err))
	} else {
		m.Message = "Settings saved"
	}
	m.viewMode = ViewTimer
	m.snapshot = m.manager.Snapshot()
	return m, nil
}
