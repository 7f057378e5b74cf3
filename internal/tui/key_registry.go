package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler reacts to a key press. handled=false lets lower priority bindings try.
type KeyHandler func(m MainModel, key string) (MainModel, tea.Cmd, bool)

type KeyBinding struct {
	Key         string
	Label       string // shown in help instead of Key, e.g. "space"
	Handler     KeyHandler
	Description string
	ViewModes   []int
	Priority    int
}

func (b KeyBinding) AppliesToView(mode int) bool {
	if len(b.ViewModes) == 0 {
		return true
	}
	for _, v := range b.ViewModes {
		if v == mode {
			return true
		}
	}
	return false
}

func (b KeyBinding) helpKey() string {
	if b.Label != "" {
		return b.Label
	}
	return b.Key
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m MainModel, key string) (MainModel, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if b.Key == key && b.AppliesToView(m.viewMode) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) GetBindingsForView(mode int) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesToView(mode) {
			out = append(out, b)
		}
	}
	return out
}

func (r *HandlerRegistry) HelpForView(mode int) string {
	bindings := r.GetBindingsForView(mode)
	seen := make(map[string]bool)
	var parts []string
	for _, b := range bindings {
		if b.Description == "" {
			continue
		}
		if seen[b.Key] {
			continue
		}
		seen[b.Key] = true
		parts = append(parts, "["+b.helpKey()+"]"+b.Description)
	}
	return strings.Join(parts, "|")
}

// newKeyRegistry wires the timer screen bindings. Session keys rank above task
// and tool keys so the help line reads in that order.
func newKeyRegistry() *HandlerRegistry {
	r := NewHandlerRegistry()
	timer := []int{ViewTimer}
	for _, b := range []KeyBinding{
		{Key: "s", Description: "Start/Resume", Handler: handleStartWork, Priority: 90},
		{Key: "b", Description: "Short break", Handler: handleStartBreak, Priority: 89},
		{Key: "l", Description: "Long break", Handler: handleStartBreak, Priority: 88},
		{Key: " ", Label: "space", Description: "Pause", Handler: handleToggle, Priority: 87},
		{Key: "n", Description: "Skip", Handler: handleSkip, Priority: 86},
		{Key: "x", Description: "Stop", Handler: handleStop, Priority: 85},
		{Key: "t", Description: "Task", Handler: handleCycleTask, Priority: 70},
		{Key: "a", Description: "Add task", Handler: handleAddTask, Priority: 69},
		{Key: "d", Description: "Done", Handler: handleCompleteTask, Priority: 68},
		{Key: "o", Description: "Settings", Handler: handleOpenSettings, Priority: 50},
		{Key: "r", Description: "Report", Handler: handleReport, Priority: 49},
		{Key: "ctrl+e", Description: "Export", Handler: handleExport, Priority: 48},
		{Key: "L", Description: "Lock", Handler: handleLock, Priority: 47},
		{Key: "q", Description: "Quit", Handler: handleQuit, Priority: 10},
	} {
		b.ViewModes = timer
		r.Register(b)
	}
	return r
}
