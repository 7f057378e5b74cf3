package tui

import (
	"context"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/database"
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	"github.com/akyairhashvil/pomotrack/internal/util"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var AppVersion = "0"

// View modes.
const (
	ViewTimer = iota
	ViewTaskInput
	ViewSettings
)

// Options tunes a MainModel. Zero values fall back to defaults.
type Options struct {
	// Events carries manager events, usually fed by a notify.Dispatcher listener.
	Events       <-chan pomodoro.Event
	TickInterval time.Duration
	Theme        string
	ReportsDir   string
	ExportDir    string
	Now          func() time.Time
}

// MainModel is the bubbletea model of the timer screen.
type MainModel struct {
	ctx      context.Context
	db       Database
	manager  *pomodoro.Manager
	registry *HandlerRegistry
	events   <-chan pomodoro.Event

	viewMode int
	snapshot pomodoro.Snapshot
	stats    models.Stats
	logs     []models.PhaseLog
	tasks    []models.Task
	// taskIdx selects the task new sessions link to; -1 means none.
	taskIdx int

	progress  progress.Model
	theme     Theme
	lock      LockModel
	taskInput textinput.Model
	form      settingsForm

	tickInterval time.Duration
	reportsDir   string
	exportDir    string
	now          func() time.Time

	Message     string
	statusError string
	width       int
	height      int
}

func NewMainModel(ctx context.Context, db Database, manager *pomodoro.Manager, opts Options) MainModel {
	if ctx == nil {
		ctx = context.Background()
	}
	pi := textinput.New()
	pi.Placeholder = "Passphrase"
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '•'

	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.CharLimit = config.MaxTaskTitleLength
	ti.Width = 50

	m := MainModel{
		ctx:          ctx,
		db:           db,
		manager:      manager,
		registry:     newKeyRegistry(),
		events:       opts.Events,
		taskIdx:      -1,
		progress:     progress.New(progress.WithDefaultGradient()),
		lock:         NewLockModel(config.AutoLockAfter, pi),
		taskInput:    ti,
		tickInterval: opts.TickInterval,
		reportsDir:   opts.ReportsDir,
		exportDir:    opts.ExportDir,
		now:          opts.Now,
	}
	m.progress.Width = config.TargetProgressWidth
	SetTheme(opts.Theme)
	m.theme = CurrentTheme
	if m.tickInterval <= 0 {
		m.tickInterval = config.TickInterval
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.reportsDir == "" {
		m.reportsDir = util.ReportsDir(config.AppName)
	}
	if m.exportDir == "" {
		m.exportDir = m.reportsDir
	}
	m.lock.LastInput = m.now()
	if hash, ok := db.GetSetting(ctx, config.PassphraseSettingKey); ok && hash != "" {
		m.lock.PassphraseHash = hash
		m.lock.Lock("")
	}
	m.refreshData()
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tickCmd(), waitForEvent(m.events))
}

// refreshData reloads the snapshot, tasks and the day's stats.
func (m *MainModel) refreshData() {
	m.snapshot = m.manager.Snapshot()
	userID := m.manager.UserID()

	tasks, err := m.db.GetTasks(m.ctx, userID, false)
	if err != nil {
		m.setStatusError("Error loading tasks: " + err.Error())
	} else {
		m.tasks = tasks
	}
	m.taskIdx = m.indexOfLinkedTask()

	now := m.now()
	stats, err := m.db.GetDayStats(m.ctx, userID, now)
	if err != nil {
		m.setStatusError("Error loading stats: " + err.Error())
		return
	}
	m.stats = stats
	from, to := database.DayBounds(now)
	logs, err := m.db.GetPhaseLogs(m.ctx, userID, from, to)
	if err != nil {
		m.setStatusError("Error loading phase log: " + err.Error())
		return
	}
	m.logs = logs
}

// indexOfLinkedTask keeps the selection on the active session's task.
func (m MainModel) indexOfLinkedTask() int {
	id := m.snapshot.Session.TaskID
	if !m.snapshot.Active() || id == nil {
		if m.taskIdx >= len(m.tasks) {
			return -1
		}
		return m.taskIdx
	}
	for i, t := range m.tasks {
		if t.ID == *id {
			return i
		}
	}
	return -1
}

func (m MainModel) selectedTask() *models.Task {
	if m.taskIdx < 0 || m.taskIdx >= len(m.tasks) {
		return nil
	}
	t := m.tasks[m.taskIdx]
	return &t
}

func (m MainModel) selectedTaskID() *int64 {
	if t := m.selectedTask(); t != nil {
		return util.Ptr(t.ID)
	}
	return nil
}

func (m *MainModel) setStatusError(msg string) {
	m.statusError = msg
}
