// Package notify announces finished phases with a sound and a desktop
// notification, honouring the user's settings.
package notify

import (
	"context"
	"fmt"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	"github.com/akyairhashvil/pomotrack/internal/util"
)

// SettingsSource provides the toggles consulted for every event.
type SettingsSource interface {
	GetUserSettings(ctx context.Context, userID int64) (models.Settings, error)
}

type Player interface {
	Play() error
}

type Alerter interface {
	Notify(title, message string) error
}

// Dispatcher implements pomodoro.Notifier.
type Dispatcher struct {
	settings SettingsSource
	player   Player
	alerter  Alerter
	listener func(pomodoro.Event)
}

type Option func(*Dispatcher)

func WithPlayer(p Player) Option {
	return func(d *Dispatcher) { d.player = p }
}

func WithAlerter(a Alerter) Option {
	return func(d *Dispatcher) { d.alerter = a }
}

// WithListener registers fn to see every event, audible or not.
func WithListener(fn func(pomodoro.Event)) Option {
	return func(d *Dispatcher) { d.listener = fn }
}

func NewDispatcher(settings SettingsSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		settings: settings,
		player:   Chime{},
		alerter:  Desktop{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ pomodoro.Notifier = (*Dispatcher)(nil)

// Notify plays the chime and raises a desktop notification for completed
// phases when the user's settings allow it. Failures are logged.
func (d *Dispatcher) Notify(ctx context.Context, ev pomodoro.Event) {
	if d.listener != nil {
		d.listener(ev)
	}
	if ev.Kind != pomodoro.EventPhaseCompleted {
		return
	}
	settings, err := d.settings.GetUserSettings(ctx, ev.UserID)
	if err != nil {
		util.LogError("notify: load settings", err)
		return
	}
	if settings.SoundEnabled && d.player != nil {
		util.LogError("notify: play sound", d.player.Play())
	}
	if settings.NotificationsEnabled && d.alerter != nil {
		title, body := Message(ev)
		util.LogError("notify: desktop", d.alerter.Notify(title, body))
	}
}

// Message renders the user-facing text for ev.
func Message(ev pomodoro.Event) (title, body string) {
	title = config.AppName
	switch ev.Kind {
	case pomodoro.EventPhaseCompleted:
		body = fmt.Sprintf("%s finished. %s is up next", ev.Finished.Label(), ev.Next.Label())
		if ev.Status == models.StatusPaused {
			body += " when you are ready"
		}
		body += "."
	case pomodoro.EventPhaseSkipped:
		body = fmt.Sprintf("Skipped %s. Now: %s.", ev.Finished.Label(), ev.Next.Label())
	case pomodoro.EventSessionStopped:
		body = "Session stopped."
	default:
		body = string(ev.Kind)
	}
	return title, body
}
