package tui

import (
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/charmbracelet/bubbles/textinput"
)

type LockModel struct {
	Locked          bool
	Message         string
	PassphraseHash  string
	PassphraseInput textinput.Model
	LastInput       time.Time
	AutoLockAfter   time.Duration
	Attempts        int
	LockUntil       time.Time
}

func NewLockModel(autoLockAfter time.Duration, input textinput.Model) LockModel {
	return LockModel{
		PassphraseInput: input,
		AutoLockAfter:   autoLockAfter,
		LastInput:       time.Now(),
	}
}

// Lock shows the lock screen with a prompt matching whether a passphrase exists.
func (l *LockModel) Lock(message string) {
	if message == "" {
		message = "Enter passphrase to unlock"
		if l.PassphraseHash == "" {
			message = "Set passphrase to unlock"
		}
	}
	l.Locked = true
	l.Message = message
	l.PassphraseInput.Reset()
	l.PassphraseInput.Focus()
}

// Unlock clears the lock screen and the failed attempt counter.
func (l *LockModel) Unlock(now time.Time) {
	l.Locked = false
	l.Message = ""
	l.Attempts = 0
	l.LockUntil = time.Time{}
	l.LastInput = now
	l.PassphraseInput.Reset()
	l.PassphraseInput.Blur()
}

// ShouldAutoLock reports whether the idle timeout has passed.
func (l LockModel) ShouldAutoLock(now time.Time) bool {
	return !l.Locked && l.PassphraseHash != "" && l.AutoLockAfter > 0 && now.Sub(l.LastInput) >= l.AutoLockAfter
}

// RateLimited reports whether input is refused and for how long.
func (l LockModel) RateLimited(now time.Time) (bool, time.Duration) {
	if l.LockUntil.IsZero() || !now.Before(l.LockUntil) {
		return false, 0
	}
	return true, l.LockUntil.Sub(now)
}

// Fail records a wrong passphrase and starts a lockout after too many.
func (l *LockModel) Fail(now time.Time, message string) {
	l.Attempts++
	if l.Attempts >= config.MaxPassphraseAttempts {
		l.Attempts = 0
		l.LockUntil = now.Add(config.PassphraseLockout)
	}
	l.Message = message
	l.PassphraseInput.Reset()
	l.PassphraseInput.Focus()
}
