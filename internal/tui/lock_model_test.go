package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/util"
	"github.com/charmbracelet/bubbles/textinput"
)

const testPassphrase = "Tomato123"

func TestNewLockModel(t *testing.T) {
	input := textinput.New()
	lock := NewLockModel(config.AutoLockAfter, input)
	if lock.AutoLockAfter != config.AutoLockAfter {
		t.Fatalf("expected AutoLockAfter %s, got %s", config.AutoLockAfter, lock.AutoLockAfter)
	}
	if lock.LastInput.IsZero() {
		t.Fatalf("expected LastInput to be set")
	}
}

func TestLockModelRateLimit(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	lock := NewLockModel(config.AutoLockAfter, textinput.New())
	for i := 0; i < config.MaxPassphraseAttempts-1; i++ {
		lock.Fail(now, "Incorrect passphrase")
	}
	if limited, _ := lock.RateLimited(now); limited {
		t.Fatalf("expected no lockout before %d failures", config.MaxPassphraseAttempts)
	}
	lock.Fail(now, "Incorrect passphrase")
	limited, wait := lock.RateLimited(now)
	if !limited || wait != config.PassphraseLockout {
		t.Fatalf("expected lockout of %s, got %v %s", config.PassphraseLockout, limited, wait)
	}
	if limited, _ := lock.RateLimited(now.Add(config.PassphraseLockout)); limited {
		t.Fatalf("expected lockout to expire")
	}
}

func TestLockModelShouldAutoLock(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	lock := NewLockModel(time.Minute, textinput.New())
	lock.LastInput = now
	if lock.ShouldAutoLock(now.Add(time.Hour)) {
		t.Fatalf("expected no auto-lock without a passphrase")
	}
	lock.PassphraseHash = "hash"
	if lock.ShouldAutoLock(now.Add(30 * time.Second)) {
		t.Fatalf("expected no auto-lock before the timeout")
	}
	if !lock.ShouldAutoLock(now.Add(time.Minute)) {
		t.Fatalf("expected auto-lock after the timeout")
	}
}

func setPassphrase(t *testing.T, env *testEnv) string {
	t.Helper()
	hash, err := util.HashPassphrase(testPassphrase)
	if err != nil {
		t.Fatalf("HashPassphrase failed: %v", err)
	}
	if err := env.db.SetSetting(context.Background(), config.PassphraseSettingKey, hash); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	return hash
}

func TestModelStartsLockedWithPassphrase(t *testing.T) {
	env := setupTestEnv(t)
	setPassphrase(t, env)
	m := env.model(t)
	if !m.lock.Locked {
		t.Fatalf("expected model to start locked")
	}
	if !strings.Contains(m.View(), "Enter passphrase to unlock") {
		t.Fatalf("expected lock screen")
	}

	// Keys are swallowed by the lock screen.
	m = press(t, m, "s")
	if m.manager.Snapshot().Active() {
		t.Fatalf("expected locked model to ignore start")
	}

	m = typeText(t, m, "wrong")
	m = press(t, m, "enter")
	if !m.lock.Locked || m.lock.Attempts != 1 {
		t.Fatalf("expected failed attempt, got locked=%v attempts=%d", m.lock.Locked, m.lock.Attempts)
	}
	m = typeText(t, m, testPassphrase)
	m = press(t, m, "enter")
	if m.lock.Locked {
		t.Fatalf("expected unlock with the right passphrase: %s", m.lock.Message)
	}
	if m.lock.Attempts != 0 {
		t.Fatalf("expected attempts reset after unlock")
	}
}

func TestPassphraseRateLimited(t *testing.T) {
	env := setupTestEnv(t)
	setPassphrase(t, env)
	m := env.model(t)

	for i := 0; i < config.MaxPassphraseAttempts; i++ {
		m = typeText(t, m, "nope")
		m = press(t, m, "enter")
	}
	m = typeText(t, m, testPassphrase)
	m = press(t, m, "enter")
	if !m.lock.Locked {
		t.Fatalf("expected lockout to refuse the right passphrase")
	}
	if !strings.HasPrefix(m.lock.Message, "Too many attempts") {
		t.Fatalf("expected rate limit message, got %q", m.lock.Message)
	}

	env.clock.Advance(config.PassphraseLockout)
	m = typeText(t, m, testPassphrase)
	m = press(t, m, "enter")
	if m.lock.Locked {
		t.Fatalf("expected unlock after the lockout")
	}
}

func TestLockKeySetsNewPassphrase(t *testing.T) {
	m, env := setupTestModel(t)
	m = press(t, m, "L")
	if !m.lock.Locked || m.lock.Message != "Set passphrase to unlock" {
		t.Fatalf("expected set passphrase prompt, got %q", m.lock.Message)
	}

	m = typeText(t, m, "short")
	m = press(t, m, "enter")
	if !m.lock.Locked || m.lock.Attempts != 0 {
		t.Fatalf("expected weak passphrase to be refused without counting an attempt")
	}

	m = typeText(t, m, testPassphrase)
	m = press(t, m, "enter")
	if m.lock.Locked {
		t.Fatalf("expected unlock after setting a passphrase: %s", m.lock.Message)
	}
	stored, ok := env.db.GetSetting(env.ctx, config.PassphraseSettingKey)
	if !ok || !util.VerifyPassphrase(testPassphrase, stored) {
		t.Fatalf("expected passphrase hash to be stored")
	}
	if m.statusError == "" {
		t.Fatalf("expected a notice that the database stays unencrypted")
	}
}

func TestAutoLockOnIdleKeepsTimerRunning(t *testing.T) {
	env := setupTestEnv(t)
	setPassphrase(t, env)
	m := env.model(t)
	m = typeText(t, m, testPassphrase)
	m = press(t, m, "enter", "s")
	if m.lock.Locked || !m.manager.Snapshot().Active() {
		t.Fatalf("expected unlocked running session")
	}

	m.lock.AutoLockAfter = 5 * time.Second
	m = tick(t, m, env, 5)
	if !m.lock.Locked || m.lock.Message != "Session locked (idle)" {
		t.Fatalf("expected idle auto-lock, got locked=%v %q", m.lock.Locked, m.lock.Message)
	}
	m = tick(t, m, env, 3)
	if m.snapshot.Session.RemainingSeconds != 52 {
		t.Fatalf("expected timer to keep running behind the lock, got %d", m.snapshot.Session.RemainingSeconds)
	}
}
