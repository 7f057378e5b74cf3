package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Defaults.WorkMinutes != DefaultWorkMinutes {
		t.Fatalf("WorkMinutes = %d, want %d", cfg.Defaults.WorkMinutes, DefaultWorkMinutes)
	}
	if cfg.Profile != DefaultUserSlug {
		t.Fatalf("Profile = %q, want %q", cfg.Profile, DefaultUserSlug)
	}
	if cfg.TickInterval != TickInterval {
		t.Fatalf("TickInterval = %v, want %v", cfg.TickInterval, TickInterval)
	}
}

func TestWriteDefaultThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}
	if err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected second WriteDefault without force to fail")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Fatalf("WriteDefault with force failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Defaults.SessionsUntilLongBreak != DefaultSessionsUntilLongBreak {
		t.Fatalf("SessionsUntilLongBreak = %d", cfg.Defaults.SessionsUntilLongBreak)
	}
	if !cfg.Defaults.SoundEnabled {
		t.Fatalf("expected sound enabled by default")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	body := "theme: dracula\ntick_interval: 2s\ndefaults:\n  work_minutes: 50\n  auto_start_breaks: true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("POMOTRACK_DEFAULTS_SHORT_BREAK_MINUTES", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "dracula" {
		t.Fatalf("Theme = %q, want dracula", cfg.Theme)
	}
	if cfg.TickInterval != 2*time.Second {
		t.Fatalf("TickInterval = %v, want 2s", cfg.TickInterval)
	}
	if cfg.Defaults.WorkMinutes != 50 || !cfg.Defaults.AutoStartBreaks {
		t.Fatalf("file values not applied: %+v", cfg.Defaults)
	}
	if cfg.Defaults.ShortBreakMinutes != 10 {
		t.Fatalf("env override not applied: %d", cfg.Defaults.ShortBreakMinutes)
	}
	if cfg.Defaults.LongBreakMinutes != DefaultLongBreakMinutes {
		t.Fatalf("unset key should keep default, got %d", cfg.Defaults.LongBreakMinutes)
	}
}
