package models

import (
	"errors"
	"testing"
)

func TestSessionStatusConstants(t *testing.T) {
	if StatusRunning != "running" {
		t.Fatalf("StatusRunning = %q", StatusRunning)
	}
	if StatusPaused != "paused" {
		t.Fatalf("StatusPaused = %q", StatusPaused)
	}
	if StatusStopped != "stopped" {
		t.Fatalf("StatusStopped = %q", StatusStopped)
	}
	if !StatusRunning.Active() || !StatusPaused.Active() || StatusStopped.Active() {
		t.Fatalf("unexpected Active() results")
	}
}

func TestPhaseHelpers(t *testing.T) {
	cases := []struct {
		phase   Phase
		valid   bool
		isBreak bool
	}{
		{PhaseWork, true, false},
		{PhaseShortBreak, true, true},
		{PhaseLongBreak, true, true},
		{Phase("nap"), false, false},
	}
	for _, tc := range cases {
		if got := tc.phase.Valid(); got != tc.valid {
			t.Fatalf("%q.Valid() = %v, want %v", tc.phase, got, tc.valid)
		}
		if got := tc.phase.IsBreak(); got != tc.isBreak {
			t.Fatalf("%q.IsBreak() = %v, want %v", tc.phase, got, tc.isBreak)
		}
	}
}

func TestSettingsPhaseDuration(t *testing.T) {
	s := Settings{WorkMinutes: 25, ShortBreakMinutes: 5, LongBreakMinutes: 15}
	if got := s.PhaseDuration(PhaseWork); got != 1500 {
		t.Fatalf("work duration = %d, want 1500", got)
	}
	if got := s.PhaseDuration(PhaseShortBreak); got != 300 {
		t.Fatalf("short break duration = %d, want 300", got)
	}
	if got := s.PhaseDuration(PhaseLongBreak); got != 900 {
		t.Fatalf("long break duration = %d, want 900", got)
	}
}

func TestSettingsAutoStart(t *testing.T) {
	s := Settings{AutoStartBreaks: true}
	if !s.AutoStart(PhaseShortBreak) || !s.AutoStart(PhaseLongBreak) {
		t.Fatalf("expected breaks to auto-start")
	}
	if s.AutoStart(PhaseWork) {
		t.Fatalf("expected work not to auto-start")
	}
}

func TestSessionZeroValues(t *testing.T) {
	var s Session
	if s.TaskID != nil || s.EndedAt != nil {
		t.Fatalf("expected nil pointer fields by default")
	}
}

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(*Settings)
		valid bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"zero work", func(s *Settings) { s.WorkMinutes = 0 }, false},
		{"huge long break", func(s *Settings) { s.LongBreakMinutes = 1000 }, false},
		{"zero cycle", func(s *Settings) { s.SessionsUntilLongBreak = 0 }, false},
		{"one minute phases", func(s *Settings) { s.WorkMinutes, s.ShortBreakMinutes, s.LongBreakMinutes = 1, 1, 1 }, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings(1)
			tc.mod(&s)
			err := s.Validate()
			if tc.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}
