package pomodoro

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
)

func TestTickerRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks int32
	done := make(chan error, 1)
	go func() {
		done <- Ticker{Interval: time.Millisecond}.Run(ctx, func(time.Time) {
			if atomic.AddInt32(&ticks, 1) == 3 {
				cancel()
			}
		})
	}()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("ticker did not stop")
	}
	if atomic.LoadInt32(&ticks) < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", ticks)
	}
}

func TestDriveEndsWhenSessionStops(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t, testSettings())
	if err := m.Drive(ctx, Ticker{Interval: time.Millisecond}, nil); err != nil {
		t.Fatalf("Drive on idle failed: %v", err)
	}
	if err := m.Start(ctx, models.PhaseWork, nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var seen int
	err := m.Drive(ctx, Ticker{Interval: time.Millisecond}, func(snap Snapshot, tickErr error) {
		if tickErr != nil {
			t.Errorf("tick failed: %v", tickErr)
		}
		seen++
		if seen == 5 {
			if err := m.Stop(ctx); err != nil {
				t.Errorf("Stop failed: %v", err)
			}
		}
	})
	if err != nil {
		t.Fatalf("Drive failed: %v", err)
	}
	if got := m.Snapshot().State; got != StateStopped {
		t.Fatalf("state = %s, want stopped", got)
	}
}

func TestDriveEndsWhenPhaseCompletesPaused(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t, testSettings())
	if err := m.Start(ctx, models.PhaseWork, nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := m.Drive(ctx, Ticker{Interval: time.Millisecond}, nil); err != nil {
		t.Fatalf("Drive failed: %v", err)
	}
	snap := m.Snapshot()
	if snap.State != StatePaused || snap.Session.Phase != models.PhaseShortBreak {
		t.Fatalf("expected paused short break, got %s/%s", snap.Session.Phase, snap.State)
	}
}

func TestDriveCancelled(t *testing.T) {
	m, _, _ := newTestManager(t, testSettings())
	if err := m.Start(context.Background(), models.PhaseWork, nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := m.Drive(ctx, Ticker{Interval: time.Hour}, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
