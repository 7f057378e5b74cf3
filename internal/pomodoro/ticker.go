package pomodoro

import (
	"context"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
)

// Ticker fires on a fixed interval until its context is cancelled.
type Ticker struct {
	Interval time.Duration
}

// Run calls fn on every tick and returns ctx.Err() once ctx is done.
func (t Ticker) Run(ctx context.Context, fn func(time.Time)) error {
	interval := t.Interval
	if interval <= 0 {
		interval = config.TickInterval
	}
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tk.C:
			fn(now)
		}
	}
}

// Drive ticks m until ctx is cancelled or the session stops running, either
// because it was paused or stopped or because a phase ended without auto-start.
// observe, when set, sees the snapshot and tick error after every tick.
func (m *Manager) Drive(ctx context.Context, t Ticker, observe func(Snapshot, error)) error {
	if m.Snapshot().State != StateRunning {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ended := false
	err := t.Run(ctx, func(time.Time) {
		tickErr := m.Tick(ctx)
		snap := m.Snapshot()
		if observe != nil {
			observe(snap, tickErr)
		}
		if snap.State != StateRunning {
			ended = true
			cancel()
		}
	})
	if ended {
		return nil
	}
	return err
}
