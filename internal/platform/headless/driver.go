// Package headless drives a game engine from a ticker instead of a terminal.
// It backs the simulate command and is the reference driver for tests.
package headless

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/games/flappy"
)

// RenderFunc receives every frame. nowMs is the driver clock since Run
// started and only feeds decorations.
type RenderFunc func(snap flappy.Snapshot, nowMs float64)

// Driver runs one engine at a fixed refresh interval.
type Driver struct {
	Clock    Clock           // Defaults to SystemClock
	Interval time.Duration   // Defaults to 60 Hz
	Flaps    <-chan struct{} // Flap signals; any number per tick is one flap
	Render   RenderFunc      // Optional
	Logger   *log.Logger     // Optional

	MaxTicks       int  // Stop after this many ticks; 0 runs until ctx is done
	StopOnGameOver bool // Stop on the tick that ends a run
}

// Run drives e until ctx is cancelled, MaxTicks is reached, or the run ends
// with StopOnGameOver set. A panicking renderer stops the loop with an
// error. The ticker is stopped on every exit path.
func (d *Driver) Run(ctx context.Context, e *flappy.Engine) error {
	clock := d.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	interval := d.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	flaps := d.Flaps
	start := clock.Now()
	last := start

	logger.Debug("driver started", "interval", interval, "max_ticks", d.MaxTicks)

	for ticks := 0; d.MaxTicks == 0 || ticks < d.MaxTicks; ticks++ {
		select {
		case <-ctx.Done():
			logger.Debug("driver cancelled", "ticks", ticks)
			return ctx.Err()

		case now := <-ticker.C():
			dt := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now

			var flapped bool
			flaps, flapped = drain(flaps)
			if flapped {
				e.Flap()
			}
			e.Tick(dt)

			snap := e.Snapshot()
			nowMs := float64(now.Sub(start)) / float64(time.Millisecond)
			if err := d.render(snap, nowMs); err != nil {
				logger.Error("render failed", "tick", ticks, "error", err)
				return err
			}

			if d.StopOnGameOver && snap.Phase == flappy.PhaseGameOver {
				logger.Debug("run ended", "ticks", ticks+1, "score", snap.Score, "best", snap.Best)
				return nil
			}
		}
	}
	return nil
}

// drain consumes every pending flap signal without blocking and reports
// whether there was at least one. A closed channel is replaced by nil.
func drain(flaps <-chan struct{}) (<-chan struct{}, bool) {
	flapped := false
	for flaps != nil {
		select {
		case _, ok := <-flaps:
			if !ok {
				return nil, flapped
			}
			flapped = true
		default:
			return flaps, flapped
		}
	}
	return nil, flapped
}

func (d *Driver) render(snap flappy.Snapshot, nowMs float64) (err error) {
	if d.Render == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("headless: render panicked: %v", r)
		}
	}()
	d.Render(snap, nowMs)
	return nil
}
