package headless

import (
	"sync"
	"time"
)

// Clock is a monotonic time source with tickers.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers the clock's time at a fixed interval.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// NewTicker wraps time.NewTicker.
func (SystemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop() { s.t.Stop() }

// StepClock is a virtual clock whose tickers fire as fast as they are read,
// each tick exactly one step after the previous one. Runs driven by it are
// reproducible regardless of host speed.
type StepClock struct {
	start time.Time
	step  time.Duration
}

// NewStepClock creates a virtual clock starting at start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{start: start, step: step}
}

// Now returns the clock's start time.
func (c *StepClock) Now() time.Time { return c.start }

// NewTicker ignores d; ticks are spaced by the clock's step.
func (c *StepClock) NewTicker(time.Duration) Ticker {
	t := &stepTicker{
		c:    make(chan time.Time),
		stop: make(chan struct{}),
	}
	go func() {
		now := c.start
		for {
			now = now.Add(c.step)
			select {
			case t.c <- now:
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

type stepTicker struct {
	c    chan time.Time
	stop chan struct{}
	once sync.Once
}

func (t *stepTicker) C() <-chan time.Time { return t.c }

func (t *stepTicker) Stop() {
	t.once.Do(func() { close(t.stop) })
}
