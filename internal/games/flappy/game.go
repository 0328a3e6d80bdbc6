// Package flappy implements the simulation core of a flap-to-rise game.
// The player rises on each flap, falls under gravity, and must pass through
// the gaps of obstacles that scroll in from the right.
//
// The engine is a plain owned struct: a driver calls Flap when the player
// presses the button and Tick once per display refresh, then reads Snapshot
// to draw. It is not safe for concurrent use; every game instance gets its
// own Engine.
package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Phase is the coarse game state.
type Phase int

const (
	PhaseReady    Phase = iota // Waiting for the first flap
	PhaseRunning               // Physics and collisions active
	PhaseGameOver              // Run ended, waiting for a flap to go back to Ready
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// ScoreStore keeps the best score across runs and process restarts.
// Load returns 0 when nothing usable is stored. Save must not block the
// caller for long and has no failure mode visible to the engine.
type ScoreStore interface {
	Load() int
	Save(best int)
}

// Rand is the random source used to place gaps. *rand.Rand satisfies it.
type Rand interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
}

// NewRand returns a seeded Rand.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

type nopStore struct{}

func (nopStore) Load() int { return 0 }
func (nopStore) Save(int)  {}

// Engine owns the complete state of one game.
type Engine struct {
	cfg   config.Config
	store ScoreStore

	phase     Phase
	elapsedMs float64 // Simulation time of the current run
	playerY   float64 // Player centre
	playerVel float64 // Positive = down
	world     *World
	score     int
	best      int

	// flapConsumed is set when a flap changed the phase since the last Tick;
	// further flaps in the same window are absorbed.
	flapConsumed bool
}

// New creates an engine in the Ready phase with the best score read from
// store. A nil store keeps the best score in memory only.
func New(cfg config.Config, store ScoreStore, rng Rand) *Engine {
	if store == nil {
		store = nopStore{}
	}
	if rng == nil {
		rng = NewRand(1)
	}

	e := &Engine{
		cfg:   cfg,
		store: store,
		world: NewWorld(cfg, rng),
		best:  max(0, store.Load()),
	}
	e.reset()
	return e
}

// reset puts the run-scoped state back to its initial values.
// It does not touch phase or best.
func (e *Engine) reset() {
	e.elapsedMs = 0
	e.playerY = e.cfg.Player.StartY
	e.playerVel = 0
	e.score = 0
	e.world.Reset()
}

// Flap applies the single gameplay input.
//
//	Ready    -> reset and start running
//	Running  -> set the upward impulse
//	GameOver -> reset and return to Ready
//
// Flaps arriving between two ticks coalesce: once one of them has changed
// the phase, the rest are ignored until the next Tick. While running, every
// flap re-arms the same impulse.
func (e *Engine) Flap() {
	switch e.phase {
	case PhaseReady:
		if e.flapConsumed {
			return
		}
		e.reset()
		e.phase = PhaseRunning
		e.flapConsumed = true
	case PhaseRunning:
		if e.flapConsumed {
			return
		}
		e.playerVel = e.cfg.Physics.FlapImpulse
	case PhaseGameOver:
		if e.flapConsumed {
			return
		}
		e.reset()
		e.phase = PhaseReady
		e.flapConsumed = true
	}
}

// Tick advances the simulation by dtMs milliseconds of wall-clock time.
// dtMs is clamped to [0, MaxStepMs]; NaN and non-positive values are a no-op.
// Outside the Running phase nothing is advanced.
func (e *Engine) Tick(dtMs float64) {
	e.flapConsumed = false

	if e.phase != PhaseRunning {
		return
	}
	dt := e.clampStep(dtMs)
	if dt == 0 {
		return
	}

	k := dt / e.cfg.Physics.ReferenceFrameMs
	e.elapsedMs += dt

	// Semi-implicit Euler: velocity first, then position with the new velocity.
	e.playerVel += e.cfg.Physics.Gravity * k
	e.playerY += e.playerVel * k

	e.world.SpawnDue(e.elapsedMs)
	crossed := e.world.Advance(e.cfg.Physics.ScrollSpeed*k, e.cfg.Player.X)

	collided := e.collided()
	e.score += crossed

	if collided {
		e.endRun()
	}
}

// clampStep maps any dt to a usable step length.
func (e *Engine) clampStep(dtMs float64) float64 {
	if math.IsNaN(dtMs) || dtMs <= 0 {
		return 0
	}
	return math.Min(dtMs, e.cfg.Physics.MaxStepMs)
}

// endRun moves to GameOver and records the best score.
func (e *Engine) endRun() {
	e.phase = PhaseGameOver
	if e.score > e.best {
		e.best = e.score
	}
	e.store.Save(e.best)
}

// playerBox returns the player's collision box.
func (e *Engine) playerBox() core.Box {
	return core.CenteredBox(e.cfg.Player.X, e.playerY, e.cfg.Player.Size)
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Score returns the score of the current run.
func (e *Engine) Score() int {
	return e.score
}

// Best returns the best score recorded so far.
func (e *Engine) Best() int {
	return e.best
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}
