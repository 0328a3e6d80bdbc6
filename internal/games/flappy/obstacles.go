package flappy

import (
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Obstacle is a vertical barrier with a passable gap.
// Only X changes after spawning.
type Obstacle struct {
	X      float64 // Horizontal position of the leading (left) edge
	GapTop float64 // Y of the top of the gap
}

// TopBox returns the collision box above the gap. It extends one field
// height above y=0 so a player overshooting the ceiling still hits it.
func (o Obstacle) TopBox(cfg config.Config) core.Box {
	top := -cfg.Field.Height
	return core.NewBox(o.X, top, cfg.Obstacles.Width, o.GapTop-top)
}

// BottomBox returns the collision box below the gap, extending one field
// height below the field.
func (o Obstacle) BottomBox(cfg config.Config) core.Box {
	gapBottom := o.GapTop + cfg.Obstacles.GapHeight
	return core.NewBox(o.X, gapBottom, cfg.Obstacles.Width, 2*cfg.Field.Height-gapBottom)
}

// Center returns the x coordinate of the obstacle's horizontal centre.
func (o Obstacle) Center(cfg config.Config) float64 {
	return o.X + cfg.Obstacles.Width/2
}

// World handles spawning, movement, and removal of obstacles.
// Obstacles are kept in spawn order, which is also ascending X because they
// all scroll at the same speed.
type World struct {
	cfg         config.Config
	rng         Rand
	obstacles   []Obstacle
	lastSpawnMs float64
}

// NewWorld creates an empty obstacle field.
func NewWorld(cfg config.Config, rng Rand) *World {
	w := &World{
		cfg:       cfg,
		rng:       rng,
		obstacles: make([]Obstacle, 0, 8),
	}
	w.Reset()
	return w
}

// Reset clears all obstacles and the spawn timer.
func (w *World) Reset() {
	w.obstacles = w.obstacles[:0]
	w.lastSpawnMs = 0
}

// SpawnDue appends a new obstacle at the right edge if more than one spawn
// interval has elapsed since the last one. Reports whether it spawned.
func (w *World) SpawnDue(elapsedMs float64) bool {
	if elapsedMs-w.lastSpawnMs <= w.cfg.Obstacles.SpawnIntervalMs {
		return false
	}
	w.obstacles = append(w.obstacles, Obstacle{
		X:      w.cfg.Field.Width + w.cfg.Obstacles.SpawnOffset,
		GapTop: w.gapTop(),
	})
	w.lastSpawnMs = elapsedMs
	return true
}

// gapTop draws a uniformly distributed gap position that keeps the whole gap
// inside the margins.
func (w *World) gapTop() float64 {
	lo, hi := w.cfg.GapTopRange()
	if hi <= lo {
		return lo // Edge case for very small fields
	}
	r := core.ClampF(w.rng.Float64(), 0, 1)
	return core.ClampF(lo+r*(hi-lo), lo, hi)
}

// Advance scrolls every obstacle left by travel and retires the ones whose
// trailing edge has left the field. It returns how many obstacle centres
// crossed playerX during this step, i.e. entered the window
// [playerX-travel, playerX).
func (w *World) Advance(travel, playerX float64) (crossed int) {
	half := w.cfg.Obstacles.Width / 2
	for i := range w.obstacles {
		o := &w.obstacles[i]
		before := o.X+half >= playerX
		o.X -= travel
		if before && o.X+half < playerX {
			crossed++
		}
	}

	// Leftmost obstacles leave first, so only the front needs checking.
	n := 0
	for n < len(w.obstacles) && w.obstacles[n].X+w.cfg.Obstacles.Width < 0 {
		n++
	}
	if n > 0 {
		w.obstacles = w.obstacles[n:]
	}

	return crossed
}

// Collides tests if the given box overlaps any obstacle.
func (w *World) Collides(b core.Box) bool {
	for _, o := range w.obstacles {
		if b.Intersects(o.TopBox(w.cfg)) || b.Intersects(o.BottomBox(w.cfg)) {
			return true
		}
	}
	return false
}

// Obstacles returns the live obstacles. Callers must not modify the slice.
func (w *World) Obstacles() []Obstacle {
	return w.obstacles
}
