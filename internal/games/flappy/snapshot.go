package flappy

// Snapshot is the read-only projection handed to renderers.
// It is a copy; changing it does not affect the engine.
type Snapshot struct {
	Phase     Phase
	ElapsedMs float64
	PlayerX   float64
	PlayerY   float64
	PlayerVel float64
	Obstacles []Obstacle
	Score     int
	Best      int
}

// Snapshot returns the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(e.world.Obstacles()))
	copy(obstacles, e.world.Obstacles())

	return Snapshot{
		Phase:     e.phase,
		ElapsedMs: e.elapsedMs,
		PlayerX:   e.cfg.Player.X,
		PlayerY:   e.playerY,
		PlayerVel: e.playerVel,
		Obstacles: obstacles,
		Score:     e.score,
		Best:      e.best,
	}
}
