package flappy

import "github.com/vovakirdan/flapper/internal/config"

// Autopilot decides when to flap from a snapshot alone. It is used by the
// headless simulate command to exercise the engine end to end.
type Autopilot struct {
	cfg config.Config
}

// NewAutopilot creates an autopilot for the given configuration.
func NewAutopilot(cfg config.Config) *Autopilot {
	return &Autopilot{cfg: cfg}
}

// ShouldFlap reports whether the player should flap now.
// In Ready it starts the run; in GameOver it waits for the caller to decide.
// While running it flaps when the player is falling below the lower part of
// the next gap.
func (a *Autopilot) ShouldFlap(s Snapshot) bool {
	switch s.Phase {
	case PhaseReady:
		return true
	case PhaseGameOver:
		return false
	}
	if s.PlayerVel < 0 {
		return false
	}
	return s.PlayerY > a.targetY(s)
}

// targetY returns the height the autopilot tries to stay above.
func (a *Autopilot) targetY(s Snapshot) float64 {
	half := a.cfg.Player.Size / 2
	for _, o := range s.Obstacles {
		// Skip obstacles the player has already cleared.
		if o.X+a.cfg.Obstacles.Width < s.PlayerX-half {
			continue
		}
		return o.GapTop + a.cfg.Obstacles.GapHeight - half - 8
	}
	return a.cfg.Player.StartY
}
