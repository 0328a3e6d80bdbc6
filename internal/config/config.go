// Package config provides YAML-based configuration loading for the game
// engine. All physics and geometry constants are declared here once and are
// never changed while a game is running.
package config

// Config contains all configuration for the flap game.
type Config struct {
	Field     Field     `yaml:"field"`
	Physics   Physics   `yaml:"physics"`
	Obstacles Obstacles `yaml:"obstacles"`
	Player    Player    `yaml:"player"`
	Bounds    Bounds    `yaml:"bounds"`
	Idle      Idle      `yaml:"idle"`
	Store     Store     `yaml:"store"`
}

// Field defines the size of the simulated play field in world units.
type Field struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Physics defines the integration constants. Per-tick quantities are tuned
// against ReferenceFrameMs and scaled by dt/ReferenceFrameMs at runtime.
type Physics struct {
	Gravity          float64 `yaml:"gravity"`            // Added to vy per reference frame
	FlapImpulse      float64 `yaml:"flap_impulse"`       // vy after a flap (negative = up)
	ScrollSpeed      float64 `yaml:"scroll_speed"`       // Obstacle travel per reference frame
	ReferenceFrameMs float64 `yaml:"reference_frame_ms"` // Nominal frame the constants were tuned at
	MaxStepMs        float64 `yaml:"max_step_ms"`        // Upper clamp for a single dt
}

// Obstacles defines obstacle geometry and spawn timing.
type Obstacles struct {
	Width           float64 `yaml:"width"`
	GapHeight       float64 `yaml:"gap_height"`
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"`
	SpawnOffset     float64 `yaml:"spawn_offset"` // Distance right of the field edge
	Margin          float64 `yaml:"margin"`       // Keeps gaps away from top and bottom
}

// Player defines the player's fixed column and hitbox.
type Player struct {
	X      float64 `yaml:"x"`
	StartY float64 `yaml:"start_y"`
	Size   float64 `yaml:"size"`
}

// Bounds defines how far the player may leave the field before it counts as
// a crash.
type Bounds struct {
	CeilingSlack float64 `yaml:"ceiling_slack"` // Allowed overshoot above y=0
	GroundHeight float64 `yaml:"ground_height"` // Band at the bottom that counts as ground
}

// Idle defines the presentation-only bobbing shown while waiting to start.
type Idle struct {
	BobAmplitude float64 `yaml:"bob_amplitude"`
	BobRate      float64 `yaml:"bob_rate"` // Radians per millisecond
}

// Store selects where the best score is kept.
type Store struct {
	Backend string `yaml:"backend"` // "sqlite", "file" or "memory"
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

// Backend names accepted in Store.Backend.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// GapTopRange returns the inclusive range a spawned gap's top edge is drawn
// from so that the whole gap fits between the margins.
func (c Config) GapTopRange() (lo, hi float64) {
	lo = c.Obstacles.Margin
	hi = c.Field.Height - c.Obstacles.Margin - c.Obstacles.GapHeight
	return lo, hi
}

// GroundY returns the y coordinate below which the player has crashed.
func (c Config) GroundY() float64 {
	return c.Field.Height - c.Bounds.GroundHeight
}
