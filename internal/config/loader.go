package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Load loads the game configuration.
// Search order: customPath -> ~/.flapper/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Files only need to set the keys they override; everything else keeps the
// built-in default. Only a broken customPath is reported as an error, other
// candidates are skipped when unreadable or invalid.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/flappy.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable field.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"physics.reference_frame_ms", c.Physics.ReferenceFrameMs},
		{"physics.max_step_ms", c.Physics.MaxStepMs},
		{"physics.scroll_speed", c.Physics.ScrollSpeed},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.gap_height", c.Obstacles.GapHeight},
		{"obstacles.spawn_interval_ms", c.Obstacles.SpawnIntervalMs},
		{"player.size", c.Player.Size},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalid, p.name, p.value)
		}
	}

	finite := []struct {
		name  string
		value float64
	}{
		{"physics.gravity", c.Physics.Gravity},
		{"physics.flap_impulse", c.Physics.FlapImpulse},
		{"obstacles.spawn_offset", c.Obstacles.SpawnOffset},
		{"obstacles.margin", c.Obstacles.Margin},
		{"player.x", c.Player.X},
		{"player.start_y", c.Player.StartY},
		{"bounds.ceiling_slack", c.Bounds.CeilingSlack},
		{"bounds.ground_height", c.Bounds.GroundHeight},
		{"idle.bob_amplitude", c.Idle.BobAmplitude},
		{"idle.bob_rate", c.Idle.BobRate},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalid, f.name, f.value)
		}
	}

	if c.Physics.FlapImpulse >= 0 {
		return fmt.Errorf("%w: physics.flap_impulse must be negative (upward), got %v", ErrInvalid, c.Physics.FlapImpulse)
	}
	if c.Physics.Gravity < 0 {
		return fmt.Errorf("%w: physics.gravity must not be negative, got %v", ErrInvalid, c.Physics.Gravity)
	}
	if c.Obstacles.Margin < 0 || c.Obstacles.SpawnOffset < 0 {
		return fmt.Errorf("%w: obstacles.margin and obstacles.spawn_offset must not be negative", ErrInvalid)
	}
	if lo, hi := c.GapTopRange(); hi < lo {
		return fmt.Errorf("%w: gap of %v with margin %v does not fit a field %v high",
			ErrInvalid, c.Obstacles.GapHeight, c.Obstacles.Margin, c.Field.Height)
	}

	switch c.Store.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown store.backend %q", ErrInvalid, c.Store.Backend)
	}
	if c.Store.Key == "" {
		return fmt.Errorf("%w: store.key must not be empty", ErrInvalid)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flapper", "configs", filename)
}
