package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// Default returns the built-in configuration.
// Values match the embedded defaults/flappy.yaml.
func Default() Config {
	return Config{
		Field: Field{
			Width:  480,
			Height: 288,
		},
		Physics: Physics{
			Gravity:          0.4,
			FlapImpulse:      -7.5,
			ScrollSpeed:      2.4,
			ReferenceFrameMs: 16.67,
			MaxStepMs:        32,
		},
		Obstacles: Obstacles{
			Width:           60,
			GapHeight:       150,
			SpawnIntervalMs: 1400,
			SpawnOffset:     40,
			Margin:          40,
		},
		Player: Player{
			X:      80,
			StartY: 140,
			Size:   22,
		},
		Bounds: Bounds{
			CeilingSlack: 20,
			GroundHeight: 10,
		},
		Idle: Idle{
			BobAmplitude: 8,
			BobRate:      0.004,
		},
		Store: Store{
			Backend: BackendSQLite,
			Path:    "~/.flapper/scores.db",
			Key:     "flappy_best_score",
		},
	}
}
