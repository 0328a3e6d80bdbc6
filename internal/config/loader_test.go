package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML and Default() disagree:\nyaml:    %+v\ndefault: %+v", cfg, Default())
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 0.25\nstore:\n  backend: memory\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.25 {
		t.Errorf("gravity = %v, expected 0.25", cfg.Physics.Gravity)
	}
	if cfg.Physics.FlapImpulse != Default().Physics.FlapImpulse {
		t.Errorf("unset keys should keep defaults, flap_impulse = %v", cfg.Physics.FlapImpulse)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("backend = %q, expected memory", cfg.Store.Backend)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero field width", func(c *Config) { c.Field.Width = 0 }},
		{"zero reference frame", func(c *Config) { c.Physics.ReferenceFrameMs = 0 }},
		{"upward gravity", func(c *Config) { c.Physics.Gravity = -1 }},
		{"downward flap", func(c *Config) { c.Physics.FlapImpulse = 3 }},
		{"gap does not fit", func(c *Config) { c.Obstacles.GapHeight = 250 }},
		{"zero spawn interval", func(c *Config) { c.Obstacles.SpawnIntervalMs = 0 }},
		{"NaN gravity", func(c *Config) { c.Physics.Gravity = math.NaN() }},
		{"NaN flap", func(c *Config) { c.Physics.FlapImpulse = math.NaN() }},
		{"NaN margin", func(c *Config) { c.Obstacles.Margin = math.NaN() }},
		{"infinite spawn offset", func(c *Config) { c.Obstacles.SpawnOffset = math.Inf(1) }},
		{"NaN player x", func(c *Config) { c.Player.X = math.NaN() }},
		{"infinite start y", func(c *Config) { c.Player.StartY = math.Inf(-1) }},
		{"NaN ceiling slack", func(c *Config) { c.Bounds.CeilingSlack = math.NaN() }},
		{"NaN ground height", func(c *Config) { c.Bounds.GroundHeight = math.NaN() }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"empty key", func(c *Config) { c.Store.Key = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error should wrap ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  spawn_interval_ms: 900\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Obstacles.SpawnIntervalMs != 900 {
		t.Errorf("spawn_interval_ms = %v, expected 900", cfg.Obstacles.SpawnIntervalMs)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field:\n  height: 100\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() of an unplayable field should wrap ErrInvalid, got %v", err)
	}
}

func TestParseRejectsNaN(t *testing.T) {
	if _, err := Parse([]byte("physics:\n  gravity: .nan\n")); !errors.Is(err, ErrInvalid) {
		t.Errorf("Parse() of a NaN gravity should wrap ErrInvalid, got %v", err)
	}
}

func TestGapTopRange(t *testing.T) {
	lo, hi := Default().GapTopRange()
	if lo != 40 || hi != 98 {
		t.Errorf("GapTopRange() = [%v, %v], expected [40, 98]", lo, hi)
	}
	if got := Default().GroundY(); got != 278 {
		t.Errorf("GroundY() = %v, expected 278", got)
	}
}
