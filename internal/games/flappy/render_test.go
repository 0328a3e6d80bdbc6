package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/flapper/internal/core"
)

func TestRenderReady(t *testing.T) {
	e := New(testConfig(), &memStore{loaded: 17}, nil)
	dst := core.NewScreen(80, 24)

	Render(e.Snapshot(), e.Config(), dst, 0)

	out := dst.String()
	if !strings.Contains(out, ReadyBanner) {
		t.Error("ready screen should show the start banner")
	}
	if !strings.Contains(dst.Row(1), "Best: 17") {
		t.Errorf("HUD best row = %q, expected best score", dst.Row(1))
	}
	if !strings.Contains(dst.Row(0), "Score: 0") {
		t.Errorf("HUD score row = %q", dst.Row(0))
	}
	if got := dst.Get(0, 23); got != GroundChar {
		t.Errorf("ground row should start with %q, got %q", GroundChar, got)
	}
}

func TestRenderRunning(t *testing.T) {
	e := newRunning(t, floatingConfig(), nil)
	e.world.obstacles = append(e.world.obstacles, Obstacle{X: 240, GapTop: 100})
	dst := core.NewScreen(80, 24)

	Render(e.Snapshot(), e.Config(), dst, 0)

	if strings.Contains(dst.String(), ReadyBanner) || strings.Contains(dst.String(), GameOverBanner) {
		t.Error("running screen should not show a banner")
	}

	// Player at x=80, y=140 in a 480x288 field maps to column 13, row 11.
	if got := dst.Get(13, 11); got != PlayerBeak {
		t.Errorf("player beak cell = %q, want %q", got, PlayerBeak)
	}
	if got := dst.GetCell(12, 11); got.Rune != PlayerBody || got.Color != core.ColorOrange {
		t.Errorf("player body cell = %+v", got)
	}

	// Obstacle covers columns 40..49; the gap spans rows 8..20.
	if got := dst.Get(45, 3); got != ObstacleChar {
		t.Errorf("top section cell = %q, want %q", got, ObstacleChar)
	}
	if got := dst.Get(45, 7); got != ObstacleCapUp {
		t.Errorf("top cap cell = %q, want %q", got, ObstacleCapUp)
	}
	if got := dst.Get(45, 15); got == ObstacleChar {
		t.Error("gap should be open")
	}
	if got := dst.Get(45, 22); got != ObstacleChar {
		t.Errorf("bottom section cell = %q, want %q", got, ObstacleChar)
	}
	if got := dst.Get(45, 23); got != GroundChar {
		t.Errorf("obstacles should stop at the ground, got %q", got)
	}
}

func TestRenderGameOver(t *testing.T) {
	e := newRunning(t, testConfig(), nil)
	e.score = 3
	e.playerY = 400
	e.Tick(frameMs)
	dst := core.NewScreen(80, 24)

	Render(e.Snapshot(), e.Config(), dst, 0)

	out := dst.String()
	if !strings.Contains(out, GameOverBanner) {
		t.Error("game over screen should show the retry banner")
	}
	if !strings.Contains(out, "Score: 3  |  Best: 3") {
		t.Error("game over screen should show score and best")
	}
}

func TestRenderIdleBobDoesNotMoveEngine(t *testing.T) {
	e := New(testConfig(), nil, nil)
	snap := e.Snapshot()

	for _, now := range []float64{0, 100, 392.7, 1000} {
		Render(snap, e.Config(), core.NewScreen(80, 24), now)
	}

	if e.Snapshot().PlayerY != snap.PlayerY {
		t.Error("rendering must not change engine state")
	}
}

func TestRenderEmptyScreen(t *testing.T) {
	e := New(testConfig(), nil, nil)

	// Must not panic.
	Render(e.Snapshot(), e.Config(), core.NewScreen(0, 0), 0)
}
