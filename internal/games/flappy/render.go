package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Visual characters for rendering
const (
	PlayerBody    = '●'
	PlayerBeak    = '▶'
	ObstacleChar  = '█'
	ObstacleCapUp = '▄'
	ObstacleCapDn = '▀'
	GroundChar    = '═'
	StarChar      = '·'
)

// Banner texts
const (
	ReadyBanner    = "Tap / Click / Space to start"
	GameOverBanner = "Game Over - tap to retry"
)

const starCount = 30

// Render draws a snapshot into dst, scaling world units to screen cells.
// nowMs is the driver's clock and only drives decorations (the star drift and
// the idle bob while Ready); it never feeds back into the simulation.
func Render(snap Snapshot, cfg config.Config, dst *core.Screen, nowMs float64) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	v := newViewport(cfg, dst)

	drawStars(v, cfg, dst, nowMs)

	groundRow := core.Clamp(v.row(cfg.GroundY()), 0, dst.Height()-1)
	for _, o := range snap.Obstacles {
		drawObstacle(v, cfg, dst, o, groundRow)
	}

	playerY := snap.PlayerY
	if snap.Phase == PhaseReady {
		playerY += math.Sin(nowMs*cfg.Idle.BobRate) * cfg.Idle.BobAmplitude
	}
	px, py := v.col(snap.PlayerX), v.row(playerY)
	dst.SetColored(px-1, py, PlayerBody, core.ColorOrange)
	dst.SetColored(px, py, PlayerBeak, core.ColorYellow)

	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGray)

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorBrightWhite)
	dst.DrawText(1, 1, fmt.Sprintf("Best: %d", snap.Best), core.ColorGray)

	switch snap.Phase {
	case PhaseReady:
		drawCenteredMessage(dst, ReadyBanner, fmt.Sprintf("Best: %d", snap.Best))
	case PhaseGameOver:
		drawCenteredMessage(dst, GameOverBanner, fmt.Sprintf("Score: %d  |  Best: %d", snap.Score, snap.Best))
	}
}

// viewport maps world coordinates to screen cells.
type viewport struct {
	sx, sy float64
}

func newViewport(cfg config.Config, dst *core.Screen) viewport {
	return viewport{
		sx: float64(dst.Width()) / cfg.Field.Width,
		sy: float64(dst.Height()) / cfg.Field.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.sy))
}

// drawStars draws a slowly drifting background.
func drawStars(v viewport, cfg config.Config, dst *core.Screen, nowMs float64) {
	for i := 0; i < starCount; i++ {
		x := math.Mod(float64(i)*123.456, cfg.Field.Width)
		y := math.Mod(float64(i)*78.9+nowMs*0.02, cfg.Field.Height)
		dst.SetColored(v.col(x), v.row(y), StarChar, core.ColorDim)
	}
}

// drawObstacle renders a single obstacle down to the ground line.
func drawObstacle(v viewport, cfg config.Config, dst *core.Screen, o Obstacle, groundRow int) {
	x0 := v.col(o.X)
	x1 := max(v.col(o.X+cfg.Obstacles.Width), x0+1)
	gapTopRow := v.row(o.GapTop)
	gapBottomRow := int(math.Ceil((o.GapTop + cfg.Obstacles.GapHeight) * v.sy))

	for x := x0; x < x1; x++ {
		for y := 0; y < gapTopRow; y++ {
			dst.SetColored(x, y, ObstacleChar, core.ColorPurple)
		}
		if gapTopRow > 0 {
			dst.SetColored(x, gapTopRow-1, ObstacleCapUp, core.ColorPurple)
		}

		for y := gapBottomRow; y < groundRow; y++ {
			dst.SetColored(x, y, ObstacleChar, core.ColorPurple)
		}
		if gapBottomRow < groundRow {
			dst.SetColored(x, gapBottomRow, ObstacleCapDn, core.ColorPurple)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorGray)
}
