// Package tui provides the Bubble Tea driver for the game.
// It handles the terminal UI loop, input mapping, and the SSH front door.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per display refresh.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickInterval returns the nominal time between refreshes.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// frameDelta returns the milliseconds elapsed between two refreshes.
// The first refresh has no predecessor and uses the nominal interval.
func frameDelta(prev, now time.Time, tickRate int) float64 {
	if prev.IsZero() {
		return float64(tickInterval(tickRate)) / float64(time.Millisecond)
	}
	return float64(now.Sub(prev)) / float64(time.Millisecond)
}
