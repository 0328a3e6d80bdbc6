package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/games/flappy"
)

// Model is the Bubble Tea model driving one game engine.
// The last terminal row is reserved for the help footer.
type Model struct {
	engine     *flappy.Engine
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	logger     *log.Logger
	inputFrame core.InputFrame
	started    time.Time // Time of the first refresh, drives decorations
	lastTick   time.Time
	lastPhase  flappy.Phase
	quitting   bool
}

// NewModel creates a Bubble Tea model for the given engine.
// A nil logger discards output.
func NewModel(engine *flappy.Engine, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	return Model{
		engine:     engine,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		config:     cfg,
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       h,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		lastPhase:  engine.Phase(),
	}
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.keyMapper.MapMouse(msg) == core.ActionFlap {
			m.inputFrame.Set(core.ActionFlap)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionHelp) {
		m.help.ShowAll = !m.help.ShowAll
		delete(m.inputFrame.Actions, core.ActionHelp)
	}
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
	}

	return m, nil
}

// handleResize processes window resize events. The game keeps running;
// only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick applies the pending flap and advances the engine by the
// wall-clock time since the previous refresh.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = now
	}
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	// Any number of presses since the last refresh is one flap.
	if m.inputFrame.Has(core.ActionFlap) {
		m.engine.Flap()
	}
	m.engine.Tick(dt)
	m.inputFrame.Clear()

	if phase := m.engine.Phase(); phase != m.lastPhase {
		if phase == flappy.PhaseGameOver {
			m.logger.Info("run ended", "score", m.engine.Score(), "best", m.engine.Best())
		}
		m.lastPhase = phase
	}

	return m, tickCmd(m.config.TickRate)
}

// nowMs returns the decoration clock in milliseconds.
func (m Model) nowMs() float64 {
	if m.started.IsZero() {
		return 0
	}
	return float64(m.lastTick.Sub(m.started)) / float64(time.Millisecond)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	flappy.Render(m.engine.Snapshot(), m.engine.Config(), m.screen, m.nowMs())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".flapper", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flappy_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	flappy.Render(m.engine.Snapshot(), m.engine.Config(), m.screen, m.nowMs())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Engine returns the engine driven by this model.
func (m Model) Engine() *flappy.Engine {
	return m.engine
}

// Run starts the Bubble Tea program with the given engine.
func Run(engine *flappy.Engine, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(engine, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse presses flap
	)

	_, err := p.Run()
	return err
}
