package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/games/flappy"
	"github.com/vovakirdan/flapper/internal/platform/tui"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Space/Up/Enter/Click  - Flap (start, flap, retry)
  ?                     - Toggle help
  Ctrl+S                - Save a screenshot to ~/.flapper/screenshots
  Q/Esc/Ctrl+C          - Quit

The best score is saved at the end of every run.

Examples:
  flapper play
  flapper play --config ./my-flappy.yaml
  flapper play --store file --db ~/.flapper/best.yaml
  flapper play --log-file /tmp/flapper.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (logs are discarded otherwise)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Logging to stderr would corrupt the alt screen.
	logOut, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer logOut.Close()
	logger := newLogger(logOut, "flapper")

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = resolveSeed()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	backend, best := openBest(cfg, logger)
	engine := flappy.New(cfg, best, flappy.NewRand(rc.Seed))
	logger.Info("game started", "seed", rc.Seed, "best", engine.Best(), "backend", cfg.Store.Backend)

	runErr := tui.Run(engine, rc, logger)

	// Flush the last save before closing the backend.
	best.Close()
	if err := backend.Close(); err != nil {
		logger.Warn("could not close best-score store", "error", err)
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
