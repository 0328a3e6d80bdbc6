package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/games/flappy"
	"github.com/vovakirdan/flapper/internal/platform/headless"
)

var (
	flagSimTicks    int
	flagSimDt       float64
	flagSimRealtime bool
	flagSimRecord   bool
	flagSimFrame    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless autopilot session",
	Long: `Run the game without a terminal UI, flapping with a simple autopilot,
and print the result. With a fixed --seed and the default virtual clock the
outcome is reproducible.

Examples:
  flapper simulate --seed 42
  flapper simulate --seed 42 --ticks 10000 --dt 8
  flapper simulate --realtime --frame
  flapper simulate --record   # Also update the stored best score`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum number of ticks")
	simulateCmd.Flags().Float64Var(&flagSimDt, "dt", 16.67, "Milliseconds per tick on the virtual clock")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Use the wall clock at --fps instead of the virtual clock")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the best score to the configured store")
	simulateCmd.Flags().BoolVar(&flagSimFrame, "frame", false, "Print the final frame")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "flapper-sim")

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if flagSimDt <= 0 {
		return fmt.Errorf("--dt must be positive, got %v", flagSimDt)
	}

	var store flappy.ScoreStore
	if flagSimRecord {
		backend, best := openBest(cfg, logger)
		defer backend.Close()
		defer best.Close()
		store = best
	}

	seed := resolveSeed()
	engine := flappy.New(cfg, store, flappy.NewRand(seed))
	pilot := flappy.NewAutopilot(cfg)

	flaps := make(chan struct{}, 1)
	ticks := 0
	driver := &headless.Driver{
		Clock:          headless.NewStepClock(time.Unix(0, 0), time.Duration(flagSimDt*float64(time.Millisecond))),
		Flaps:          flaps,
		MaxTicks:       flagSimTicks,
		StopOnGameOver: true,
		Logger:         logger,
		Render: func(s flappy.Snapshot, _ float64) {
			ticks++
			if pilot.ShouldFlap(s) {
				select {
				case flaps <- struct{}{}:
				default:
				}
			}
		},
	}
	if flagSimRealtime {
		driver.Clock = headless.SystemClock{}
		driver.Interval = time.Second / time.Duration(max(flagFPS, 1))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Start the run on the first tick.
	flaps <- struct{}{}
	if err := driver.Run(ctx, engine); err != nil && ctx.Err() == nil {
		return err
	}

	snap := engine.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed:     %d\n", seed)
	fmt.Fprintf(out, "ticks:    %d\n", ticks)
	fmt.Fprintf(out, "elapsed:  %.0f ms\n", snap.ElapsedMs)
	fmt.Fprintf(out, "phase:    %s\n", snap.Phase)
	fmt.Fprintf(out, "score:    %d\n", snap.Score)
	fmt.Fprintf(out, "best:     %d\n", snap.Best)

	if flagSimFrame {
		screen := core.NewScreen(80, 24)
		flappy.Render(snap, cfg, screen, snap.ElapsedMs)
		fmt.Fprintln(out)
		fmt.Fprintln(out, screen.String())
	}
	return nil
}
