// flapper is a flap-to-rise obstacle game for the terminal.
//
// Usage:
//
//	flapper play       - Play in this terminal
//	flapper serve      - Start SSH server for remote play
//	flapper best       - Show or reset the best score
//	flapper simulate   - Run a headless autopilot session
//
// Global flags:
//
//	--config <path> - Game config YAML (default: search path, then built-in)
//	--store <name>  - Best-score backend: sqlite, file or memory
//	--db <path>     - Best-score location (default: ~/.flapper/scores.db)
//	--fps <rate>    - Set refresh rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagStore  string
	flagDBPath string
	flagFPS    int
	flagSeed   int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flapper",
	Short: "Flapper - flap through the gaps in your terminal",
	Long: `Flapper is a one-button game: each flap lifts the bird, gravity pulls
it down, and obstacles with a gap scroll in from the right. Pass through a
gap to score; touch an obstacle, the ceiling or the ground and the run ends.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  best      - Show or reset the best score
  simulate  - Run a headless autopilot session

Examples:
  flapper play
  flapper play --config ./my-flappy.yaml
  flapper serve --ssh :2222
  flapper best
  flapper simulate --seed 42 --ticks 5000`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Best-score backend: sqlite, file, memory (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Best-score location (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(simulateCmd)
}
