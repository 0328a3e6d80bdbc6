package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	flagBestAll   bool
	flagBestReset bool
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show or reset the best score",
	Long: `Display the best score stored under the configured key.

Examples:
  flapper best
  flapper best --all
  flapper best --reset
  flapper best --store file --db ~/.flapper/best.yaml`,
	Args: cobra.NoArgs,
	RunE: runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&flagBestAll, "all", false, "List every stored key")
	bestCmd.Flags().BoolVar(&flagBestReset, "reset", false, "Delete the best score for the configured key")
}

func runBest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store, err := storage.OpenBackend(cfg.Store)
	if err != nil {
		return fmt.Errorf("error opening best-score store: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	key := cfg.Store.Key

	switch {
	case flagBestReset:
		if err := store.ClearBestScore(key); err != nil {
			return err
		}
		fmt.Fprintf(out, "Best score for %q cleared.\n", key)

	case flagBestAll:
		entries, err := store.BestScores()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No scores recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "  %-24s  %-8s  %s\n", "Key", "Best", "Updated")
		fmt.Fprintf(out, "  %-24s  %-8s  %s\n", "---", "----", "-------")
		for _, e := range entries {
			updated := "-"
			if !e.UpdatedAt.IsZero() {
				updated = e.UpdatedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(out, "  %-24s  %-8d  %s\n", e.Key, e.Score, updated)
		}

	default:
		score, err := store.BestScore(key)
		if err != nil {
			return err
		}
		if score == 0 {
			fmt.Fprintln(out, "No best score recorded yet.")
			fmt.Fprintln(out, "Play 'flapper play' to set the first one!")
			return nil
		}
		fmt.Fprintf(out, "Best: %d\n", score)
	}

	return nil
}
