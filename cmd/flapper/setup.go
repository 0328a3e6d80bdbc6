package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/storage"
)

// loadGameConfig loads the game config and applies the store flags.
func loadGameConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagStore != "" {
		cfg.Store.Backend = flagStore
	}
	if flagDBPath != "" {
		cfg.Store.Path = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openBest opens the configured backend and wraps it for the engine.
// If the backend cannot be opened the game falls back to an in-memory store
// so play is never blocked by storage.
func openBest(cfg config.Config, logger *log.Logger) (storage.Backend, *storage.Best) {
	backend, err := storage.OpenBackend(cfg.Store)
	if err != nil {
		logger.Warn("could not open best-score store, scores will not persist",
			"backend", cfg.Store.Backend, "path", cfg.Store.Path, "error", err)
		backend = storage.NewMemory()
	}
	return backend, storage.NewBest(backend, cfg.Store.Key, logger)
}

// resolveSeed returns the seed flag, or a time-based seed when unset.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger returns a logger writing to w with the command's prefix.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// openLogFile opens path for appending log lines. An empty path discards logs.
func openLogFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
