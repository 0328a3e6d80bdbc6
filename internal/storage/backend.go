package storage

import (
	"fmt"

	"github.com/vovakirdan/flapper/internal/config"
)

// Backend is a keyed best-score store. Implementations never let a stored
// score decrease.
type Backend interface {
	BestScore(key string) (int, error)
	SaveBestScore(key string, score int) error
	ClearBestScore(key string) error
	BestScores() ([]BestEntry, error)
	Close() error
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*FileStore)(nil)
	_ Backend = (*MemoryStore)(nil)
)

// OpenBackend opens the backend selected by cfg.
func OpenBackend(cfg config.Store) (Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return Open(cfg.Path)
	case config.BackendFile:
		return OpenFile(cfg.Path)
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
