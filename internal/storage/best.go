package storage

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Best adapts a Backend to the game's best-score interface.
// Loads are synchronous; saves are handed to a background writer so a slow
// disk never stalls a frame. Backend errors are logged and swallowed.
// A Best is safe for concurrent use and may be shared between games.
type Best struct {
	backend Backend
	key     string
	logger  *log.Logger

	mu      sync.Mutex
	pending int
	dirty   bool
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewBest starts a best-score adapter for key. A nil logger discards output.
func NewBest(backend Backend, key string, logger *log.Logger) *Best {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	b := &Best{
		backend: backend,
		key:     key,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go b.writeLoop()
	return b
}

// Load returns the stored best score, or 0 if it cannot be read.
func (b *Best) Load() int {
	score, err := b.backend.BestScore(b.key)
	if err != nil {
		b.logger.Warn("cannot load best score", "key", b.key, "error", err)
		return 0
	}
	return max(0, score)
}

// Save queues best for writing. Saves issued before the writer catches up
// collapse into the highest value.
func (b *Best) Save(best int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.logger.Debug("best score dropped after close", "key", b.key, "score", best)
		return
	}
	if !b.dirty || best > b.pending {
		b.pending = best
	}
	b.dirty = true

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Close flushes any pending save and stops the writer. It does not close
// the backend.
func (b *Best) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.wake)
	b.mu.Unlock()

	<-b.done
	return nil
}

func (b *Best) writeLoop() {
	defer close(b.done)
	for range b.wake {
		b.flush()
	}
	b.flush()
}

func (b *Best) flush() {
	b.mu.Lock()
	score, dirty := b.pending, b.dirty
	b.dirty = false
	b.mu.Unlock()

	if !dirty {
		return
	}
	if err := b.backend.SaveBestScore(b.key, score); err != nil {
		b.logger.Warn("cannot save best score", "key", b.key, "score", score, "error", err)
		return
	}
	b.logger.Debug("best score saved", "key", b.key, "score", score)
}
