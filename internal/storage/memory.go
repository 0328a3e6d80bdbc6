package storage

import (
	"sync"
	"time"
)

// MemoryStore keeps best scores for the lifetime of the process.
type MemoryStore struct {
	mu     sync.Mutex
	scores map[string]int
	times  map[string]time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		scores: make(map[string]int),
		times:  make(map[string]time.Time),
	}
}

// BestScore returns the best score stored under key, or 0.
func (m *MemoryStore) BestScore(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[key], nil
}

// SaveBestScore records score under key unless a higher one is stored.
func (m *MemoryStore) SaveBestScore(key string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.scores[key]; ok && prev >= score {
		return nil
	}
	m.scores[key] = score
	m.times[key] = time.Now()
	return nil
}

// ClearBestScore removes key.
func (m *MemoryStore) ClearBestScore(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scores, key)
	delete(m.times, key)
	return nil
}

// BestScores lists every stored best score, highest first.
func (m *MemoryStore) BestScores() ([]BestEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := sortedEntries(m.scores, time.Time{})
	for i := range entries {
		entries[i].UpdatedAt = m.times[entries[i].Key]
	}
	return entries, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
