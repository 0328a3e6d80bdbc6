package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FileStore keeps best scores as a flat key/value YAML document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// OpenFile prepares a file store at path. The file itself is created on the
// first save.
func OpenFile(path string) (*FileStore, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	return &FileStore{path: path}, nil
}

// read loads the document. A missing file is an empty document.
func (f *FileStore) read() (map[string]int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	scores := map[string]int{}
	if err := yaml.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("storage: cannot parse %s: %w", f.path, err)
	}
	return scores, nil
}

// write replaces the document through a temporary file so readers never
// see a partial write.
func (f *FileStore) write(scores map[string]int) error {
	data, err := yaml.Marshal(scores)
	if err != nil {
		return fmt.Errorf("storage: cannot encode scores: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".scores-*.yaml")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// BestScore returns the best score stored under key, or 0.
func (f *FileStore) BestScore(key string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	scores, err := f.read()
	if err != nil {
		return 0, err
	}
	return max(0, scores[key]), nil
}

// SaveBestScore records score under key unless a higher one is stored.
// An unreadable file is replaced.
func (f *FileStore) SaveBestScore(key string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	scores, err := f.read()
	if err != nil {
		scores = map[string]int{}
	}
	if prev, ok := scores[key]; ok && prev >= score {
		return nil
	}
	scores[key] = score
	return f.write(scores)
}

// ClearBestScore removes key from the document.
func (f *FileStore) ClearBestScore(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	scores, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := scores[key]; !ok {
		return nil
	}
	delete(scores, key)
	return f.write(scores)
}

// BestScores lists every stored best score, highest first. The file keeps no
// timestamps, so UpdatedAt is the file's modification time.
func (f *FileStore) BestScores() ([]BestEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	scores, err := f.read()
	if err != nil {
		return nil, err
	}

	var modTime time.Time
	if info, err := os.Stat(f.path); err == nil {
		modTime = info.ModTime()
	}
	return sortedEntries(scores, modTime), nil
}

// Close is a no-op; the file is only open during reads and writes.
func (f *FileStore) Close() error {
	return nil
}

func sortedEntries(scores map[string]int, updatedAt time.Time) []BestEntry {
	entries := make([]BestEntry, 0, len(scores))
	for k, v := range scores {
		entries = append(entries, BestEntry{Key: k, Score: v, UpdatedAt: updatedAt})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
