// Package storage provides persistence for the best score.
// The default backend is SQLite through the pure-Go modernc.org/sqlite driver
// to avoid CGO dependencies; a YAML file and an in-memory map are available
// as alternatives.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for best-score persistence.
type Store struct {
	db *sql.DB
}

// BestEntry is one stored best score.
type BestEntry struct {
	Key       string
	Score     int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			score_key TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BestScore returns the best score stored under key.
// Returns 0 if nothing is stored.
func (s *Store) BestScore(key string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE score_key = ?",
		key,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid || score.Int64 < 0 {
		return 0, nil
	}

	return int(score.Int64), nil
}

// SaveBestScore records score under key unless a higher one is already
// stored. The stored value never decreases.
func (s *Store) SaveBestScore(key string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (score_key, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(score_key) DO UPDATE SET
			score = MAX(best_scores.score, excluded.score),
			updated_at = CASE
				WHEN excluded.score > best_scores.score THEN excluded.updated_at
				ELSE best_scores.updated_at
			END`,
		key, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// ClearBestScore deletes the best score stored under key.
func (s *Store) ClearBestScore(key string) error {
	_, err := s.db.Exec("DELETE FROM best_scores WHERE score_key = ?", key)
	if err != nil {
		return fmt.Errorf("storage: cannot clear best score: %w", err)
	}
	return nil
}

// BestScores lists every stored best score, highest first.
func (s *Store) BestScores() ([]BestEntry, error) {
	rows, err := s.db.Query(
		`SELECT score_key, score, updated_at
		 FROM best_scores
		 ORDER BY score DESC, score_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best scores: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var e BestEntry
		var updatedAt any
		if err := rows.Scan(&e.Key, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := updatedAt.(type) {
		case time.Time:
			e.UpdatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.UpdatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
