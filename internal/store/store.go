// Package store provides SQLite-based persistence for unify: saved
// batch configurations, input history, and the log of completed runs.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store represents the SQLite database store
type Store struct {
	db *sql.DB
}

// New creates a new store connection
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the database schema
func (s *Store) Initialize() error {
	schema := `
	-- Saved batch configurations
	CREATE TABLE IF NOT EXISTS batches (
		name TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		pattern TEXT NOT NULL,
		policy TEXT NOT NULL DEFAULT 'interactive',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Recent user inputs, newest first per field
	CREATE TABLE IF NOT EXISTS input_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		field TEXT NOT NULL,
		value TEXT NOT NULL,
		used_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_input_history_field ON input_history(field, id);

	-- Completed merge sessions
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		pattern TEXT NOT NULL,
		result_json JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- unify schema version tracking
	CREATE TABLE IF NOT EXISTS unify_schema_version (
		version INTEGER PRIMARY KEY
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	_, err := s.db.Exec("INSERT OR REPLACE INTO unify_schema_version (version) VALUES (?)", currentSchemaVersion)
	return err
}

// parseTimestamp parses SQLite timestamp strings in the formats the
// driver and CURRENT_TIMESTAMP produce.
func parseTimestamp(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
