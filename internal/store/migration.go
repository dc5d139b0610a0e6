package store

import (
	"database/sql"
	"fmt"
)

const currentSchemaVersion = 2

// RunMigrations applies any pending database migrations
func (s *Store) RunMigrations() error {
	version, err := s.getSchemaVersion()
	if err != nil {
		return err
	}

	if version < 2 {
		if err := s.migrateToV2(); err != nil {
			return fmt.Errorf("migration to v2 failed: %w", err)
		}
	}

	return nil
}

// getSchemaVersion returns the current schema version, 1 if not set
func (s *Store) getSchemaVersion() (int, error) {
	var tableName string
	err := s.db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='unify_schema_version'
	`).Scan(&tableName)

	if err == sql.ErrNoRows {
		// Table doesn't exist, this is v1
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	var version int
	err = s.db.QueryRow("SELECT COALESCE(MAX(version), 1) FROM unify_schema_version").Scan(&version)
	if err != nil {
		return 1, nil
	}

	return version, nil
}

// migrateToV2 adds the per-batch resolution policy
func (s *Store) migrateToV2() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS unify_schema_version (
		version INTEGER PRIMARY KEY
	)`); err != nil {
		return err
	}

	// SQLite has no IF NOT EXISTS for ALTER TABLE, so check first
	var colCount int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('batches')
		WHERE name='policy'
	`).Scan(&colCount)
	if err == nil && colCount == 0 {
		if _, err := s.db.Exec(`ALTER TABLE batches ADD COLUMN policy TEXT NOT NULL DEFAULT 'interactive'`); err != nil {
			return err
		}
	}

	_, err = s.db.Exec("INSERT OR REPLACE INTO unify_schema_version (version) VALUES (?)", 2)
	return err
}
