package store

import (
	"encoding/json"
	"fmt"

	"github.com/kilupskalvis/unify/internal/models"
)

// AddInput records a user-supplied value for a named input field
// (e.g. "pattern"), so it can be offered as a default next time.
// Re-entering a known value moves it to the front.
func (s *Store) AddInput(field, value string) error {
	if _, err := s.db.Exec(`
		DELETE FROM input_history WHERE field = ? AND value = ?
	`, field, value); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO input_history (field, value) VALUES (?, ?)
	`, field, value)
	return err
}

// RecentInputs returns up to limit recent values for a field, newest first.
func (s *Store) RecentInputs(field string, limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT value FROM input_history
		WHERE field = ? ORDER BY id DESC LIMIT ?
	`, field, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// RecordRun persists a completed session outcome.
func (s *Store) RecordRun(root, pattern string, result *models.MergeCompletionResult) (int64, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal run result: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO runs (root, pattern, result_json) VALUES (?, ?, ?)
	`, root, pattern, string(data))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RecentRuns returns up to limit session records, newest first.
func (s *Store) RecentRuns(limit int) ([]*models.RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, root, pattern, result_json, created_at
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.RunRecord
	for rows.Next() {
		var r models.RunRecord
		var resultJSON string
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Root, &r.Pattern, &resultJSON, &createdAt); err != nil {
			return nil, err
		}
		r.Timestamp = parseTimestamp(createdAt)
		if err := json.Unmarshal([]byte(resultJSON), &r.Result); err != nil {
			return nil, fmt.Errorf("failed to decode run %d: %w", r.ID, err)
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
