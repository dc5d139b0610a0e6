package store

import (
	"database/sql"
	"fmt"

	"github.com/kilupskalvis/unify/internal/models"
)

// SaveBatch stores a batch configuration. Returns an error if the name
// is already taken.
func (s *Store) SaveBatch(b *models.Batch) error {
	_, err := s.db.Exec(`
		INSERT INTO batches (name, root, pattern, policy)
		VALUES (?, ?, ?, ?)
	`, b.Name, b.Root, b.Pattern, b.Policy)
	if err != nil {
		return fmt.Errorf("failed to save batch '%s': %w", b.Name, err)
	}
	return nil
}

// GetBatch retrieves a batch by name. Returns (nil, nil) if not found.
func (s *Store) GetBatch(name string) (*models.Batch, error) {
	var b models.Batch
	var createdAt string
	err := s.db.QueryRow(`
		SELECT name, root, pattern, policy, created_at
		FROM batches WHERE name = ?
	`, name).Scan(&b.Name, &b.Root, &b.Pattern, &b.Policy, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.CreatedAt = parseTimestamp(createdAt)
	return &b, nil
}

// ListBatches returns all saved batches ordered by name.
func (s *Store) ListBatches() ([]*models.Batch, error) {
	rows, err := s.db.Query(`
		SELECT name, root, pattern, policy, created_at
		FROM batches ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*models.Batch
	for rows.Next() {
		var b models.Batch
		var createdAt string
		if err := rows.Scan(&b.Name, &b.Root, &b.Pattern, &b.Policy, &createdAt); err != nil {
			return nil, err
		}
		b.CreatedAt = parseTimestamp(createdAt)
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}

// DeleteBatch removes a batch by name. Returns an error if it does not exist.
func (s *Store) DeleteBatch(name string) error {
	res, err := s.db.Exec("DELETE FROM batches WHERE name = ?", name)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("batch '%s' not found", name)
	}
	return nil
}
