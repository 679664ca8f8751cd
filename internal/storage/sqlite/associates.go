package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OntriDS/thegame-sub002/internal/models"
	"github.com/OntriDS/thegame-sub002/internal/storage"
)

// CreateAssociate persists a new associate.
func (s *SQLiteStore) CreateAssociate(ctx context.Context, associate *models.Associate) error {
	if associate.ID == "" {
		associate.ID = uuid.New().String()
	}
	if associate.CreatedAt == 0 {
		associate.CreatedAt = time.Now().Unix()
	}

	var note interface{} = nil
	if associate.Note != "" {
		note = associate.Note
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO associates (id, name, note, created_at) VALUES (?, ?, ?, ?)",
		associate.ID, associate.Name, note, associate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert associate: %w", err)
	}
	return nil
}

// GetAssociate retrieves an associate by ID.
func (s *SQLiteStore) GetAssociate(ctx context.Context, associateID string) (*models.Associate, error) {
	associate := &models.Associate{}
	var note sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, note, created_at FROM associates WHERE id = ?",
		associateID,
	).Scan(&associate.ID, &associate.Name, &note, &associate.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: associate %s", storage.ErrNotFound, associateID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get associate: %w", err)
	}

	associate.Note = note.String
	return associate, nil
}

// ListAssociates retrieves all associates ordered by name.
func (s *SQLiteStore) ListAssociates(ctx context.Context) ([]*models.Associate, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, note, created_at FROM associates ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list associates: %w", err)
	}
	defer rows.Close()

	var associates []*models.Associate
	for rows.Next() {
		associate := &models.Associate{}
		var note sql.NullString
		if err := rows.Scan(&associate.ID, &associate.Name, &note, &associate.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan associate: %w", err)
		}
		associate.Note = note.String
		associates = append(associates, associate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate associates: %w", err)
	}

	return associates, nil
}
