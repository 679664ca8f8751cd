package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/OntriDS/thegame-sub002/internal/models"
)

// GetPreferences returns the operator's saved editor choices.
// An operator who never saved any gets empty preferences.
func (s *SQLiteStore) GetPreferences(ctx context.Context, operatorID string) (*models.Preferences, error) {
	prefs := &models.Preferences{OperatorID: operatorID}

	err := s.db.QueryRowContext(ctx,
		"SELECT last_associate_id, last_contract_id, updated_at FROM preferences WHERE operator_id = ?",
		operatorID,
	).Scan(&prefs.LastAssociateID, &prefs.LastContractID, &prefs.UpdatedAt)
	if err == sql.ErrNoRows {
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return prefs, nil
}

// SavePreferences inserts or replaces the operator's editor choices.
func (s *SQLiteStore) SavePreferences(ctx context.Context, prefs *models.Preferences) error {
	prefs.UpdatedAt = time.Now().Unix()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (operator_id, last_associate_id, last_contract_id, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(operator_id) DO UPDATE SET
		   last_associate_id = excluded.last_associate_id,
		   last_contract_id = excluded.last_contract_id,
		   updated_at = excluded.updated_at`,
		prefs.OperatorID, prefs.LastAssociateID, prefs.LastContractID, prefs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}
