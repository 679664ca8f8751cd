package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/OntriDS/thegame-sub002/internal/models"
)

const operatorColumns = "id, email, display_name, password_hash, created_at, updated_at"

// CreateOperator inserts a new operator account.
func (s *SQLiteStore) CreateOperator(ctx context.Context, operator *models.Operator) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO operators ("+operatorColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		operator.ID,
		strings.ToLower(operator.Email),
		operator.DisplayName,
		operator.PasswordHash,
		operator.CreatedAt,
		operator.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}
	return nil
}

// GetOperatorByEmail retrieves an operator by email address.
// Returns nil without error when no operator matches.
func (s *SQLiteStore) GetOperatorByEmail(ctx context.Context, email string) (*models.Operator, error) {
	operator, err := scanOperator(s.db.QueryRowContext(ctx,
		"SELECT "+operatorColumns+" FROM operators WHERE email = ?",
		strings.ToLower(email),
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator by email: %w", err)
	}
	return operator, nil
}

// GetOperatorByID retrieves an operator by ID.
// Returns nil without error when no operator matches.
func (s *SQLiteStore) GetOperatorByID(ctx context.Context, id string) (*models.Operator, error) {
	operator, err := scanOperator(s.db.QueryRowContext(ctx,
		"SELECT "+operatorColumns+" FROM operators WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator by ID: %w", err)
	}
	return operator, nil
}

func scanOperator(row rowScanner) (*models.Operator, error) {
	operator := &models.Operator{}
	err := row.Scan(
		&operator.ID,
		&operator.Email,
		&operator.DisplayName,
		&operator.PasswordHash,
		&operator.CreatedAt,
		&operator.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return operator, nil
}
