// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/OntriDS/thegame-sub002/internal/models"
	"github.com/OntriDS/thegame-sub002/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps the foreign_keys pragma in effect for every statement
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateContract persists a contract and its ordered clauses.
func (s *SQLiteStore) CreateContract(ctx context.Context, contract *models.Contract) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertContract(ctx, tx, contract); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// insertContract fills in missing ID, timestamp and name, then writes the
// contract and its clauses within tx.
func insertContract(ctx context.Context, tx *sql.Tx, contract *models.Contract) error {
	if contract.ID == "" {
		contract.ID = uuid.New().String()
	}
	if contract.CreatedAt == 0 {
		contract.CreatedAt = time.Now().Unix()
	}
	if contract.Name == "" {
		contract.Name = fmt.Sprintf("Contract - %s", time.Unix(contract.CreatedAt, 0).Format("Jan 2, 2006"))
	}
	contract.Normalize()

	var terms interface{} = nil
	if contract.Terms != nil {
		raw, err := json.Marshal(contract.Terms)
		if err != nil {
			return fmt.Errorf("failed to encode legacy terms: %w", err)
		}
		terms = string(raw)
	}

	_, err := tx.ExecContext(ctx,
		"INSERT INTO contracts (id, associate_id, name, terms_json, created_at) VALUES (?, ?, ?, ?, ?)",
		contract.ID, contract.AssociateID, contract.Name, terms, contract.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contract: %w", err)
	}

	for i := range contract.Clauses {
		clause := &contract.Clauses[i]
		if clause.ID == "" {
			clause.ID = uuid.New().String()
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO clauses (contract_id, position, id, type, description, item_category, company_share, associate_share)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			contract.ID, i, clause.ID, string(clause.Type), clause.Description, clause.ItemCategory,
			clause.CompanyShare, clause.AssociateShare,
		)
		if err != nil {
			return fmt.Errorf("failed to insert clause: %w", err)
		}
	}

	return nil
}

// GetContract retrieves a contract by ID, including its clauses in order.
func (s *SQLiteStore) GetContract(ctx context.Context, contractID string) (*models.Contract, error) {
	contract := &models.Contract{}
	var terms sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, associate_id, name, terms_json, created_at FROM contracts WHERE id = ?",
		contractID,
	).Scan(&contract.ID, &contract.AssociateID, &contract.Name, &terms, &contract.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: contract %s", storage.ErrNotFound, contractID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}

	if err := s.loadContractDetails(ctx, contract, terms); err != nil {
		return nil, err
	}
	return contract, nil
}

// ListContracts retrieves contracts, newest first, optionally for one associate.
func (s *SQLiteStore) ListContracts(ctx context.Context, associateID string) ([]*models.Contract, error) {
	query := "SELECT id, associate_id, name, terms_json, created_at FROM contracts"
	var args []interface{}
	if associateID != "" {
		query += " WHERE associate_id = ?"
		args = append(args, associateID)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	type contractRow struct {
		contract *models.Contract
		terms    sql.NullString
	}
	var found []contractRow
	for rows.Next() {
		r := contractRow{contract: &models.Contract{}}
		if err := rows.Scan(&r.contract.ID, &r.contract.AssociateID, &r.contract.Name, &r.terms, &r.contract.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contracts: %w", err)
	}
	rows.Close()

	contracts := make([]*models.Contract, 0, len(found))
	for _, r := range found {
		if err := s.loadContractDetails(ctx, r.contract, r.terms); err != nil {
			return nil, err
		}
		contracts = append(contracts, r.contract)
	}
	return contracts, nil
}

// loadContractDetails decodes legacy terms, loads clauses and derives the schema.
func (s *SQLiteStore) loadContractDetails(ctx context.Context, contract *models.Contract, terms sql.NullString) error {
	if terms.Valid && terms.String != "" {
		contract.Terms = &models.LegacyTerms{}
		if err := json.Unmarshal([]byte(terms.String), contract.Terms); err != nil {
			return fmt.Errorf("failed to decode legacy terms of contract %s: %w", contract.ID, err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, description, item_category, company_share, associate_share
		 FROM clauses WHERE contract_id = ? ORDER BY position`,
		contract.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get clauses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var clause models.Clause
		var clauseType string
		if err := rows.Scan(&clause.ID, &clauseType, &clause.Description, &clause.ItemCategory,
			&clause.CompanyShare, &clause.AssociateShare); err != nil {
			return fmt.Errorf("failed to scan clause: %w", err)
		}
		clause.Type = models.ClauseType(clauseType)
		contract.Clauses = append(contract.Clauses, clause)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate clauses: %w", err)
	}

	contract.Normalize()
	return nil
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
