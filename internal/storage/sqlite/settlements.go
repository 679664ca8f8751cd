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

// CreateSettlement persists a settlement and its materialized lines.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	s.prepareSettlement(ctx, settlement)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSettlement(ctx, tx, settlement); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CreateSettlementWithContract persists a new contract and a settlement made
// under it in one transaction. settlement.ContractID is set to the new contract's ID.
// Neither record is stored if either insert fails.
func (s *SQLiteStore) CreateSettlementWithContract(ctx context.Context, settlement *models.Settlement, contract *models.Contract) error {
	s.prepareSettlement(ctx, settlement)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertContract(ctx, tx, contract); err != nil {
		return err
	}
	settlement.ContractID = contract.ID

	if err := insertSettlement(ctx, tx, settlement); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// prepareSettlement fills in ID, timestamp and title. It queries the store, so
// it must run before a transaction takes the connection.
func (s *SQLiteStore) prepareSettlement(ctx context.Context, settlement *models.Settlement) {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Title == "" {
		settlement.Title = generateTitle(ctx, s, settlement)
	}
}

func insertSettlement(ctx context.Context, tx *sql.Tx, settlement *models.Settlement) error {
	var contractID interface{} = nil
	if settlement.ContractID != "" {
		contractID = settlement.ContractID
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO settlements (id, title, associate_id, contract_id, shared_expense, exchange_rate,
		 gross_sales, principal_net, associate_net, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.Title, settlement.AssociateID, contractID,
		settlement.SharedExpense, settlement.ExchangeRate,
		settlement.GrossSales, settlement.PrincipalNet, settlement.AssociateNet,
		settlement.CreatedAt, settlement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for i, line := range settlement.Lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sale_lines (settlement_id, position, kind, description, item_type, sub_item_type,
			 quantity, unit_price, currency, associate_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			settlement.ID, i, string(line.Kind), line.Description, line.ItemType, line.SubItemType,
			line.Quantity, line.UnitPrice, string(line.LineCurrency()), line.AssociateID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale line: %w", err)
		}
	}

	return nil
}

const settlementColumns = `id, title, associate_id, contract_id, shared_expense, exchange_rate,
	gross_sales, principal_net, associate_net, created_at, created_by`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettlement(row rowScanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var contractID sql.NullString

	err := row.Scan(&settlement.ID, &settlement.Title, &settlement.AssociateID, &contractID,
		&settlement.SharedExpense, &settlement.ExchangeRate,
		&settlement.GrossSales, &settlement.PrincipalNet, &settlement.AssociateNet,
		&settlement.CreatedAt, &settlement.CreatedBy)
	if err != nil {
		return nil, err
	}

	settlement.ContractID = contractID.String
	return settlement, nil
}

// GetSettlement retrieves a settlement by ID, including its lines.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement, err := scanSettlement(s.db.QueryRowContext(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE id = ?",
		settlementID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: settlement %s", storage.ErrNotFound, settlementID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, description, item_type, sub_item_type, quantity, unit_price, currency, associate_id
		 FROM sale_lines WHERE settlement_id = ? ORDER BY position`,
		settlementID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.SaleLine
		var kind, currency string
		if err := rows.Scan(&kind, &line.Description, &line.ItemType, &line.SubItemType,
			&line.Quantity, &line.UnitPrice, &currency, &line.AssociateID); err != nil {
			return nil, fmt.Errorf("failed to scan sale line: %w", err)
		}
		line.Kind = models.LineKind(kind)
		line.Currency = models.Currency(currency)
		settlement.Lines = append(settlement.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sale lines: %w", err)
	}

	return settlement, nil
}

// ListSettlements retrieves settlements newest first, optionally for one associate.
func (s *SQLiteStore) ListSettlements(ctx context.Context, associateID string) ([]*models.Settlement, error) {
	query := "SELECT " + settlementColumns + " FROM settlements"
	var args []interface{}
	if associateID != "" {
		query += " WHERE associate_id = ?"
		args = append(args, associateID)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// DeleteSettlement removes a settlement and its lines.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, settlementID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: settlement %s", storage.ErrNotFound, settlementID)
	}

	return nil
}

// CreatePayout persists a new payout.
func (s *SQLiteStore) CreatePayout(ctx context.Context, payout *models.Payout) error {
	if payout.ID == "" {
		payout.ID = uuid.New().String()
	}
	if payout.CreatedAt == 0 {
		payout.CreatedAt = time.Now().Unix()
	}

	var note interface{} = nil
	if payout.Note != "" {
		note = payout.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payouts (id, associate_id, amount, created_at, created_by, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		payout.ID, payout.AssociateID, payout.Amount, payout.CreatedAt, payout.CreatedBy, note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payout: %w", err)
	}

	return nil
}

// ListPayouts retrieves payouts newest first, optionally for one associate.
func (s *SQLiteStore) ListPayouts(ctx context.Context, associateID string) ([]*models.Payout, error) {
	query := "SELECT id, associate_id, amount, created_at, created_by, note FROM payouts"
	var args []interface{}
	if associateID != "" {
		query += " WHERE associate_id = ?"
		args = append(args, associateID)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	defer rows.Close()

	var payouts []*models.Payout
	for rows.Next() {
		payout := &models.Payout{}
		var note sql.NullString

		if err := rows.Scan(&payout.ID, &payout.AssociateID, &payout.Amount,
			&payout.CreatedAt, &payout.CreatedBy, &note); err != nil {
			return nil, fmt.Errorf("failed to scan payout: %w", err)
		}
		payout.Note = note.String
		payouts = append(payouts, payout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payouts: %w", err)
	}

	return payouts, nil
}

// generateTitle creates a title from the associate's name and the settlement date.
func generateTitle(ctx context.Context, s *SQLiteStore, settlement *models.Settlement) string {
	date := time.Unix(settlement.CreatedAt, 0).Format("Jan 2, 2006")
	if settlement.AssociateID == "" {
		return fmt.Sprintf("Settlement - %s", date)
	}
	associate, err := s.GetAssociate(ctx, settlement.AssociateID)
	if err != nil || associate.Name == "" {
		return fmt.Sprintf("Settlement - %s", date)
	}
	return fmt.Sprintf("Settlement with %s - %s", associate.Name, date)
}
