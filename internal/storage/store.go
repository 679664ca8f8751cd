// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/OntriDS/thegame-sub002/internal/models"
)

// ErrNotFound is wrapped by stores when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations of the settlement service.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateAssociate persists a new associate. ID and CreatedAt are filled in when empty.
	CreateAssociate(ctx context.Context, associate *models.Associate) error
	GetAssociate(ctx context.Context, associateID string) (*models.Associate, error)
	ListAssociates(ctx context.Context) ([]*models.Associate, error)

	// CreateContract persists a contract with its clauses. Contracts are immutable once stored;
	// a changed arrangement is a new contract.
	CreateContract(ctx context.Context, contract *models.Contract) error

	// GetContract returns the contract with Schema already derived.
	GetContract(ctx context.Context, contractID string) (*models.Contract, error)

	// ListContracts lists contracts, optionally filtered by associate (empty = all).
	ListContracts(ctx context.Context, associateID string) ([]*models.Contract, error)

	// CreateSettlement persists a confirmed settlement and its lines.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// CreateSettlementWithContract stores a new contract and a settlement made under it
	// atomically, setting settlement.ContractID.
	CreateSettlementWithContract(ctx context.Context, settlement *models.Settlement, contract *models.Contract) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlements lists settlements newest first, optionally filtered by associate.
	// Lines are not loaded.
	ListSettlements(ctx context.Context, associateID string) ([]*models.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error

	CreatePayout(ctx context.Context, payout *models.Payout) error
	ListPayouts(ctx context.Context, associateID string) ([]*models.Payout, error)

	// GetPreferences returns empty preferences when none were saved.
	GetPreferences(ctx context.Context, operatorID string) (*models.Preferences, error)
	SavePreferences(ctx context.Context, prefs *models.Preferences) error

	// Close releases any resources held by the store.
	Close() error
}
