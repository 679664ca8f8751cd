package models

import "github.com/shopspring/decimal"

// Settlement is a confirmed booth settlement with one associate.
// Only the inputs and the headline figures are stored; the full breakdown is
// recomputed from Lines and the contract when the settlement is read back.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// Title is a human-readable name (e.g., "Night market 2026-10-17").
	Title string `json:"title"`

	// AssociateID is the associate the money was split with.
	AssociateID string `json:"associateId"`

	// ContractID is the contract applied, empty when settled on defaults.
	ContractID string `json:"contractId,omitempty"`

	// Lines are the materialized sale lines: principal inventory lines plus
	// service lines converted from associate entries.
	Lines []SaleLine `json:"lines"`

	// SharedExpense is the booth cost in the secondary currency.
	SharedExpense decimal.Decimal `json:"sharedExpense"`

	// ExchangeRate is secondary units per native unit at settlement time.
	ExchangeRate decimal.Decimal `json:"exchangeRate"`

	// Headline figures, in the native (reference) currency.
	GrossSales   decimal.Decimal `json:"grossSales"`
	PrincipalNet decimal.Decimal `json:"principalNet"`
	AssociateNet decimal.Decimal `json:"associateNet"`

	// CreatedAt is the Unix timestamp when the settlement was saved.
	CreatedAt int64 `json:"createdAt"`

	// CreatedBy is the operator ID who confirmed the settlement.
	CreatedBy string `json:"createdBy"`
}

// Payout records money handed from the principal to an associate against
// their outstanding balance. Amount is always positive; money returned by an
// associate is not recorded as a payout.
type Payout struct {
	// ID is the unique identifier for the payout (UUID format).
	ID string `json:"id"`

	// AssociateID is the associate who received the payment.
	AssociateID string `json:"associateId"`

	// Amount is in the native (reference) currency.
	Amount decimal.Decimal `json:"amount"`

	// CreatedAt is the Unix timestamp when the payout was recorded.
	CreatedAt int64 `json:"createdAt"`

	// CreatedBy is the operator ID who recorded this payout.
	CreatedBy string `json:"createdBy"`

	// Note is an optional description for the payout.
	Note string `json:"note,omitempty"`
}
