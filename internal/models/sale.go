package models

import "github.com/shopspring/decimal"

// Currency identifies which of the two settlement currencies an amount is in.
type Currency string

const (
	// CurrencyNative is the reference currency of inventory prices (USD).
	CurrencyNative Currency = "native"
	// CurrencySecondary is the local currency associate entries and booth expenses are recorded in.
	CurrencySecondary Currency = "secondary"
)

// LineKind is the kind of a sale line.
type LineKind string

const (
	LineKindItem    LineKind = "item"
	LineKindBundle  LineKind = "bundle"
	LineKindService LineKind = "service"
)

// SaleLine is one line of a sale.
// Inventory lines are priced in the native currency; service lines materialized
// from associate entries carry CurrencySecondary.
type SaleLine struct {
	Kind LineKind `json:"kind" yaml:"kind"`

	// Description is free text shown next to the line (e.g., "Holo sticker pack").
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// ItemType and SubItemType classify the product; together they form the category label.
	ItemType    string `json:"itemType,omitempty" yaml:"itemType,omitempty"`
	SubItemType string `json:"subItemType,omitempty" yaml:"subItemType,omitempty"`

	Quantity  int             `json:"quantity" yaml:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" yaml:"unitPrice"`

	// Currency defaults to CurrencyNative when empty.
	Currency Currency `json:"currency,omitempty" yaml:"currency,omitempty"`

	// AssociateID is set on service lines that were entered on behalf of an associate.
	AssociateID string `json:"associateId,omitempty" yaml:"associateId,omitempty"`
}

// Amount returns quantity × unit price in the line's currency.
func (l SaleLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineCurrency returns the line's currency, defaulting to the native one.
func (l SaleLine) LineCurrency() Currency {
	if l.Currency == "" {
		return CurrencyNative
	}
	return l.Currency
}

// AssociateEntry is an amount typed in by the operator during settlement entry
// for goods that belong to an associate. Amounts are in the secondary currency.
type AssociateEntry struct {
	AssociateID string          `json:"associateId" yaml:"associateId"`
	Category    string          `json:"category" yaml:"category"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Note        string          `json:"note,omitempty" yaml:"note,omitempty"`
}
