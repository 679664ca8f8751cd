package calculator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/models"
)

// Generic row labels used when a line carries no usable product classification.
const (
	LabelBundle = "Bundle"
	LabelOther  = "Other"
)

// Side tells whose goods a row holds.
type Side string

const (
	SidePrincipal Side = "principal"
	SideAssociate Side = "associate"
)

// SettlementRow is one category bucket of a settlement.
//
// RetainedByRowOwner is what the owner of the goods keeps (the principal on
// principal rows, the associate on associate rows). CommissionToOtherParty is
// what the other party earns from the row. Both are in the row's currency.
type SettlementRow struct {
	Category  string          `json:"category"`
	Side      Side            `json:"side"`
	Currency  models.Currency `json:"currency"`
	LineCount int             `json:"lineCount"`

	// Total is the sum of the row's lines in Currency.
	Total decimal.Decimal `json:"total"`

	Shares                 Shares          `json:"shares"`
	RetainedByRowOwner     decimal.Decimal `json:"retainedByRowOwner"`
	CommissionToOtherParty decimal.Decimal `json:"commissionToOtherParty"`

	// Reference* are the same figures in the native currency.
	ReferenceTotal      decimal.Decimal `json:"referenceTotal"`
	ReferenceRetained   decimal.Decimal `json:"referenceRetained"`
	ReferenceCommission decimal.Decimal `json:"referenceCommission"`
}

// CategoryLabel derives the row label of an inventory line.
func CategoryLabel(line models.SaleLine) string {
	itemType := strings.TrimSpace(line.ItemType)
	subType := strings.TrimSpace(line.SubItemType)

	switch {
	case itemType != "" && subType != "":
		return itemType + ":" + subType
	case itemType != "":
		return itemType
	case line.Kind == models.LineKindBundle:
		return LabelBundle
	default:
		return LabelOther
	}
}

// EntryLabel derives the row label of an associate entry.
func EntryLabel(entry models.AssociateEntry) string {
	if label := strings.TrimSpace(entry.Category); label != "" {
		return label
	}
	return LabelOther
}

// rowSet accumulates rows in first-seen order.
type rowSet struct {
	side  Side
	index map[string]int
	rows  []SettlementRow
}

func newRowSet(side Side) *rowSet {
	return &rowSet{side: side, index: make(map[string]int)}
}

func (s *rowSet) add(label string, c models.Currency, amount decimal.Decimal) {
	i, exists := s.index[label]
	if !exists {
		i = len(s.rows)
		s.index[label] = i
		s.rows = append(s.rows, SettlementRow{
			Category: label,
			Side:     s.side,
			Currency: c,
			Total:    decimal.Zero,
		})
	}
	s.rows[i].LineCount++
	s.rows[i].Total = s.rows[i].Total.Add(amount)
}

// Aggregate groups inventory lines and associate entries into rows.
//
// The two sides are kept apart: a label used on both sides yields two rows,
// because the goods behind them belong to different people. Totals stay in
// their native currency and the split fields are left at zero.
// A zero-quantity or zero-price line still creates its row.
func Aggregate(lines []models.SaleLine, entries []models.AssociateEntry) (principal []SettlementRow, associate []SettlementRow) {
	principalRows := newRowSet(SidePrincipal)
	for _, line := range lines {
		principalRows.add(CategoryLabel(line), models.CurrencyNative, line.Amount())
	}

	associateRows := newRowSet(SideAssociate)
	for _, entry := range entries {
		associateRows.add(EntryLabel(entry), models.CurrencySecondary, entry.Amount)
	}

	return principalRows.rows, associateRows.rows
}
