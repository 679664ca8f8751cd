package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/currency"
	"github.com/OntriDS/thegame-sub002/internal/models"
)

// Input is everything a settlement is computed from.
type Input struct {
	// AssociateID is the associate this settlement is made with. Optional.
	AssociateID string `json:"associateId,omitempty" yaml:"associateId,omitempty"`

	// PrincipalLines are the principal's inventory lines, native currency.
	PrincipalLines []models.SaleLine `json:"principalLines" yaml:"principalLines"`

	// AssociateEntries are ad-hoc entries for the associate's goods, secondary currency.
	AssociateEntries []models.AssociateEntry `json:"associateEntries" yaml:"associateEntries"`

	// Contract may be nil; defaults apply then.
	Contract *models.Contract `json:"contract,omitempty" yaml:"contract,omitempty"`

	// SharedExpense is the booth cost in the secondary currency.
	SharedExpense decimal.Decimal `json:"sharedExpense" yaml:"sharedExpense"`

	// ExchangeRate is secondary units per native unit. Must be positive.
	ExchangeRate decimal.Decimal `json:"exchangeRate" yaml:"exchangeRate"`
}

// Breakdown is the result of a settlement computation.
// All totals are in the native (reference) currency unless the field says otherwise.
type Breakdown struct {
	ExchangeRate   decimal.Decimal       `json:"exchangeRate"`
	ContractID     string                `json:"contractId,omitempty"`
	ContractSchema models.ContractSchema `json:"contractSchema"`

	PrincipalRows []SettlementRow `json:"principalRows"`
	AssociateRows []SettlementRow `json:"associateRows"`

	PrincipalSales decimal.Decimal `json:"principalSales"`
	AssociateSales decimal.Decimal `json:"associateSales"`
	GrossSales     decimal.Decimal `json:"grossSales"`

	// PrincipalCommission is what the principal earns on the associate's goods.
	PrincipalCommission decimal.Decimal `json:"principalCommission"`
	// AssociateCommission is what the associate earns on the principal's goods.
	AssociateCommission decimal.Decimal `json:"associateCommission"`

	// SharedExpense is in the secondary currency; SharedExpenseReference is its native value.
	SharedExpense          decimal.Decimal `json:"sharedExpense"`
	SharedExpenseReference decimal.Decimal `json:"sharedExpenseReference"`
	ExpenseShares          Shares          `json:"expenseShares"`
	PrincipalExpenseShare  decimal.Decimal `json:"principalExpenseShare"`
	AssociateExpenseShare  decimal.Decimal `json:"associateExpenseShare"`

	PrincipalNet decimal.Decimal `json:"principalNet"`
	AssociateNet decimal.Decimal `json:"associateNet"`
}

// Unallocated is the part of gross sales not assigned to either party.
// It is zero when every applied share pair sums to 1; a contract whose
// shares do not sum to 1 shows up here instead of being corrected.
func (b Breakdown) Unallocated() decimal.Decimal {
	return b.GrossSales.
		Sub(b.PrincipalNet).
		Sub(b.AssociateNet).
		Sub(b.PrincipalExpenseShare).
		Sub(b.AssociateExpenseShare)
}

// Calculate computes the settlement breakdown for in.
//
// It is a pure function: no I/O, no state, and identical inputs give identical
// output. Inputs are assumed to have passed ValidateInput; in particular the
// exchange rate must be positive.
//
// Algorithm:
//   - Aggregate lines and entries into principal and associate rows
//   - Principal rows: principal retains total × companyShare, associate earns total × associateShare
//   - Associate rows: associate retains total × associateShare, principal earns total × companyShare
//   - Expense: one contract-wide split of the shared cost
//   - Nets: retained + commission earned − expense share, per party
func Calculate(in Input) Breakdown {
	norm := currency.NewNormalizer(in.ExchangeRate)
	resolver := NewResolver(in.Contract)

	principalRows, associateRows := Aggregate(in.PrincipalLines, in.AssociateEntries)

	b := Breakdown{
		ExchangeRate:        in.ExchangeRate,
		ContractSchema:      resolver.Schema(),
		PrincipalSales:      decimal.Zero,
		AssociateSales:      decimal.Zero,
		PrincipalCommission: decimal.Zero,
		AssociateCommission: decimal.Zero,
		SharedExpense:       in.SharedExpense,
	}
	if in.Contract != nil {
		b.ContractID = in.Contract.ID
	}

	principalRetained := decimal.Zero
	for i := range principalRows {
		row := &principalRows[i]
		row.Shares = resolver.Resolve(PrincipalGoods, row.Category)
		splitRow(row, norm)

		b.PrincipalSales = b.PrincipalSales.Add(row.ReferenceTotal)
		principalRetained = principalRetained.Add(row.ReferenceRetained)
		b.AssociateCommission = b.AssociateCommission.Add(row.ReferenceCommission)
	}

	associateRetained := decimal.Zero
	for i := range associateRows {
		row := &associateRows[i]
		row.Shares = resolver.Resolve(AssociateGoods, row.Category)
		splitRow(row, norm)

		b.AssociateSales = b.AssociateSales.Add(row.ReferenceTotal)
		associateRetained = associateRetained.Add(row.ReferenceRetained)
		b.PrincipalCommission = b.PrincipalCommission.Add(row.ReferenceCommission)
	}

	b.PrincipalRows = principalRows
	b.AssociateRows = associateRows
	b.GrossSales = b.PrincipalSales.Add(b.AssociateSales)

	b.ExpenseShares = resolver.Resolve(Expense, "")
	b.SharedExpenseReference = norm.ToNative(in.SharedExpense)
	b.PrincipalExpenseShare = b.SharedExpenseReference.Mul(b.ExpenseShares.CompanyShare)
	b.AssociateExpenseShare = b.SharedExpenseReference.Mul(b.ExpenseShares.AssociateShare)

	b.PrincipalNet = principalRetained.Add(b.PrincipalCommission).Sub(b.PrincipalExpenseShare)
	b.AssociateNet = associateRetained.Add(b.AssociateCommission).Sub(b.AssociateExpenseShare)

	return b
}

// splitRow applies row.Shares. Which share is "retained" depends on whose goods the row holds.
func splitRow(row *SettlementRow, norm currency.Normalizer) {
	ownerShare, otherShare := row.Shares.CompanyShare, row.Shares.AssociateShare
	if row.Side == SideAssociate {
		ownerShare, otherShare = row.Shares.AssociateShare, row.Shares.CompanyShare
	}

	row.RetainedByRowOwner = row.Total.Mul(ownerShare)
	row.CommissionToOtherParty = row.Total.Mul(otherShare)

	// Retained + commission must equal ReferenceTotal exactly, whatever the rate.
	row.ReferenceTotal = norm.Reference(row.Total, row.Currency)
	row.ReferenceRetained = row.ReferenceTotal.Mul(ownerShare)
	row.ReferenceCommission = row.ReferenceTotal.Mul(otherShare)
}
