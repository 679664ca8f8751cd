package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SettlementForBalance is a saved settlement with the minimal information needed for balances.
type SettlementForBalance struct {
	AssociateID  string
	AssociateNet decimal.Decimal // what the associate earned, native currency
}

// PayoutForBalance is a recorded payout with the minimal information needed for balances.
type PayoutForBalance struct {
	AssociateID string
	Amount      decimal.Decimal // paid to the associate, native currency
}

// AssociateBalance is the running position between the principal and one associate.
type AssociateBalance struct {
	AssociateID string          `json:"associateId"`
	Settlements int             `json:"settlements"`
	Earned      decimal.Decimal `json:"earned"`      // Σ associate nets
	Paid        decimal.Decimal `json:"paid"`        // Σ payouts
	Outstanding decimal.Decimal `json:"outstanding"` // Positive = principal owes the associate
}

// CalculateAssociateBalances aggregates settlements and payouts per associate.
//
// Algorithm:
//   - For each settlement: the associate earned its AssociateNet
//   - For each payout: the associate was paid Amount
//   - outstanding = earned - paid
//
// The result is sorted by associate ID.
func CalculateAssociateBalances(settlements []SettlementForBalance, payouts []PayoutForBalance) []AssociateBalance {
	balances := make(map[string]*AssociateBalance)

	get := func(id string) *AssociateBalance {
		bal, exists := balances[id]
		if !exists {
			bal = &AssociateBalance{
				AssociateID: id,
				Earned:      decimal.Zero,
				Paid:        decimal.Zero,
			}
			balances[id] = bal
		}
		return bal
	}

	for _, s := range settlements {
		// Settlements on defaults with no associate have nobody to owe
		if s.AssociateID == "" {
			continue
		}
		bal := get(s.AssociateID)
		bal.Settlements++
		bal.Earned = bal.Earned.Add(s.AssociateNet)
	}

	for _, p := range payouts {
		bal := get(p.AssociateID)
		bal.Paid = bal.Paid.Add(p.Amount)
	}

	result := make([]AssociateBalance, 0, len(balances))
	for _, bal := range balances {
		bal.Outstanding = bal.Earned.Sub(bal.Paid)
		result = append(result, *bal)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AssociateID < result[j].AssociateID
	})

	return result
}
