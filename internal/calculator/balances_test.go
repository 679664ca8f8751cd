package calculator

import (
	"testing"
)

func TestCalculateAssociateBalances(t *testing.T) {
	tests := []struct {
		name         string
		settlements  []SettlementForBalance
		payouts      []PayoutForBalance
		validateFunc func(t *testing.T, balances []AssociateBalance)
	}{
		{
			name: "earned minus paid per associate",
			settlements: []SettlementForBalance{
				{AssociateID: "bea", AssociateNet: d("40")},
				{AssociateID: "ana", AssociateNet: d("100")},
				{AssociateID: "ana", AssociateNet: d("50.5")},
			},
			payouts: []PayoutForBalance{
				{AssociateID: "ana", Amount: d("120")},
			},
			validateFunc: func(t *testing.T, balances []AssociateBalance) {
				if len(balances) != 2 {
					t.Fatalf("expected 2 balances, got %d", len(balances))
				}
				ana, bea := balances[0], balances[1]
				if ana.AssociateID != "ana" || bea.AssociateID != "bea" {
					t.Fatalf("unexpected order: %s, %s", ana.AssociateID, bea.AssociateID)
				}
				if ana.Settlements != 2 {
					t.Errorf("ana settlements = %d, want 2", ana.Settlements)
				}
				assertDecimal(t, "ana earned", ana.Earned, "150.5")
				assertDecimal(t, "ana paid", ana.Paid, "120")
				assertDecimal(t, "ana outstanding", ana.Outstanding, "30.5")
				assertDecimal(t, "bea outstanding", bea.Outstanding, "40")
			},
		},
		{
			name: "overpaid associate has negative outstanding",
			settlements: []SettlementForBalance{
				{AssociateID: "ana", AssociateNet: d("10")},
			},
			payouts: []PayoutForBalance{
				{AssociateID: "ana", Amount: d("25")},
			},
			validateFunc: func(t *testing.T, balances []AssociateBalance) {
				assertDecimal(t, "outstanding", balances[0].Outstanding, "-15")
			},
		},
		{
			name: "settlements without an associate are skipped",
			settlements: []SettlementForBalance{
				{AssociateID: "", AssociateNet: d("10")},
			},
			validateFunc: func(t *testing.T, balances []AssociateBalance) {
				if len(balances) != 0 {
					t.Errorf("expected no balances, got %d", len(balances))
				}
			},
		},
		{
			name: "payout before any settlement",
			payouts: []PayoutForBalance{
				{AssociateID: "cai", Amount: d("5")},
			},
			validateFunc: func(t *testing.T, balances []AssociateBalance) {
				if len(balances) != 1 {
					t.Fatalf("expected 1 balance, got %d", len(balances))
				}
				assertDecimal(t, "outstanding", balances[0].Outstanding, "-5")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, CalculateAssociateBalances(tt.settlements, tt.payouts))
		})
	}
}
