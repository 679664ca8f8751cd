package calculator

import (
	"errors"
	"strings"
	"testing"

	"github.com/OntriDS/thegame-sub002/internal/currency"
	"github.com/OntriDS/thegame-sub002/internal/models"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(in *Input)
		wantFields []string
	}{
		{
			name:   "valid input",
			mutate: func(in *Input) {},
		},
		{
			name:       "zero rate",
			mutate:     func(in *Input) { in.ExchangeRate = d("0") },
			wantFields: []string{"exchangeRate"},
		},
		{
			name: "negative quantity and price",
			mutate: func(in *Input) {
				in.PrincipalLines[0].Quantity = -1
				in.PrincipalLines[1].UnitPrice = d("-5")
			},
			wantFields: []string{"principalLines[0].quantity", "principalLines[1].unitPrice"},
		},
		{
			name:       "negative expense",
			mutate:     func(in *Input) { in.SharedExpense = d("-1") },
			wantFields: []string{"sharedExpense"},
		},
		{
			name:       "entry for another associate",
			mutate:     func(in *Input) { in.AssociateEntries[0].AssociateID = "bea" },
			wantFields: []string{"associateEntries[0].associateId"},
		},
		{
			name:       "secondary currency inventory line",
			mutate:     func(in *Input) { in.PrincipalLines[0].Currency = models.CurrencySecondary },
			wantFields: []string{"principalLines[0].currency"},
		},
		{
			name:       "unknown kind",
			mutate:     func(in *Input) { in.PrincipalLines[0].Kind = "gift" },
			wantFields: []string{"principalLines[0].kind"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mixedInput()
			tt.mutate(&in)

			err := ValidateInput(in)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("ValidateInput() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateInput() = nil, want errors for %v", tt.wantFields)
			}

			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected an *InputError, got %T", err)
			}
			for _, field := range tt.wantFields {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("error %q does not mention %s", err, field)
				}
			}
		})
	}
}

func TestValidateInputWrapsRateError(t *testing.T) {
	in := mixedInput()
	in.ExchangeRate = d("-2")

	err := ValidateInput(in)
	if err == nil || !strings.Contains(err.Error(), currency.ErrInvalidRate.Error()) {
		t.Errorf("ValidateInput() = %v, want rate error", err)
	}
}

func TestValidateContract(t *testing.T) {
	tests := []struct {
		name      string
		contract  *models.Contract
		wantCount int
		wantText  string
	}{
		{
			name:      "nil contract",
			contract:  nil,
			wantCount: 0,
		},
		{
			name: "clean contract",
			contract: &models.Contract{Clauses: []models.Clause{
				clause(models.ClauseSalesCommission, "", "0.8", "0.2"),
				clause(models.ClauseSalesCommission, "Sticker", "0.9", "0.1"),
				clause(models.ClauseExpenseSharing, "", "0.5", "0.5"),
			}},
			wantCount: 0,
		},
		{
			name: "shares do not sum to one",
			contract: &models.Contract{Clauses: []models.Clause{
				clause(models.ClauseSalesCommission, "", "0.5", "0.3"),
			}},
			wantCount: 1,
			wantText:  "sum to 0.8",
		},
		{
			name: "negative share",
			contract: &models.Contract{Clauses: []models.Clause{
				clause(models.ClauseSalesService, "", "-0.5", "1.5"),
			}},
			wantCount: 1,
			wantText:  "negative",
		},
		{
			name: "duplicate scoped clause",
			contract: &models.Contract{Clauses: []models.Clause{
				clause(models.ClauseSalesCommission, "Sticker", "0.9", "0.1"),
				clause(models.ClauseSalesCommission, "Sticker", "0.7", "0.3"),
			}},
			wantCount: 1,
			wantText:  "never applied",
		},
		{
			name: "second expense clause is dead even with another scope",
			contract: &models.Contract{Clauses: []models.Clause{
				clause(models.ClauseExpenseSharing, "", "0.5", "0.5"),
				clause(models.ClauseExpenseSharing, "Venue", "0.3", "0.7"),
			}},
			wantCount: 1,
			wantText:  "shared expense",
		},
		{
			name: "unknown type",
			contract: &models.Contract{Clauses: []models.Clause{
				{Type: "BONUS", CompanyShare: d("1"), AssociateShare: d("0")},
			}},
			wantCount: 1,
			wantText:  "unknown clause type",
		},
		{
			name: "legacy terms off by a bit",
			contract: &models.Contract{Terms: &models.LegacyTerms{
				PrincipalProducts: &models.ShareTerms{PrincipalShare: d("0.6"), AssociateShare: d("0.3")},
			}},
			wantCount: 1,
			wantText:  "principalProducts",
		},
		{
			name: "clauses and terms together",
			contract: &models.Contract{
				Clauses: []models.Clause{clause(models.ClauseSalesCommission, "", "0.8", "0.2")},
				Terms: &models.LegacyTerms{
					PrincipalProducts: &models.ShareTerms{PrincipalShare: d("0.6"), AssociateShare: d("0.4")},
				},
			},
			wantCount: 1,
			wantText:  "both clauses and legacy terms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := ValidateContract(tt.contract)
			if len(issues) != tt.wantCount {
				t.Fatalf("got %d issues (%+v), want %d", len(issues), issues, tt.wantCount)
			}
			if tt.wantText != "" && !strings.Contains(issues[0].Message, tt.wantText) {
				t.Errorf("issue %q does not mention %q", issues[0].Message, tt.wantText)
			}
		})
	}
}
