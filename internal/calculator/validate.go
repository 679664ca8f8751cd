package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/currency"
	"github.com/OntriDS/thegame-sub002/internal/models"
)

// InputError describes one precondition violation of a settlement input.
type InputError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidateInput checks the preconditions Calculate relies on.
// It returns every violation joined together, or nil.
func ValidateInput(in Input) error {
	var errs []error

	if err := currency.ValidateRate(in.ExchangeRate); err != nil {
		errs = append(errs, &InputError{Field: "exchangeRate", Message: err.Error()})
	}
	if in.SharedExpense.IsNegative() {
		errs = append(errs, &InputError{Field: "sharedExpense", Message: "must not be negative"})
	}

	for i, line := range in.PrincipalLines {
		field := fmt.Sprintf("principalLines[%d]", i)
		if line.Quantity < 0 {
			errs = append(errs, &InputError{Field: field + ".quantity", Message: "must not be negative"})
		}
		if line.UnitPrice.IsNegative() {
			errs = append(errs, &InputError{Field: field + ".unitPrice", Message: "must not be negative"})
		}
		if line.LineCurrency() != models.CurrencyNative {
			errs = append(errs, &InputError{Field: field + ".currency", Message: "inventory lines must be in the native currency"})
		}
		switch line.Kind {
		case models.LineKindItem, models.LineKindBundle, models.LineKindService:
		default:
			errs = append(errs, &InputError{Field: field + ".kind", Message: fmt.Sprintf("unknown kind %q", line.Kind)})
		}
	}

	for i, entry := range in.AssociateEntries {
		field := fmt.Sprintf("associateEntries[%d]", i)
		if entry.Amount.IsNegative() {
			errs = append(errs, &InputError{Field: field + ".amount", Message: "must not be negative"})
		}
		if in.AssociateID != "" && entry.AssociateID != "" && entry.AssociateID != in.AssociateID {
			errs = append(errs, &InputError{
				Field:   field + ".associateId",
				Message: fmt.Sprintf("entry belongs to %s, settlement is with %s", entry.AssociateID, in.AssociateID),
			})
		}
	}

	return errors.Join(errs...)
}

// IssueSeverity ranks contract issues.
type IssueSeverity string

const (
	SeverityWarning IssueSeverity = "warning"
	SeverityError   IssueSeverity = "error"
)

// ContractIssue is a data-quality finding on a contract.
// Issues are reported only; the calculator applies contracts as written.
type ContractIssue struct {
	Severity IssueSeverity `json:"severity"`
	Clause   int           `json:"clause"` // index into Clauses, -1 for contract-level issues
	Message  string        `json:"message"`
}

var one = decimal.NewFromInt(1)

// ValidateContract lists data-quality issues of contract.
func ValidateContract(contract *models.Contract) []ContractIssue {
	if contract == nil {
		return nil
	}

	var issues []ContractIssue
	seen := make(map[string]int)

	for i, clause := range contract.Clauses {
		if !clause.Type.Valid() {
			issues = append(issues, ContractIssue{
				Severity: SeverityError,
				Clause:   i,
				Message:  fmt.Sprintf("unknown clause type %q is ignored", clause.Type),
			})
			continue
		}
		if clause.CompanyShare.IsNegative() || clause.AssociateShare.IsNegative() {
			issues = append(issues, ContractIssue{
				Severity: SeverityError,
				Clause:   i,
				Message:  "shares must not be negative",
			})
		}
		if sum := clause.CompanyShare.Add(clause.AssociateShare); !sum.Equal(one) {
			issues = append(issues, ContractIssue{
				Severity: SeverityWarning,
				Clause:   i,
				Message:  fmt.Sprintf("shares sum to %s, not 1; the difference stays unallocated", sum),
			})
		}

		key := string(clause.Type) + "|" + clause.ItemCategory
		if clause.Type == models.ClauseExpenseSharing {
			key = string(clause.Type)
		}
		if first, dup := seen[key]; dup {
			issues = append(issues, ContractIssue{
				Severity: SeverityWarning,
				Clause:   i,
				Message:  fmt.Sprintf("never applied: clause %d already covers %s", first, describeScope(clause)),
			})
			continue
		}
		seen[key] = i
	}

	if contract.Terms != nil {
		if len(contract.Clauses) > 0 {
			issues = append(issues, ContractIssue{
				Severity: SeverityWarning,
				Clause:   -1,
				Message:  "contract has both clauses and legacy terms; terms only apply where no clause matches",
			})
		}
		issues = append(issues, checkTerms("principalProducts", contract.Terms.PrincipalProducts)...)
		issues = append(issues, checkTerms("associateProducts", contract.Terms.AssociateProducts)...)
	}

	return issues
}

func checkTerms(name string, terms *models.ShareTerms) []ContractIssue {
	if terms == nil {
		return nil
	}
	if sum := terms.PrincipalShare.Add(terms.AssociateShare); !sum.Equal(one) {
		return []ContractIssue{{
			Severity: SeverityWarning,
			Clause:   -1,
			Message:  fmt.Sprintf("terms.%s shares sum to %s, not 1", name, sum),
		}}
	}
	return nil
}

func describeScope(clause models.Clause) string {
	if clause.Type == models.ClauseExpenseSharing {
		return "the shared expense"
	}
	if clause.Scoped() {
		return fmt.Sprintf("%s for %q", clause.Type, clause.ItemCategory)
	}
	return fmt.Sprintf("%s contract-wide", clause.Type)
}
