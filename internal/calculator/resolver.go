package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/models"
)

// Classification is what a share lookup is for.
type Classification string

const (
	PrincipalGoods Classification = "PRINCIPAL_GOODS"
	AssociateGoods Classification = "ASSOCIATE_GOODS"
	Expense        Classification = "EXPENSE"
)

// ShareSource records which rule produced a share pair.
type ShareSource string

const (
	SourceDefault        ShareSource = "default"
	SourceScopedClause   ShareSource = "scoped-clause"
	SourceContractClause ShareSource = "contract-clause"
	SourceLegacyTerms    ShareSource = "legacy-terms"
)

// Shares is a resolved split. CompanyShare is the principal's fraction.
// Values are used exactly as written in the contract, even when they do not sum to 1.
type Shares struct {
	CompanyShare   decimal.Decimal `json:"companyShare"`
	AssociateShare decimal.Decimal `json:"associateShare"`
	Source         ShareSource     `json:"source"`
	ClauseType     string          `json:"clauseType,omitempty"`
	ClauseID       string          `json:"clauseId,omitempty"`
}

// DefaultShares returns the split applied when no rule matches.
// The principal keeps their own goods, the associate keeps theirs,
// and the principal absorbs the whole expense.
func DefaultShares(c Classification) Shares {
	switch c {
	case AssociateGoods:
		return Shares{CompanyShare: decimal.Zero, AssociateShare: decimal.NewFromInt(1), Source: SourceDefault}
	default:
		return Shares{CompanyShare: decimal.NewFromInt(1), AssociateShare: decimal.Zero, Source: SourceDefault}
	}
}

func clauseShares(clause models.Clause, source ShareSource) Shares {
	return Shares{
		CompanyShare:   clause.CompanyShare,
		AssociateShare: clause.AssociateShare,
		Source:         source,
		ClauseType:     string(clause.Type),
		ClauseID:       clause.ID,
	}
}

func termShares(terms *models.ShareTerms) Shares {
	return Shares{
		CompanyShare:   terms.PrincipalShare,
		AssociateShare: terms.AssociateShare,
		Source:         SourceLegacyTerms,
	}
}

// Resolver answers share lookups for one contract.
// The contract is indexed once in NewResolver; lookups never inspect it again.
type Resolver struct {
	schema models.ContractSchema

	// scoped[type][category] and unscoped[type] keep the first clause in contract order.
	scoped   map[models.ClauseType]map[string]models.Clause
	unscoped map[models.ClauseType]models.Clause
	expense  *models.Clause

	hasService bool
	terms      *models.LegacyTerms
}

// NewResolver indexes contract. A nil contract resolves everything to defaults.
func NewResolver(contract *models.Contract) *Resolver {
	r := &Resolver{
		schema:   models.SchemaEmpty,
		scoped:   make(map[models.ClauseType]map[string]models.Clause),
		unscoped: make(map[models.ClauseType]models.Clause),
	}
	if contract == nil {
		return r
	}

	r.schema = contract.Schema
	if r.schema == "" {
		r.schema = contract.DetectSchema()
	}
	r.terms = contract.Terms

	for _, clause := range contract.Clauses {
		switch clause.Type {
		case models.ClauseExpenseSharing:
			if r.expense == nil {
				c := clause
				r.expense = &c
			}
			continue
		case models.ClauseSalesService:
			r.hasService = true
		case models.ClauseSalesCommission:
		default:
			continue
		}

		if clause.Scoped() {
			byCategory, ok := r.scoped[clause.Type]
			if !ok {
				byCategory = make(map[string]models.Clause)
				r.scoped[clause.Type] = byCategory
			}
			if _, exists := byCategory[clause.ItemCategory]; !exists {
				byCategory[clause.ItemCategory] = clause
			}
			continue
		}
		if _, exists := r.unscoped[clause.Type]; !exists {
			r.unscoped[clause.Type] = clause
		}
	}

	return r
}

// Schema returns the schema of the indexed contract.
func (r *Resolver) Schema() models.ContractSchema {
	return r.schema
}

// goodsClauseType picks the clause type consulted for a goods classification.
// Associate goods use SALES_SERVICE when the contract has any, else SALES_COMMISSION.
func (r *Resolver) goodsClauseType(c Classification) models.ClauseType {
	if c == AssociateGoods && r.hasService {
		return models.ClauseSalesService
	}
	return models.ClauseSalesCommission
}

// Resolve returns the shares for classification c on the row labeled category.
//
// Lookup order for goods:
//  1. clause of the candidate type scoped to category
//  2. clause of the candidate type with no category
//  3. legacy terms (principalProducts / associateProducts)
//  4. DefaultShares
//
// Expenses consult the first EXPENSE_SHARING clause only; category is ignored.
func (r *Resolver) Resolve(c Classification, category string) Shares {
	if c == Expense {
		if r.expense != nil {
			return clauseShares(*r.expense, SourceContractClause)
		}
		return DefaultShares(Expense)
	}

	clauseType := r.goodsClauseType(c)
	if category != "" {
		if clause, ok := r.scoped[clauseType][category]; ok {
			return clauseShares(clause, SourceScopedClause)
		}
	}
	if clause, ok := r.unscoped[clauseType]; ok {
		return clauseShares(clause, SourceContractClause)
	}

	if r.terms != nil {
		if c == PrincipalGoods && r.terms.PrincipalProducts != nil {
			return termShares(r.terms.PrincipalProducts)
		}
		if c == AssociateGoods && r.terms.AssociateProducts != nil {
			return termShares(r.terms.AssociateProducts)
		}
	}

	return DefaultShares(c)
}

// ResolveShares resolves a single lookup without keeping the index around.
func ResolveShares(contract *models.Contract, c Classification, category string) Shares {
	return NewResolver(contract).Resolve(c, category)
}
