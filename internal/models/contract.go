package models

import "github.com/shopspring/decimal"

// ClauseType is the kind of arrangement a clause governs.
type ClauseType string

const (
	// ClauseSalesCommission splits sales of goods.
	ClauseSalesCommission ClauseType = "SALES_COMMISSION"
	// ClauseSalesService sets the service fee the principal earns selling an associate's goods.
	ClauseSalesService ClauseType = "SALES_SERVICE"
	// ClauseExpenseSharing splits the shared booth cost.
	ClauseExpenseSharing ClauseType = "EXPENSE_SHARING"
)

// Valid reports whether t is one of the known clause types.
func (t ClauseType) Valid() bool {
	switch t {
	case ClauseSalesCommission, ClauseSalesService, ClauseExpenseSharing:
		return true
	}
	return false
}

// Clause is one contractual rule.
// CompanyShare is always the principal's cut and AssociateShare the associate's,
// whichever side owns the goods.
type Clause struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Type        ClauseType `json:"type" yaml:"type"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`

	// ItemCategory scopes the clause to one row label. Empty means contract-wide.
	ItemCategory string `json:"itemCategory,omitempty" yaml:"itemCategory,omitempty"`

	CompanyShare   decimal.Decimal `json:"companyShare" yaml:"companyShare"`
	AssociateShare decimal.Decimal `json:"associateShare" yaml:"associateShare"`
}

// Scoped reports whether the clause applies to a single category only.
func (c Clause) Scoped() bool {
	return c.ItemCategory != ""
}

// ShareTerms is a flat split from contracts written before typed clauses existed.
type ShareTerms struct {
	PrincipalShare decimal.Decimal `json:"principalShare" yaml:"principalShare"`
	AssociateShare decimal.Decimal `json:"associateShare" yaml:"associateShare"`
}

// LegacyTerms is the free-form terms object of pre-clause contracts.
type LegacyTerms struct {
	PrincipalProducts *ShareTerms `json:"principalProducts,omitempty" yaml:"principalProducts,omitempty"`
	AssociateProducts *ShareTerms `json:"associateProducts,omitempty" yaml:"associateProducts,omitempty"`
}

// ContractSchema tells which generation of the contract format a contract uses.
type ContractSchema string

const (
	SchemaEmpty       ContractSchema = "empty"
	SchemaClauses     ContractSchema = "clauses"
	SchemaLegacyTerms ContractSchema = "legacy-terms"
)

// Contract is an agreement between the principal and one associate.
type Contract struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	AssociateID string `json:"associateId,omitempty" yaml:"associateId,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`

	// Clauses are ordered; the first matching clause wins.
	Clauses []Clause `json:"clauses,omitempty" yaml:"clauses,omitempty"`

	// Terms is only present on contracts that predate Clauses.
	Terms *LegacyTerms `json:"terms,omitempty" yaml:"terms,omitempty"`

	// Schema is derived by DetectSchema when the contract is loaded.
	Schema ContractSchema `json:"schema,omitempty" yaml:"-"`

	CreatedAt int64 `json:"createdAt,omitempty" yaml:"-"`
}

// DetectSchema derives the schema discriminator from the contract's fields.
func (c *Contract) DetectSchema() ContractSchema {
	switch {
	case len(c.Clauses) > 0:
		return SchemaClauses
	case c.Terms != nil && (c.Terms.PrincipalProducts != nil || c.Terms.AssociateProducts != nil):
		return SchemaLegacyTerms
	default:
		return SchemaEmpty
	}
}

// Normalize sets Schema. Storage and decoders call it once per loaded contract.
func (c *Contract) Normalize() {
	c.Schema = c.DetectSchema()
}
