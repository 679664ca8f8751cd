package service

import (
	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/calculator"
	"github.com/OntriDS/thegame-sub002/internal/models"
)

// SettlementService messages

// CalculateSettlementRequest carries the raw inputs of one settlement.
// Either ContractID or an inline Contract may be given; neither means defaults.
// A zero ExchangeRate falls back to the server's default rate.
type CalculateSettlementRequest struct {
	AssociateID      string                  `json:"associateId,omitempty"`
	ContractID       string                  `json:"contractId,omitempty"`
	Contract         *models.Contract        `json:"contract,omitempty"`
	PrincipalLines   []models.SaleLine       `json:"principalLines"`
	AssociateEntries []models.AssociateEntry `json:"associateEntries"`
	SharedExpense    decimal.Decimal         `json:"sharedExpense"`
	ExchangeRate     decimal.Decimal         `json:"exchangeRate"`
}

type CalculateSettlementResponse struct {
	Breakdown   calculator.Breakdown `json:"breakdown"`
	Unallocated decimal.Decimal      `json:"unallocated"`
}

type SaveSettlementRequest struct {
	CalculateSettlementRequest
	Title string `json:"title,omitempty"`
}

type SaveSettlementResponse struct {
	Settlement *models.Settlement   `json:"settlement"`
	Breakdown  calculator.Breakdown `json:"breakdown"`
}

type GetSettlementRequest struct {
	SettlementID string `json:"settlementId"`
}

type GetSettlementResponse struct {
	Settlement *models.Settlement   `json:"settlement"`
	Breakdown  calculator.Breakdown `json:"breakdown"`
}

type ListSettlementsRequest struct {
	AssociateID string `json:"associateId,omitempty"`
}

type ListSettlementsResponse struct {
	Settlements []*models.Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlementId"`
}

type DeleteSettlementResponse struct{}

type RecordPayoutRequest struct {
	AssociateID string          `json:"associateId"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
}

type RecordPayoutResponse struct {
	Payout *models.Payout `json:"payout"`
}

type ListAssociateBalancesRequest struct {
	AssociateID string `json:"associateId,omitempty"`
}

type ListAssociateBalancesResponse struct {
	Balances []calculator.AssociateBalance `json:"balances"`
}

// ContractService messages

type CreateAssociateRequest struct {
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

type CreateAssociateResponse struct {
	Associate *models.Associate `json:"associate"`
}

type ListAssociatesRequest struct{}

type ListAssociatesResponse struct {
	Associates []*models.Associate `json:"associates"`
}

type CreateContractRequest struct {
	Contract *models.Contract `json:"contract"`
}

type CreateContractResponse struct {
	Contract *models.Contract          `json:"contract"`
	Issues   []calculator.ContractIssue `json:"issues,omitempty"`
}

type GetContractRequest struct {
	ContractID string `json:"contractId"`
}

type GetContractResponse struct {
	Contract *models.Contract `json:"contract"`
}

type ListContractsRequest struct {
	AssociateID string `json:"associateId,omitempty"`
}

type ListContractsResponse struct {
	Contracts []*models.Contract `json:"contracts"`
}

type ValidateContractRequest struct {
	Contract *models.Contract `json:"contract"`
}

type ValidateContractResponse struct {
	Schema models.ContractSchema      `json:"schema"`
	Issues []calculator.ContractIssue `json:"issues"`
}

type GetPreferencesRequest struct{}

type GetPreferencesResponse struct {
	Preferences *models.Preferences `json:"preferences"`
}

type SavePreferencesRequest struct {
	LastAssociateID string `json:"lastAssociateId,omitempty"`
	LastContractID  string `json:"lastContractId,omitempty"`
}

type SavePreferencesResponse struct {
	Preferences *models.Preferences `json:"preferences"`
}

// AuthService messages

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Operator *models.Operator `json:"operator"`
	Token    string           `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Operator *models.Operator `json:"operator"`
	Token    string           `json:"token"`
}

type GetCurrentOperatorRequest struct{}

type GetCurrentOperatorResponse struct {
	Operator *models.Operator `json:"operator"`
}
