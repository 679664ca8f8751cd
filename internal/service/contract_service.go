package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/OntriDS/thegame-sub002/internal/calculator"
	"github.com/OntriDS/thegame-sub002/internal/middleware"
	"github.com/OntriDS/thegame-sub002/internal/models"
	"github.com/OntriDS/thegame-sub002/internal/storage"
)

// ContractService manages associates, their contracts and operator preferences.
type ContractService struct {
	store storage.Store
}

// NewContractService creates a new ContractService with the given storage backend.
func NewContractService(store storage.Store) *ContractService {
	return &ContractService{store: store}
}

// CreateAssociate registers a new associate.
func (s *ContractService) CreateAssociate(ctx context.Context, req *connect.Request[CreateAssociateRequest]) (*connect.Response[CreateAssociateResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("associate name required")
	}

	associate := &models.Associate{
		Name: name,
		Note: strings.TrimSpace(req.Msg.Note),
	}
	if err := s.store.CreateAssociate(ctx, associate); err != nil {
		slog.Error("CreateAssociate failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Associate created", "associate_id", associate.ID, "name", associate.Name)
	return connect.NewResponse(&CreateAssociateResponse{Associate: associate}), nil
}

// ListAssociates lists all associates by name.
func (s *ContractService) ListAssociates(ctx context.Context, req *connect.Request[ListAssociatesRequest]) (*connect.Response[ListAssociatesResponse], error) {
	associates, err := s.store.ListAssociates(ctx)
	if err != nil {
		slog.Error("ListAssociates failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListAssociatesResponse{Associates: associates}), nil
}

// CreateContract stores a contract for an existing associate.
// Contracts with error-level issues are rejected; warnings are returned with the stored contract.
func (s *ContractService) CreateContract(ctx context.Context, req *connect.Request[CreateContractRequest]) (*connect.Response[CreateContractResponse], error) {
	if req.Msg.Contract == nil {
		return nil, invalidArgument("contract required")
	}
	contract := *req.Msg.Contract
	contract.ID = ""
	contract.CreatedAt = 0

	if contract.AssociateID == "" {
		return nil, invalidArgument("contract associateId required")
	}
	if _, err := s.store.GetAssociate(ctx, contract.AssociateID); err != nil {
		return nil, toConnectError(err)
	}

	issues := calculator.ValidateContract(&contract)
	var rejected []string
	for _, issue := range issues {
		if issue.Severity == calculator.SeverityError {
			rejected = append(rejected, issue.Message)
		}
	}
	if len(rejected) > 0 {
		return nil, invalidArgument("contract rejected: %s", strings.Join(rejected, "; "))
	}

	if err := s.store.CreateContract(ctx, &contract); err != nil {
		slog.Error("CreateContract failed", "associate_id", contract.AssociateID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Contract created",
		"contract_id", contract.ID,
		"associate_id", contract.AssociateID,
		"schema", contract.Schema,
		"clauses", len(contract.Clauses),
		"warnings", len(issues),
	)
	return connect.NewResponse(&CreateContractResponse{Contract: &contract, Issues: issues}), nil
}

// GetContract retrieves a contract by ID.
func (s *ContractService) GetContract(ctx context.Context, req *connect.Request[GetContractRequest]) (*connect.Response[GetContractResponse], error) {
	if req.Msg.ContractID == "" {
		return nil, invalidArgument("contractId required")
	}

	contract, err := s.store.GetContract(ctx, req.Msg.ContractID)
	if err != nil {
		slog.Error("GetContract failed", "contract_id", req.Msg.ContractID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetContractResponse{Contract: contract}), nil
}

// ListContracts lists contracts, optionally for one associate.
func (s *ContractService) ListContracts(ctx context.Context, req *connect.Request[ListContractsRequest]) (*connect.Response[ListContractsResponse], error) {
	contracts, err := s.store.ListContracts(ctx, req.Msg.AssociateID)
	if err != nil {
		slog.Error("ListContracts failed", "associate_id", req.Msg.AssociateID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListContractsResponse{Contracts: contracts}), nil
}

// ValidateContract reports the schema and data-quality issues of an unsaved contract.
func (s *ContractService) ValidateContract(ctx context.Context, req *connect.Request[ValidateContractRequest]) (*connect.Response[ValidateContractResponse], error) {
	if req.Msg.Contract == nil {
		return nil, invalidArgument("contract required")
	}

	contract := *req.Msg.Contract
	contract.Normalize()

	return connect.NewResponse(&ValidateContractResponse{
		Schema: contract.Schema,
		Issues: calculator.ValidateContract(&contract),
	}), nil
}

// GetPreferences returns the calling operator's last used associate and contract.
func (s *ContractService) GetPreferences(ctx context.Context, req *connect.Request[GetPreferencesRequest]) (*connect.Response[GetPreferencesResponse], error) {
	operatorID := middleware.GetOperatorID(ctx)
	if operatorID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	prefs, err := s.store.GetPreferences(ctx, operatorID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetPreferencesResponse{Preferences: prefs}), nil
}

// SavePreferences stores the calling operator's last used associate and contract.
func (s *ContractService) SavePreferences(ctx context.Context, req *connect.Request[SavePreferencesRequest]) (*connect.Response[SavePreferencesResponse], error) {
	operatorID := middleware.GetOperatorID(ctx)
	if operatorID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	prefs := &models.Preferences{
		OperatorID:      operatorID,
		LastAssociateID: req.Msg.LastAssociateID,
		LastContractID:  req.Msg.LastContractID,
	}
	if err := s.store.SavePreferences(ctx, prefs); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SavePreferencesResponse{Preferences: prefs}), nil
}
