package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	SettlementServiceName = "settle.v1.SettlementService"
	ContractServiceName   = "settle.v1.ContractService"
	AuthServiceName       = "settle.v1.AuthService"
)

// Procedure paths, in the form Connect routes them.
const (
	SettlementServiceCalculateSettlementProcedure   = "/" + SettlementServiceName + "/CalculateSettlement"
	SettlementServiceSaveSettlementProcedure        = "/" + SettlementServiceName + "/SaveSettlement"
	SettlementServiceGetSettlementProcedure         = "/" + SettlementServiceName + "/GetSettlement"
	SettlementServiceListSettlementsProcedure       = "/" + SettlementServiceName + "/ListSettlements"
	SettlementServiceDeleteSettlementProcedure      = "/" + SettlementServiceName + "/DeleteSettlement"
	SettlementServiceRecordPayoutProcedure          = "/" + SettlementServiceName + "/RecordPayout"
	SettlementServiceListAssociateBalancesProcedure = "/" + SettlementServiceName + "/ListAssociateBalances"

	ContractServiceCreateAssociateProcedure  = "/" + ContractServiceName + "/CreateAssociate"
	ContractServiceListAssociatesProcedure   = "/" + ContractServiceName + "/ListAssociates"
	ContractServiceCreateContractProcedure   = "/" + ContractServiceName + "/CreateContract"
	ContractServiceGetContractProcedure      = "/" + ContractServiceName + "/GetContract"
	ContractServiceListContractsProcedure    = "/" + ContractServiceName + "/ListContracts"
	ContractServiceValidateContractProcedure = "/" + ContractServiceName + "/ValidateContract"
	ContractServiceGetPreferencesProcedure   = "/" + ContractServiceName + "/GetPreferences"
	ContractServiceSavePreferencesProcedure  = "/" + ContractServiceName + "/SavePreferences"

	AuthServiceRegisterProcedure           = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure              = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentOperatorProcedure = "/" + AuthServiceName + "/GetCurrentOperator"
)

// PublicProcedures lists the procedures callable without a token.
func PublicProcedures() []string {
	return []string{
		SettlementServiceCalculateSettlementProcedure,
		ContractServiceValidateContractProcedure,
		AuthServiceRegisterProcedure,
		AuthServiceLoginProcedure,
	}
}

func handle[Req, Res any](mux *http.ServeMux, procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error), opts []connect.HandlerOption) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// NewSettlementServiceHandler builds an HTTP handler serving svc.
// It returns the path to mount the handler on.
func NewSettlementServiceHandler(svc *SettlementService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, SettlementServiceCalculateSettlementProcedure, svc.CalculateSettlement, opts)
	handle(mux, SettlementServiceSaveSettlementProcedure, svc.SaveSettlement, opts)
	handle(mux, SettlementServiceGetSettlementProcedure, svc.GetSettlement, opts)
	handle(mux, SettlementServiceListSettlementsProcedure, svc.ListSettlements, opts)
	handle(mux, SettlementServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts)
	handle(mux, SettlementServiceRecordPayoutProcedure, svc.RecordPayout, opts)
	handle(mux, SettlementServiceListAssociateBalancesProcedure, svc.ListAssociateBalances, opts)
	return "/" + SettlementServiceName + "/", mux
}

// NewContractServiceHandler builds an HTTP handler serving svc.
func NewContractServiceHandler(svc *ContractService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, ContractServiceCreateAssociateProcedure, svc.CreateAssociate, opts)
	handle(mux, ContractServiceListAssociatesProcedure, svc.ListAssociates, opts)
	handle(mux, ContractServiceCreateContractProcedure, svc.CreateContract, opts)
	handle(mux, ContractServiceGetContractProcedure, svc.GetContract, opts)
	handle(mux, ContractServiceListContractsProcedure, svc.ListContracts, opts)
	handle(mux, ContractServiceValidateContractProcedure, svc.ValidateContract, opts)
	handle(mux, ContractServiceGetPreferencesProcedure, svc.GetPreferences, opts)
	handle(mux, ContractServiceSavePreferencesProcedure, svc.SavePreferences, opts)
	return "/" + ContractServiceName + "/", mux
}

// NewAuthServiceHandler builds an HTTP handler serving svc.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, AuthServiceRegisterProcedure, svc.Register, opts)
	handle(mux, AuthServiceLoginProcedure, svc.Login, opts)
	handle(mux, AuthServiceGetCurrentOperatorProcedure, svc.GetCurrentOperator, opts)
	return "/" + AuthServiceName + "/", mux
}

// SettlementServiceClient is a typed client for the SettlementService.
type SettlementServiceClient struct {
	calculateSettlement   *connect.Client[CalculateSettlementRequest, CalculateSettlementResponse]
	saveSettlement        *connect.Client[SaveSettlementRequest, SaveSettlementResponse]
	getSettlement         *connect.Client[GetSettlementRequest, GetSettlementResponse]
	listSettlements       *connect.Client[ListSettlementsRequest, ListSettlementsResponse]
	deleteSettlement      *connect.Client[DeleteSettlementRequest, DeleteSettlementResponse]
	recordPayout          *connect.Client[RecordPayoutRequest, RecordPayoutResponse]
	listAssociateBalances *connect.Client[ListAssociateBalancesRequest, ListAssociateBalancesResponse]
}

// NewSettlementServiceClient creates a client for the service hosted at baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SettlementServiceClient{
		calculateSettlement:   connect.NewClient[CalculateSettlementRequest, CalculateSettlementResponse](httpClient, baseURL+SettlementServiceCalculateSettlementProcedure, opts...),
		saveSettlement:        connect.NewClient[SaveSettlementRequest, SaveSettlementResponse](httpClient, baseURL+SettlementServiceSaveSettlementProcedure, opts...),
		getSettlement:         connect.NewClient[GetSettlementRequest, GetSettlementResponse](httpClient, baseURL+SettlementServiceGetSettlementProcedure, opts...),
		listSettlements:       connect.NewClient[ListSettlementsRequest, ListSettlementsResponse](httpClient, baseURL+SettlementServiceListSettlementsProcedure, opts...),
		deleteSettlement:      connect.NewClient[DeleteSettlementRequest, DeleteSettlementResponse](httpClient, baseURL+SettlementServiceDeleteSettlementProcedure, opts...),
		recordPayout:          connect.NewClient[RecordPayoutRequest, RecordPayoutResponse](httpClient, baseURL+SettlementServiceRecordPayoutProcedure, opts...),
		listAssociateBalances: connect.NewClient[ListAssociateBalancesRequest, ListAssociateBalancesResponse](httpClient, baseURL+SettlementServiceListAssociateBalancesProcedure, opts...),
	}
}

func (c *SettlementServiceClient) CalculateSettlement(ctx context.Context, req *connect.Request[CalculateSettlementRequest]) (*connect.Response[CalculateSettlementResponse], error) {
	return c.calculateSettlement.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) SaveSettlement(ctx context.Context, req *connect.Request[SaveSettlementRequest]) (*connect.Response[SaveSettlementResponse], error) {
	return c.saveSettlement.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) GetSettlement(ctx context.Context, req *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) RecordPayout(ctx context.Context, req *connect.Request[RecordPayoutRequest]) (*connect.Response[RecordPayoutResponse], error) {
	return c.recordPayout.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) ListAssociateBalances(ctx context.Context, req *connect.Request[ListAssociateBalancesRequest]) (*connect.Response[ListAssociateBalancesResponse], error) {
	return c.listAssociateBalances.CallUnary(ctx, req)
}

// ContractServiceClient is a typed client for the ContractService.
type ContractServiceClient struct {
	createAssociate  *connect.Client[CreateAssociateRequest, CreateAssociateResponse]
	listAssociates   *connect.Client[ListAssociatesRequest, ListAssociatesResponse]
	createContract   *connect.Client[CreateContractRequest, CreateContractResponse]
	getContract      *connect.Client[GetContractRequest, GetContractResponse]
	listContracts    *connect.Client[ListContractsRequest, ListContractsResponse]
	validateContract *connect.Client[ValidateContractRequest, ValidateContractResponse]
	getPreferences   *connect.Client[GetPreferencesRequest, GetPreferencesResponse]
	savePreferences  *connect.Client[SavePreferencesRequest, SavePreferencesResponse]
}

// NewContractServiceClient creates a client for the service hosted at baseURL.
func NewContractServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ContractServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ContractServiceClient{
		createAssociate:  connect.NewClient[CreateAssociateRequest, CreateAssociateResponse](httpClient, baseURL+ContractServiceCreateAssociateProcedure, opts...),
		listAssociates:   connect.NewClient[ListAssociatesRequest, ListAssociatesResponse](httpClient, baseURL+ContractServiceListAssociatesProcedure, opts...),
		createContract:   connect.NewClient[CreateContractRequest, CreateContractResponse](httpClient, baseURL+ContractServiceCreateContractProcedure, opts...),
		getContract:      connect.NewClient[GetContractRequest, GetContractResponse](httpClient, baseURL+ContractServiceGetContractProcedure, opts...),
		listContracts:    connect.NewClient[ListContractsRequest, ListContractsResponse](httpClient, baseURL+ContractServiceListContractsProcedure, opts...),
		validateContract: connect.NewClient[ValidateContractRequest, ValidateContractResponse](httpClient, baseURL+ContractServiceValidateContractProcedure, opts...),
		getPreferences:   connect.NewClient[GetPreferencesRequest, GetPreferencesResponse](httpClient, baseURL+ContractServiceGetPreferencesProcedure, opts...),
		savePreferences:  connect.NewClient[SavePreferencesRequest, SavePreferencesResponse](httpClient, baseURL+ContractServiceSavePreferencesProcedure, opts...),
	}
}

func (c *ContractServiceClient) CreateAssociate(ctx context.Context, req *connect.Request[CreateAssociateRequest]) (*connect.Response[CreateAssociateResponse], error) {
	return c.createAssociate.CallUnary(ctx, req)
}

func (c *ContractServiceClient) ListAssociates(ctx context.Context, req *connect.Request[ListAssociatesRequest]) (*connect.Response[ListAssociatesResponse], error) {
	return c.listAssociates.CallUnary(ctx, req)
}

func (c *ContractServiceClient) CreateContract(ctx context.Context, req *connect.Request[CreateContractRequest]) (*connect.Response[CreateContractResponse], error) {
	return c.createContract.CallUnary(ctx, req)
}

func (c *ContractServiceClient) GetContract(ctx context.Context, req *connect.Request[GetContractRequest]) (*connect.Response[GetContractResponse], error) {
	return c.getContract.CallUnary(ctx, req)
}

func (c *ContractServiceClient) ListContracts(ctx context.Context, req *connect.Request[ListContractsRequest]) (*connect.Response[ListContractsResponse], error) {
	return c.listContracts.CallUnary(ctx, req)
}

func (c *ContractServiceClient) ValidateContract(ctx context.Context, req *connect.Request[ValidateContractRequest]) (*connect.Response[ValidateContractResponse], error) {
	return c.validateContract.CallUnary(ctx, req)
}

func (c *ContractServiceClient) GetPreferences(ctx context.Context, req *connect.Request[GetPreferencesRequest]) (*connect.Response[GetPreferencesResponse], error) {
	return c.getPreferences.CallUnary(ctx, req)
}

func (c *ContractServiceClient) SavePreferences(ctx context.Context, req *connect.Request[SavePreferencesRequest]) (*connect.Response[SavePreferencesResponse], error) {
	return c.savePreferences.CallUnary(ctx, req)
}

// AuthServiceClient is a typed client for the AuthService.
type AuthServiceClient struct {
	register           *connect.Client[RegisterRequest, RegisterResponse]
	login              *connect.Client[LoginRequest, LoginResponse]
	getCurrentOperator *connect.Client[GetCurrentOperatorRequest, GetCurrentOperatorResponse]
}

// NewAuthServiceClient creates a client for the service hosted at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register:           connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:              connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentOperator: connect.NewClient[GetCurrentOperatorRequest, GetCurrentOperatorResponse](httpClient, baseURL+AuthServiceGetCurrentOperatorProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentOperator(ctx context.Context, req *connect.Request[GetCurrentOperatorRequest]) (*connect.Response[GetCurrentOperatorResponse], error) {
	return c.getCurrentOperator.CallUnary(ctx, req)
}
