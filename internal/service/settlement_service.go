package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/calculator"
	"github.com/OntriDS/thegame-sub002/internal/metrics"
	"github.com/OntriDS/thegame-sub002/internal/middleware"
	"github.com/OntriDS/thegame-sub002/internal/models"
	"github.com/OntriDS/thegame-sub002/internal/storage"
)

// SettlementService computes, stores and reports settlements.
type SettlementService struct {
	store       storage.Store
	defaultRate decimal.Decimal
}

// NewSettlementService creates a SettlementService. defaultRate applies to
// requests that leave the exchange rate empty.
func NewSettlementService(store storage.Store, defaultRate decimal.Decimal) *SettlementService {
	return &SettlementService{store: store, defaultRate: defaultRate}
}

// buildInput resolves the contract and rate of a request and validates the result.
func (s *SettlementService) buildInput(ctx context.Context, msg *CalculateSettlementRequest) (calculator.Input, error) {
	in := calculator.Input{
		AssociateID:      msg.AssociateID,
		PrincipalLines:   msg.PrincipalLines,
		AssociateEntries: msg.AssociateEntries,
		SharedExpense:    msg.SharedExpense,
		ExchangeRate:     msg.ExchangeRate,
	}
	if in.ExchangeRate.IsZero() {
		in.ExchangeRate = s.defaultRate
	}

	switch {
	case msg.Contract != nil && msg.ContractID != "":
		return in, invalidArgument("give either contractId or an inline contract, not both")
	case msg.Contract != nil:
		contract := *msg.Contract
		contract.Normalize()
		in.Contract = &contract
	case msg.ContractID != "":
		contract, err := s.store.GetContract(ctx, msg.ContractID)
		if err != nil {
			return in, err
		}
		in.Contract = contract
	}

	if in.Contract != nil && in.Contract.AssociateID != "" {
		if in.AssociateID == "" {
			in.AssociateID = in.Contract.AssociateID
		} else if in.AssociateID != in.Contract.AssociateID {
			return in, invalidArgument("contract %s belongs to associate %s, not %s",
				in.Contract.ID, in.Contract.AssociateID, in.AssociateID)
		}
	}

	if err := calculator.ValidateInput(in); err != nil {
		return in, err
	}
	return in, nil
}

// calculate runs the engine and records metrics for the result.
func calculate(in calculator.Input) calculator.Breakdown {
	b := calculator.Calculate(in)

	metrics.RecordCalculation(string(b.ContractSchema))
	for _, row := range b.PrincipalRows {
		metrics.RecordShareResolution(string(calculator.PrincipalGoods), string(row.Shares.Source))
	}
	for _, row := range b.AssociateRows {
		metrics.RecordShareResolution(string(calculator.AssociateGoods), string(row.Shares.Source))
	}
	metrics.RecordShareResolution(string(calculator.Expense), string(b.ExpenseShares.Source))

	slog.Debug("Settlement calculated",
		"associate_id", in.AssociateID,
		"contract_schema", b.ContractSchema,
		"principal_rows", len(b.PrincipalRows),
		"associate_rows", len(b.AssociateRows),
		"gross_sales", b.GrossSales.String(),
		"principal_net", b.PrincipalNet.String(),
		"associate_net", b.AssociateNet.String(),
	)
	return b
}

// CalculateSettlement computes a breakdown without storing anything.
func (s *SettlementService) CalculateSettlement(ctx context.Context, req *connect.Request[CalculateSettlementRequest]) (*connect.Response[CalculateSettlementResponse], error) {
	in, err := s.buildInput(ctx, req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}

	b := calculate(in)
	return connect.NewResponse(&CalculateSettlementResponse{
		Breakdown:   b,
		Unallocated: b.Unallocated(),
	}), nil
}

// SaveSettlement computes a settlement and persists it with its materialized lines.
// An inline contract is stored as a new contract in the same transaction so the
// settlement can be recomputed later.
func (s *SettlementService) SaveSettlement(ctx context.Context, req *connect.Request[SaveSettlementRequest]) (*connect.Response[SaveSettlementResponse], error) {
	operatorID := middleware.GetOperatorID(ctx)
	if operatorID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	in, err := s.buildInput(ctx, &req.Msg.CalculateSettlementRequest)
	if err != nil {
		return nil, toConnectError(err)
	}

	if in.AssociateID != "" {
		if _, err := s.store.GetAssociate(ctx, in.AssociateID); err != nil {
			return nil, toConnectError(err)
		}
	}

	var inline *models.Contract
	if req.Msg.Contract != nil {
		contract := *in.Contract
		contract.ID = ""
		contract.CreatedAt = 0
		if contract.AssociateID == "" {
			contract.AssociateID = in.AssociateID
		}
		inline = &contract
		in.Contract = inline
	}

	b := calculate(in)

	settlement := &models.Settlement{
		Title:         req.Msg.Title,
		AssociateID:   in.AssociateID,
		Lines:         calculator.MaterializeLines(in),
		SharedExpense: in.SharedExpense,
		ExchangeRate:  in.ExchangeRate,
		GrossSales:    b.GrossSales,
		PrincipalNet:  b.PrincipalNet,
		AssociateNet:  b.AssociateNet,
		CreatedBy:     operatorID,
	}

	if inline != nil {
		err = s.store.CreateSettlementWithContract(ctx, settlement, inline)
	} else {
		if in.Contract != nil {
			settlement.ContractID = in.Contract.ID
		}
		err = s.store.CreateSettlement(ctx, settlement)
	}
	if err != nil {
		slog.Error("SaveSettlement failed", "error", err)
		return nil, toConnectError(err)
	}
	b.ContractID = settlement.ContractID
	metrics.RecordSettlementSaved()

	prefs := &models.Preferences{
		OperatorID:      operatorID,
		LastAssociateID: settlement.AssociateID,
		LastContractID:  settlement.ContractID,
	}
	if err := s.store.SavePreferences(ctx, prefs); err != nil {
		slog.Warn("SaveSettlement: failed to remember preferences", "operator_id", operatorID, "error", err)
	}

	slog.Info("Settlement saved",
		"settlement_id", settlement.ID,
		"associate_id", settlement.AssociateID,
		"contract_id", settlement.ContractID,
		"lines", len(settlement.Lines),
	)

	return connect.NewResponse(&SaveSettlementResponse{
		Settlement: settlement,
		Breakdown:  b,
	}), nil
}

// GetSettlement loads a saved settlement and recomputes its breakdown from the stored lines.
func (s *SettlementService) GetSettlement(ctx context.Context, req *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	if req.Msg.SettlementID == "" {
		return nil, invalidArgument("settlementId required")
	}

	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		slog.Error("GetSettlement failed", "settlement_id", req.Msg.SettlementID, "error", err)
		return nil, toConnectError(err)
	}

	var contract *models.Contract
	if settlement.ContractID != "" {
		contract, err = s.store.GetContract(ctx, settlement.ContractID)
		if err != nil {
			slog.Error("GetSettlement: failed to load contract", "contract_id", settlement.ContractID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to load contract of settlement: %w", err))
		}
	}

	b := calculator.Calculate(calculator.RecomputeInput(settlement, contract))
	return connect.NewResponse(&GetSettlementResponse{
		Settlement: settlement,
		Breakdown:  b,
	}), nil
}

// ListSettlements lists saved settlements, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	settlements, err := s.store.ListSettlements(ctx, req.Msg.AssociateID)
	if err != nil {
		slog.Error("ListSettlements failed", "associate_id", req.Msg.AssociateID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListSettlementsResponse{Settlements: settlements}), nil
}

// DeleteSettlement removes a saved settlement.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error) {
	if req.Msg.SettlementID == "" {
		return nil, invalidArgument("settlementId required")
	}

	if err := s.store.DeleteSettlement(ctx, req.Msg.SettlementID); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", req.Msg.SettlementID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settlement deleted", "settlement_id", req.Msg.SettlementID, "operator_id", middleware.GetOperatorID(ctx))
	return connect.NewResponse(&DeleteSettlementResponse{}), nil
}

// RecordPayout records money paid out to an associate.
func (s *SettlementService) RecordPayout(ctx context.Context, req *connect.Request[RecordPayoutRequest]) (*connect.Response[RecordPayoutResponse], error) {
	operatorID := middleware.GetOperatorID(ctx)
	if operatorID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	if req.Msg.AssociateID == "" {
		return nil, invalidArgument("associateId required")
	}
	if !req.Msg.Amount.IsPositive() {
		return nil, invalidArgument("amount must be greater than zero, got %s", req.Msg.Amount)
	}

	if _, err := s.store.GetAssociate(ctx, req.Msg.AssociateID); err != nil {
		return nil, toConnectError(err)
	}

	payout := &models.Payout{
		AssociateID: req.Msg.AssociateID,
		Amount:      req.Msg.Amount,
		Note:        req.Msg.Note,
		CreatedBy:   operatorID,
	}
	if err := s.store.CreatePayout(ctx, payout); err != nil {
		slog.Error("RecordPayout failed", "associate_id", req.Msg.AssociateID, "error", err)
		return nil, toConnectError(err)
	}
	metrics.RecordPayout()

	slog.Info("Payout recorded", "payout_id", payout.ID, "associate_id", payout.AssociateID, "amount", payout.Amount.String())
	return connect.NewResponse(&RecordPayoutResponse{Payout: payout}), nil
}

// ListAssociateBalances reports earned, paid and outstanding amounts per associate.
func (s *SettlementService) ListAssociateBalances(ctx context.Context, req *connect.Request[ListAssociateBalancesRequest]) (*connect.Response[ListAssociateBalancesResponse], error) {
	settlements, err := s.store.ListSettlements(ctx, req.Msg.AssociateID)
	if err != nil {
		return nil, toConnectError(err)
	}
	payouts, err := s.store.ListPayouts(ctx, req.Msg.AssociateID)
	if err != nil {
		return nil, toConnectError(err)
	}

	forBalance := make([]calculator.SettlementForBalance, len(settlements))
	for i, settlement := range settlements {
		forBalance[i] = calculator.SettlementForBalance{
			AssociateID:  settlement.AssociateID,
			AssociateNet: settlement.AssociateNet,
		}
	}
	paid := make([]calculator.PayoutForBalance, len(payouts))
	for i, payout := range payouts {
		paid[i] = calculator.PayoutForBalance{
			AssociateID: payout.AssociateID,
			Amount:      payout.Amount,
		}
	}

	return connect.NewResponse(&ListAssociateBalancesResponse{
		Balances: calculator.CalculateAssociateBalances(forBalance, paid),
	}), nil
}
