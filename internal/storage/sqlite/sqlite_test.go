package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/models"
	"github.com/OntriDS/thegame-sub002/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "settlements-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAssociates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateAssociate generates ID", func(t *testing.T) {
		associate := &models.Associate{Name: "Ana", Note: "jewelry"}
		if err := store.CreateAssociate(ctx, associate); err != nil {
			t.Fatalf("CreateAssociate failed: %v", err)
		}
		if associate.ID == "" {
			t.Error("Expected associate ID to be generated")
		}
		if associate.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetAssociate(ctx, associate.ID)
		if err != nil {
			t.Fatalf("GetAssociate failed: %v", err)
		}
		if got.Name != "Ana" || got.Note != "jewelry" {
			t.Errorf("Associate mismatch: got %+v", got)
		}
	})

	t.Run("GetAssociate returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetAssociate(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListAssociates orders by name", func(t *testing.T) {
		if err := store.CreateAssociate(ctx, &models.Associate{Name: "Bea"}); err != nil {
			t.Fatalf("CreateAssociate failed: %v", err)
		}
		if err := store.CreateAssociate(ctx, &models.Associate{Name: "Aaron"}); err != nil {
			t.Fatalf("CreateAssociate failed: %v", err)
		}

		associates, err := store.ListAssociates(ctx)
		if err != nil {
			t.Fatalf("ListAssociates failed: %v", err)
		}
		var names []string
		for _, a := range associates {
			names = append(names, a.Name)
		}
		if strings.Join(names, ",") != "Aaron,Ana,Bea" {
			t.Errorf("Unexpected order: %v", names)
		}
	})
}

func TestContracts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("clause contract round-trips in order", func(t *testing.T) {
		contract := &models.Contract{
			AssociateID: "ana",
			Clauses: []models.Clause{
				{Type: models.ClauseSalesService, ItemCategory: "Jewelry", CompanyShare: d("0.25"), AssociateShare: d("0.75")},
				{Type: models.ClauseSalesCommission, CompanyShare: d("0.3"), AssociateShare: d("0.7")},
				{Type: models.ClauseExpenseSharing, CompanyShare: d("0.5"), AssociateShare: d("0.5")},
			},
		}
		if err := store.CreateContract(ctx, contract); err != nil {
			t.Fatalf("CreateContract failed: %v", err)
		}
		if contract.ID == "" || contract.Name == "" {
			t.Errorf("Expected ID and name to be generated, got %q / %q", contract.ID, contract.Name)
		}

		got, err := store.GetContract(ctx, contract.ID)
		if err != nil {
			t.Fatalf("GetContract failed: %v", err)
		}
		if got.Schema != models.SchemaClauses {
			t.Errorf("Schema = %s, want %s", got.Schema, models.SchemaClauses)
		}
		if len(got.Clauses) != 3 {
			t.Fatalf("Clause count = %d, want 3", len(got.Clauses))
		}
		for i, clause := range got.Clauses {
			want := contract.Clauses[i]
			if clause.Type != want.Type || clause.ItemCategory != want.ItemCategory || clause.ID != want.ID {
				t.Errorf("Clause %d mismatch: got %+v, want %+v", i, clause, want)
			}
			if !clause.CompanyShare.Equal(want.CompanyShare) || !clause.AssociateShare.Equal(want.AssociateShare) {
				t.Errorf("Clause %d shares mismatch: got %s/%s", i, clause.CompanyShare, clause.AssociateShare)
			}
		}
	})

	t.Run("legacy terms round-trip", func(t *testing.T) {
		contract := &models.Contract{
			AssociateID: "bea",
			Name:        "Old arrangement",
			Terms: &models.LegacyTerms{
				PrincipalProducts: &models.ShareTerms{PrincipalShare: d("0.6"), AssociateShare: d("0.4")},
			},
		}
		if err := store.CreateContract(ctx, contract); err != nil {
			t.Fatalf("CreateContract failed: %v", err)
		}

		got, err := store.GetContract(ctx, contract.ID)
		if err != nil {
			t.Fatalf("GetContract failed: %v", err)
		}
		if got.Schema != models.SchemaLegacyTerms {
			t.Errorf("Schema = %s, want %s", got.Schema, models.SchemaLegacyTerms)
		}
		if got.Terms == nil || got.Terms.PrincipalProducts == nil {
			t.Fatal("Expected principal terms to be loaded")
		}
		if !got.Terms.PrincipalProducts.PrincipalShare.Equal(d("0.6")) {
			t.Errorf("PrincipalShare = %s, want 0.6", got.Terms.PrincipalProducts.PrincipalShare)
		}
		if got.Terms.AssociateProducts != nil {
			t.Error("Expected associate terms to stay nil")
		}
	})

	t.Run("ListContracts filters by associate", func(t *testing.T) {
		contracts, err := store.ListContracts(ctx, "bea")
		if err != nil {
			t.Fatalf("ListContracts failed: %v", err)
		}
		if len(contracts) != 1 || contracts[0].Name != "Old arrangement" {
			t.Errorf("Unexpected contracts: %+v", contracts)
		}

		all, err := store.ListContracts(ctx, "")
		if err != nil {
			t.Fatalf("ListContracts failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("Expected 2 contracts, got %d", len(all))
		}
	})

	t.Run("GetContract returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetContract(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	associate := &models.Associate{Name: "Ana"}
	if err := store.CreateAssociate(ctx, associate); err != nil {
		t.Fatalf("CreateAssociate failed: %v", err)
	}

	t.Run("CreateSettlement generates ID and title", func(t *testing.T) {
		settlement := &models.Settlement{
			AssociateID:   associate.ID,
			SharedExpense: d("40"),
			ExchangeRate:  d("4"),
			GrossSales:    d("430"),
			PrincipalNet:  d("174"),
			AssociateNet:  d("246"),
			CreatedBy:     "operator-1",
			Lines: []models.SaleLine{
				{Kind: models.LineKindItem, ItemType: "Sticker", Quantity: 2, UnitPrice: d("50")},
				{Kind: models.LineKindService, ItemType: "Jewelry", Quantity: 1, UnitPrice: d("1000.5"),
					Currency: models.CurrencySecondary, AssociateID: associate.ID},
			},
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
		if settlement.ID == "" {
			t.Error("Expected settlement ID to be generated")
		}
		if !strings.HasPrefix(settlement.Title, "Settlement with Ana - ") {
			t.Errorf("Unexpected title: %s", settlement.Title)
		}

		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if !got.PrincipalNet.Equal(d("174")) || !got.AssociateNet.Equal(d("246")) {
			t.Errorf("Nets mismatch: got %s/%s", got.PrincipalNet, got.AssociateNet)
		}
		if !got.ExchangeRate.Equal(d("4")) {
			t.Errorf("ExchangeRate = %s, want 4", got.ExchangeRate)
		}
		if len(got.Lines) != 2 {
			t.Fatalf("Line count = %d, want 2", len(got.Lines))
		}
		if got.Lines[0].Currency != models.CurrencyNative {
			t.Errorf("Expected first line to be stored as native, got %q", got.Lines[0].Currency)
		}
		if !got.Lines[1].UnitPrice.Equal(d("1000.5")) || got.Lines[1].Currency != models.CurrencySecondary {
			t.Errorf("Second line mismatch: %+v", got.Lines[1])
		}
	})

	t.Run("title falls back without associate name", func(t *testing.T) {
		settlement := &models.Settlement{AssociateID: "unknown", CreatedBy: "operator-1"}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
		if !strings.HasPrefix(settlement.Title, "Settlement - ") {
			t.Errorf("Unexpected title: %s", settlement.Title)
		}
	})

	t.Run("ListSettlements filters by associate", func(t *testing.T) {
		settlements, err := store.ListSettlements(ctx, associate.ID)
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(settlements) != 1 {
			t.Errorf("Expected 1 settlement, got %d", len(settlements))
		}

		all, err := store.ListSettlements(ctx, "")
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("Expected 2 settlements, got %d", len(all))
		}
	})

	t.Run("DeleteSettlement removes settlement and lines", func(t *testing.T) {
		settlements, err := store.ListSettlements(ctx, associate.ID)
		if err != nil || len(settlements) == 0 {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		id := settlements[0].ID

		if err := store.DeleteSettlement(ctx, id); err != nil {
			t.Fatalf("DeleteSettlement failed: %v", err)
		}
		if _, err := store.GetSettlement(ctx, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}

		var lines int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM sale_lines WHERE settlement_id = ?", id).Scan(&lines); err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if lines != 0 {
			t.Errorf("Expected lines to be deleted, found %d", lines)
		}

		if err := store.DeleteSettlement(ctx, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestCreateSettlementWithContract(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	associate := &models.Associate{Name: "Ana"}
	if err := store.CreateAssociate(ctx, associate); err != nil {
		t.Fatalf("CreateAssociate failed: %v", err)
	}

	newContract := func() *models.Contract {
		return &models.Contract{
			AssociateID: associate.ID,
			Clauses: []models.Clause{
				{Type: models.ClauseSalesService, CompanyShare: d("0.25"), AssociateShare: d("0.75")},
			},
		}
	}
	newSettlement := func() *models.Settlement {
		return &models.Settlement{
			AssociateID:   associate.ID,
			Lines:         []models.SaleLine{{Kind: models.LineKindItem, ItemType: "Sticker", Quantity: 2, UnitPrice: d("50")}},
			SharedExpense: d("0"),
			ExchangeRate:  d("500"),
			GrossSales:    d("100"),
			PrincipalNet:  d("100"),
			AssociateNet:  d("0"),
			CreatedBy:     "operator-1",
		}
	}
	countContracts := func() int {
		t.Helper()
		var n int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM contracts").Scan(&n); err != nil {
			t.Fatalf("count contracts failed: %v", err)
		}
		return n
	}

	t.Run("stores both records", func(t *testing.T) {
		contract := newContract()
		settlement := newSettlement()
		if err := store.CreateSettlementWithContract(ctx, settlement, contract); err != nil {
			t.Fatalf("CreateSettlementWithContract failed: %v", err)
		}
		if contract.ID == "" || settlement.ContractID != contract.ID {
			t.Fatalf("expected settlement to reference new contract, got contract %q settlement %q", contract.ID, settlement.ContractID)
		}

		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if got.ContractID != contract.ID || len(got.Lines) != 1 {
			t.Errorf("unexpected settlement: %+v", got)
		}
		if _, err := store.GetContract(ctx, contract.ID); err != nil {
			t.Errorf("GetContract failed: %v", err)
		}
	})

	t.Run("failed settlement leaves no contract behind", func(t *testing.T) {
		existing := newSettlement()
		if err := store.CreateSettlement(ctx, existing); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
		before := countContracts()

		duplicate := newSettlement()
		duplicate.ID = existing.ID
		contract := newContract()
		if err := store.CreateSettlementWithContract(ctx, duplicate, contract); err == nil {
			t.Fatal("expected error for duplicate settlement ID")
		}

		if after := countContracts(); after != before {
			t.Errorf("contracts = %d after failed save, want %d", after, before)
		}
		if _, err := store.GetContract(ctx, contract.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected rolled back contract to be missing, got %v", err)
		}
	})
}

func TestPayouts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, p := range []*models.Payout{
		{AssociateID: "ana", Amount: d("100.25"), CreatedBy: "op", Note: "cash"},
		{AssociateID: "bea", Amount: d("10"), CreatedBy: "op"},
	} {
		if err := store.CreatePayout(ctx, p); err != nil {
			t.Fatalf("CreatePayout failed: %v", err)
		}
		if p.ID == "" {
			t.Error("Expected payout ID to be generated")
		}
	}

	payouts, err := store.ListPayouts(ctx, "ana")
	if err != nil {
		t.Fatalf("ListPayouts failed: %v", err)
	}
	if len(payouts) != 1 {
		t.Fatalf("Expected 1 payout, got %d", len(payouts))
	}
	if !payouts[0].Amount.Equal(d("100.25")) || payouts[0].Note != "cash" {
		t.Errorf("Payout mismatch: %+v", payouts[0])
	}

	all, err := store.ListPayouts(ctx, "")
	if err != nil {
		t.Fatalf("ListPayouts failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 payouts, got %d", len(all))
	}
}

func TestOperators(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	operator := models.NewOperator("Ops@Example.com", "Ops", "hash")
	if err := store.CreateOperator(ctx, operator); err != nil {
		t.Fatalf("CreateOperator failed: %v", err)
	}

	t.Run("GetOperatorByEmail ignores case", func(t *testing.T) {
		got, err := store.GetOperatorByEmail(ctx, "ops@example.com")
		if err != nil {
			t.Fatalf("GetOperatorByEmail failed: %v", err)
		}
		if got == nil || got.ID != operator.ID {
			t.Errorf("Expected operator %s, got %+v", operator.ID, got)
		}
	})

	t.Run("GetOperatorByID returns nil when missing", func(t *testing.T) {
		got, err := store.GetOperatorByID(ctx, "missing")
		if err != nil {
			t.Fatalf("GetOperatorByID failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil operator, got %+v", got)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := models.NewOperator("ops@example.com", "Other", "hash")
		if err := store.CreateOperator(ctx, dup); err == nil {
			t.Error("Expected error for duplicate email")
		}
	})
}

func TestPreferences(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	prefs, err := store.GetPreferences(ctx, "op")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if prefs.OperatorID != "op" || prefs.LastAssociateID != "" {
		t.Errorf("Expected empty preferences, got %+v", prefs)
	}

	if err := store.SavePreferences(ctx, &models.Preferences{OperatorID: "op", LastAssociateID: "ana"}); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}
	if err := store.SavePreferences(ctx, &models.Preferences{OperatorID: "op", LastAssociateID: "bea", LastContractID: "c1"}); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	prefs, err = store.GetPreferences(ctx, "op")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if prefs.LastAssociateID != "bea" || prefs.LastContractID != "c1" {
		t.Errorf("Expected upserted preferences, got %+v", prefs)
	}
}
