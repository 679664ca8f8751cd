package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/auth"
	"github.com/OntriDS/thegame-sub002/internal/middleware"
	"github.com/OntriDS/thegame-sub002/internal/models"
	"github.com/OntriDS/thegame-sub002/internal/storage/sqlite"
)

const testOperatorID = "operator-1"

// testAuthInterceptor returns a Connect interceptor that sets a test operator in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return next(middleware.WithOperator(ctx, testOperatorID, "ops@example.com"), req)
		}
	}
}

type testClients struct {
	settlements *SettlementServiceClient
	contracts   *ContractServiceClient
	auth        *AuthServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database.
// The default exchange rate is 4.
func setupTestServer(t *testing.T, interceptors ...connect.Interceptor) *testClients {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "settle-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	if len(interceptors) == 0 {
		interceptors = []connect.Interceptor{testAuthInterceptor()}
	}
	opts := connect.WithInterceptors(interceptors...)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	mux := http.NewServeMux()
	mux.Handle(NewSettlementServiceHandler(NewSettlementService(store, decimal.NewFromInt(4)), opts))
	mux.Handle(NewContractServiceHandler(NewContractService(store), opts))
	mux.Handle(NewAuthServiceHandler(NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, logger), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return &testClients{
		settlements: NewSettlementServiceClient(http.DefaultClient, server.URL),
		contracts:   NewContractServiceClient(http.DefaultClient, server.URL),
		auth:        NewAuthServiceClient(http.DefaultClient, server.URL),
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}

func createAssociate(t *testing.T, clients *testClients, name string) *models.Associate {
	t.Helper()
	resp, err := clients.contracts.CreateAssociate(context.Background(), connect.NewRequest(&CreateAssociateRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreateAssociate failed: %v", err)
	}
	return resp.Msg.Associate
}

func jewelryContract(associateID string) *models.Contract {
	return &models.Contract{
		AssociateID: associateID,
		Clauses: []models.Clause{
			{Type: models.ClauseSalesService, ItemCategory: "Jewelry", CompanyShare: d("0.25"), AssociateShare: d("0.75")},
		},
	}
}

// boothRequest is a small booth day: 2 stickers at 50 native and one jewelry sale of 1000 secondary.
func boothRequest() CalculateSettlementRequest {
	return CalculateSettlementRequest{
		PrincipalLines: []models.SaleLine{
			{Kind: models.LineKindItem, ItemType: "Sticker", Quantity: 2, UnitPrice: d("50")},
		},
		AssociateEntries: []models.AssociateEntry{
			{Category: "Jewelry", Amount: d("1000")},
		},
		ExchangeRate: d("500"),
	}
}
