package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/handler"
	"github.com/rmartins/grana-bff-go/internal/infra/cache"
	"github.com/rmartins/grana-bff-go/internal/infra/financeapi"
	"github.com/rmartins/grana-bff-go/internal/infra/observability"
	"github.com/rmartins/grana-bff-go/internal/infra/resilience"
	"github.com/rmartins/grana-bff-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// newFinanceAPIMock serves the finance API surface the BFF talks to:
// one user with credentials, two bank accounts and a small ledger.
func newFinanceAPIMock(t *testing.T, records []domain.LedgerRecord) *httptest.Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-secreta"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/users/by-email", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") != "renata@example.com" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(domain.User{ID: "user-1", Name: "Renata", Email: "renata@example.com", IsActive: true})
	})
	mux.HandleFunc("GET /api/v1/users/user-1/credentials", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.AuthCredential{ID: "cred-1", UserID: "user-1", PasswordHash: string(hash)})
	})
	mux.HandleFunc("PATCH /api/v1/users/user-1/credentials", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/v1/auth/refresh-tokens", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/v1/users/user-1/accounts", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.BankAccount{
			{ID: "acc-a", UserID: "user-1", Name: "Conta Corrente", AccountType: "checking", OpeningBalanceCents: 100000, IsActive: true},
			{ID: "acc-b", UserID: "user-1", Name: "Poupança", AccountType: "savings", OpeningBalanceCents: 0, IsActive: true},
		})
	})
	mux.HandleFunc("GET /api/v1/users/user-1/ledger", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(records)
	})

	return httptest.NewServer(mux)
}

func newTestServices(apiURL string) handler.Services {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("integration-test")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	client := financeapi.NewClient(httpClient, apiURL, "test-api-token", cb, cfg, metrics, logger)
	dashboard := service.NewDashboardService(client, cache.New[any](time.Minute), metrics, logger)

	return handler.Services{
		Dashboard: dashboard,
		Accounts:  service.NewAccountService(client, dashboard, logger),
		Ledger:    service.NewLedgerService(client, dashboard, logger),
		Taxonomy:  service.NewTaxonomyService(client, logger),
		Recurring: service.NewRecurringService(client, logger),
		Imports:   service.NewImportService(client, dashboard, logger),
		Admin:     service.NewAdminService(client, logger),
		Auth:      service.NewAuthService(client, "integration-test-secret", 15*time.Minute, 24*time.Hour, logger),
	}
}

// TestIntegration_LoginAndBalances walks the full flow: login against the
// mocked finance API, then fetch dashboard balances with the issued token.
func TestIntegration_LoginAndBalances(t *testing.T) {
	now := time.Now()
	apiServer := newFinanceAPIMock(t, []domain.LedgerRecord{
		{ID: "rec-1", Source: domain.SourceBankLedger, Kind: "CREDIT", Status: "CONFIRMED", AmountCents: 50000, AccountID: "acc-a", OccurredAt: now},
		{ID: "rec-2", Source: domain.SourceBankLedger, Kind: "TRANSFER", Status: "CONFIRMED", AmountCents: 30000, TransferFromAccountID: "acc-a", TransferToAccountID: "acc-b", OccurredAt: now},
	})
	defer apiServer.Close()

	metrics := observability.NewMetrics()
	router := handler.NewRouter(newTestServices(apiServer.URL), metrics, []string{"*"}, zap.NewNop())

	// --- Login ---
	body, _ := json.Marshal(domain.LoginRequest{Email: "renata@example.com", Password: "senha-secreta"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	var login domain.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("login: failed to decode response: %v", err)
	}
	if login.AccessToken == "" || login.RefreshToken == "" {
		t.Fatal("login: expected both tokens to be present")
	}
	if login.UserID != "user-1" {
		t.Errorf("login: expected userId 'user-1', got '%s'", login.UserID)
	}

	// --- Balances with the issued token ---
	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard/balances", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec = httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("balances: expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	var balances domain.DashboardBalances
	if err := json.NewDecoder(rec.Body).Decode(&balances); err != nil {
		t.Fatalf("balances: failed to decode response: %v", err)
	}

	if balances.TotalCents != 150000 {
		t.Errorf("expected total 150000, got %d", balances.TotalCents)
	}
	got := map[string]int64{}
	for _, b := range balances.Balances {
		got[b.AccountID] = b.RealBalanceCents
	}
	if got["acc-a"] != 120000 {
		t.Errorf("acc-a: expected 120000, got %d", got["acc-a"])
	}
	if got["acc-b"] != 30000 {
		t.Errorf("acc-b: expected 30000, got %d", got["acc-b"])
	}
}

// TestIntegration_MalformedLedgerRejected proves that a record with an
// unknown source family poisons the whole response instead of being
// silently dropped.
func TestIntegration_MalformedLedgerRejected(t *testing.T) {
	apiServer := newFinanceAPIMock(t, []domain.LedgerRecord{
		{ID: "rec-ok", Source: domain.SourceBankLedger, Kind: "CREDIT", Status: "CONFIRMED", AmountCents: 1000, AccountID: "acc-a", OccurredAt: time.Now()},
		{ID: "rec-bad", Source: "MYSTERY_LEDGER", Kind: "CREDIT", Status: "CONFIRMED", AmountCents: 1000, AccountID: "acc-a", OccurredAt: time.Now()},
	})
	defer apiServer.Close()

	metrics := observability.NewMetrics()
	router := handler.NewRouter(newTestServices(apiServer.URL), metrics, []string{"*"}, zap.NewNop())

	body, _ := json.Marshal(domain.LoginRequest{Email: "renata@example.com", Password: "senha-secreta"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	var login domain.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("login: failed to decode response: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard/balances", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec = httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed ledger data, got %d", rec.Code)
	}
}

// TestIntegration_WrongPassword checks the login error path.
func TestIntegration_WrongPassword(t *testing.T) {
	apiServer := newFinanceAPIMock(t, nil)
	defer apiServer.Close()

	metrics := observability.NewMetrics()
	router := handler.NewRouter(newTestServices(apiServer.URL), metrics, []string{"*"}, zap.NewNop())

	body, _ := json.Marshal(domain.LoginRequest{Email: "renata@example.com", Password: "senha-errada"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
