package service

import (
	"context"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/ledger"
	"github.com/rmartins/grana-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var accountTracer = otel.Tracer("service/accounts")

// AccountService manages bank accounts. The listing view enriches each
// account with its derived real balance.
type AccountService struct {
	store     port.FinanceStore
	dashboard *DashboardService
	logger    *zap.Logger
}

// NewAccountService creates the account service.
func NewAccountService(store port.FinanceStore, dashboard *DashboardService, logger *zap.Logger) *AccountService {
	return &AccountService{store: store, dashboard: dashboard, logger: logger}
}

var validAccountTypes = map[string]bool{"checking": true, "savings": true, "wallet": true}

func validateAccountRequest(req *domain.BankAccountRequest) error {
	if req.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if !validAccountTypes[req.AccountType] {
		return &domain.ErrValidation{Field: "account_type", Message: "must be checking, savings or wallet"}
	}
	return nil
}

// List returns every account with its real balance attached. Inactive
// accounts are included here; only the dashboard hides them.
func (s *AccountService) List(ctx context.Context, userID string) ([]domain.BankAccountWithBalance, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.List")
	defer span.End()

	state, err := s.dashboard.fetchLedgerState(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances, err := ledger.ComputeRealBalances(toLedgerAccounts(state.accounts), toLedgerEntries(state.records))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int64, len(balances))
	for _, b := range balances {
		byID[b.AccountID] = b.RealBalanceCents
	}

	out := make([]domain.BankAccountWithBalance, 0, len(state.accounts))
	for _, a := range state.accounts {
		out = append(out, domain.BankAccountWithBalance{
			BankAccount:      a,
			RealBalanceCents: byID[a.ID],
		})
	}
	return out, nil
}

// Get returns a single account.
func (s *AccountService) Get(ctx context.Context, userID, accountID string) (*domain.BankAccount, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.Get")
	defer span.End()

	return s.store.GetAccount(ctx, userID, accountID)
}

// Create validates and stores a new account.
func (s *AccountService) Create(ctx context.Context, userID string, req *domain.BankAccountRequest) (*domain.BankAccount, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.Create")
	defer span.End()

	if err := validateAccountRequest(req); err != nil {
		return nil, err
	}

	acc, err := s.store.CreateAccount(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.dashboard.InvalidateLedgerState(userID)
	s.logger.Info("account created",
		zap.String("user_id", userID),
		zap.String("account_id", acc.ID),
	)
	return acc, nil
}

// Update validates and replaces an account.
func (s *AccountService) Update(ctx context.Context, userID, accountID string, req *domain.BankAccountRequest) (*domain.BankAccount, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.Update")
	defer span.End()

	if err := validateAccountRequest(req); err != nil {
		return nil, err
	}

	acc, err := s.store.UpdateAccount(ctx, userID, accountID, req)
	if err != nil {
		return nil, err
	}

	s.dashboard.InvalidateLedgerState(userID)
	return acc, nil
}

// Delete removes an account.
func (s *AccountService) Delete(ctx context.Context, userID, accountID string) error {
	ctx, span := accountTracer.Start(ctx, "AccountService.Delete")
	defer span.End()

	if err := s.store.DeleteAccount(ctx, userID, accountID); err != nil {
		return err
	}

	s.dashboard.InvalidateLedgerState(userID)
	return nil
}
