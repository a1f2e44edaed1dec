package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/infra/cache"
	"github.com/rmartins/grana-bff-go/internal/infra/observability"
	"github.com/rmartins/grana-bff-go/internal/service"

	"go.uber.org/zap"
)

func newLedgerService(store *mockStore) *service.LedgerService {
	dashboard := service.NewDashboardService(store, cache.New[any](time.Minute), observability.NewMetrics(), zap.NewNop())
	return service.NewLedgerService(store, dashboard, zap.NewNop())
}

func TestLedgerCreate_Valid(t *testing.T) {
	store := &mockStore{}
	svc := newLedgerService(store)

	rec, err := svc.Create(context.Background(), "user-1", &domain.LedgerRecordRequest{
		Kind: "CREDIT", Status: "CONFIRMED", AmountCents: 5_000,
		OccurredAt: "2026-03-10", AccountID: "acc-a",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.ID == "" {
		t.Error("expected created record to carry an id")
	}
}

func TestLedgerCreate_TransferValid(t *testing.T) {
	svc := newLedgerService(&mockStore{})

	rec, err := svc.Create(context.Background(), "user-1", &domain.LedgerRecordRequest{
		Kind: "TRANSFER", Status: "CONFIRMED", AmountCents: 30_000,
		OccurredAt: "2026-03-10", TransferFromAccountID: "acc-a", TransferToAccountID: "acc-b",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.TransferFromAccountID != "acc-a" || rec.TransferToAccountID != "acc-b" {
		t.Errorf("transfer legs lost: %+v", rec)
	}
}

func TestLedgerCreate_RejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		req  domain.LedgerRecordRequest
	}{
		{"unknown kind", domain.LedgerRecordRequest{Kind: "WIRE", Status: "PENDING", AmountCents: 1, OccurredAt: "2026-03-10", AccountID: "acc-a"}},
		{"unknown status", domain.LedgerRecordRequest{Kind: "CREDIT", Status: "MAYBE", AmountCents: 1, OccurredAt: "2026-03-10", AccountID: "acc-a"}},
		{"negative amount", domain.LedgerRecordRequest{Kind: "CREDIT", Status: "PENDING", AmountCents: -1, OccurredAt: "2026-03-10", AccountID: "acc-a"}},
		{"bad date", domain.LedgerRecordRequest{Kind: "CREDIT", Status: "PENDING", AmountCents: 1, OccurredAt: "10/03/2026", AccountID: "acc-a"}},
		{"credit without account", domain.LedgerRecordRequest{Kind: "CREDIT", Status: "PENDING", AmountCents: 1, OccurredAt: "2026-03-10"}},
		{"credit with transfer fields", domain.LedgerRecordRequest{Kind: "CREDIT", Status: "PENDING", AmountCents: 1, OccurredAt: "2026-03-10", AccountID: "acc-a", TransferToAccountID: "acc-b"}},
		{"transfer with account_id", domain.LedgerRecordRequest{Kind: "TRANSFER", Status: "PENDING", AmountCents: 1, OccurredAt: "2026-03-10", AccountID: "acc-a", TransferFromAccountID: "acc-a", TransferToAccountID: "acc-b"}},
		{"transfer missing leg", domain.LedgerRecordRequest{Kind: "TRANSFER", Status: "PENDING", AmountCents: 1, OccurredAt: "2026-03-10", TransferFromAccountID: "acc-a"}},
		{"self transfer", domain.LedgerRecordRequest{Kind: "TRANSFER", Status: "PENDING", AmountCents: 1, OccurredAt: "2026-03-10", TransferFromAccountID: "acc-a", TransferToAccountID: "acc-a"}},
	}

	svc := newLedgerService(&mockStore{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", &tc.req)
			var validation *domain.ErrValidation
			if !errors.As(err, &validation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestLedgerCreate_InvalidatesDashboardCache(t *testing.T) {
	store := &mockStore{
		accounts: []domain.BankAccount{{ID: "acc-a", IsActive: true}},
	}
	dashboard := service.NewDashboardService(store, cache.New[any](time.Minute), observability.NewMetrics(), zap.NewNop())
	svc := service.NewLedgerService(store, dashboard, zap.NewNop())

	// Warm the dashboard cache, mutate, then aggregate again.
	if _, err := dashboard.GetBalances(context.Background(), "user-1", day(2026, 3, 15)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-1", &domain.LedgerRecordRequest{
		Kind: "CREDIT", Status: "CONFIRMED", AmountCents: 100, OccurredAt: "2026-03-10", AccountID: "acc-a",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out, err := dashboard.GetBalances(context.Background(), "user-1", day(2026, 3, 15))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.listAccountsCalls != 2 {
		t.Errorf("expected refetch after mutation, got %d fetches", store.listAccountsCalls)
	}
	if out.Balances[0].RealBalanceCents != 100 {
		t.Errorf("new record must show up in balances, got %d", out.Balances[0].RealBalanceCents)
	}
}
