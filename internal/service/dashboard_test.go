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

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newDashboard(store *mockStore) *service.DashboardService {
	return service.NewDashboardService(store, cache.New[any](time.Minute), observability.NewMetrics(), zap.NewNop())
}

func TestGetBalances_ActiveAccountsOnly(t *testing.T) {
	store := &mockStore{
		accounts: []domain.BankAccount{
			{ID: "acc-a", OpeningBalanceCents: 100_000, IsActive: true},
			{ID: "acc-b", OpeningBalanceCents: 0, IsActive: true},
			{ID: "acc-c", OpeningBalanceCents: 999_999, IsActive: false},
		},
		records: []domain.LedgerRecord{
			{ID: "r1", Source: domain.SourceBankLedger, Kind: "CREDIT", Status: "CONFIRMED", AmountCents: 50_000, OccurredAt: day(2026, 3, 10), AccountID: "acc-a"},
			{ID: "r2", Source: domain.SourceBankLedger, Kind: "TRANSFER", Status: "CONFIRMED", AmountCents: 30_000, OccurredAt: day(2026, 3, 11), TransferFromAccountID: "acc-a", TransferToAccountID: "acc-b"},
		},
	}

	svc := newDashboard(store)
	out, err := svc.GetBalances(context.Background(), "user-1", day(2026, 3, 15))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(out.Balances) != 2 {
		t.Fatalf("expected 2 balances (inactive hidden), got %d", len(out.Balances))
	}
	if out.Balances[0].RealBalanceCents != 120_000 {
		t.Errorf("account A: expected 120000, got %d", out.Balances[0].RealBalanceCents)
	}
	if out.Balances[1].RealBalanceCents != 30_000 {
		t.Errorf("account B: expected 30000, got %d", out.Balances[1].RealBalanceCents)
	}
	if out.TotalCents != 150_000 {
		t.Errorf("total: expected 150000, got %d", out.TotalCents)
	}
	if out.ActiveAccounts != 2 || out.InactiveHidden != 1 {
		t.Errorf("expected 2 active / 1 hidden, got %d / %d", out.ActiveAccounts, out.InactiveHidden)
	}
}

func TestGetBalances_FetchesConcurrentlyAndCaches(t *testing.T) {
	store := &mockStore{
		accounts: []domain.BankAccount{{ID: "acc-a", IsActive: true}},
	}

	svc := newDashboard(store)
	if _, err := svc.GetBalances(context.Background(), "user-1", day(2026, 3, 15)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.GetBalances(context.Background(), "user-1", day(2026, 3, 15)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.listAccountsCalls != 1 || store.listRecordsCalls != 1 {
		t.Errorf("second call should hit the cache, got %d account fetches and %d record fetches",
			store.listAccountsCalls, store.listRecordsCalls)
	}
}

func TestGetBalances_StoreError(t *testing.T) {
	store := &mockStore{listRecordsErr: errors.New("connection refused")}

	svc := newDashboard(store)
	if _, err := svc.GetBalances(context.Background(), "user-1", day(2026, 3, 15)); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGetPeriodSummary_UnknownAccount(t *testing.T) {
	store := &mockStore{
		accounts: []domain.BankAccount{{ID: "acc-a", IsActive: true}},
	}

	svc := newDashboard(store)
	_, err := svc.GetPeriodSummary(context.Background(), "user-1", day(2026, 3, 1), day(2026, 3, 31), "acc-missing")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPeriodSummary_InvertedWindow(t *testing.T) {
	svc := newDashboard(&mockStore{})
	_, err := svc.GetPeriodSummary(context.Background(), "user-1", day(2026, 3, 31), day(2026, 3, 1), "")
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetPeriodSummary_AllAccounts(t *testing.T) {
	store := &mockStore{
		accounts: []domain.BankAccount{{ID: "acc-a", IsActive: true}, {ID: "acc-b", IsActive: true}},
		records: []domain.LedgerRecord{
			{ID: "r1", Source: domain.SourceBankLedger, Kind: "CREDIT", Status: "CONFIRMED", AmountCents: 10_000, OccurredAt: day(2026, 3, 5), AccountID: "acc-a"},
			{ID: "r2", Source: domain.SourceAccountsReceivableLedger, Kind: "DEBIT", Status: "PENDING", AmountCents: 4_000, OccurredAt: day(2026, 3, 6), AccountID: "acc-b"},
			{ID: "r3", Source: domain.SourceBankLedger, Kind: "TRANSFER", Status: "CONFIRMED", AmountCents: 99_000, OccurredAt: day(2026, 3, 7), TransferFromAccountID: "acc-a", TransferToAccountID: "acc-b"},
		},
	}

	svc := newDashboard(store)
	out, err := svc.GetPeriodSummary(context.Background(), "user-1", day(2026, 3, 1), day(2026, 3, 31), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Summary.TotalCreditCents != 10_000 || out.Summary.TotalDebitCents != 4_000 {
		t.Errorf("transfers must not leak into the all-accounts view: %+v", out.Summary)
	}
	if out.Summary.TotalConfirmedCents != 10_000 || out.Summary.TotalPendingCents != 4_000 {
		t.Errorf("status subtotals wrong: %+v", out.Summary)
	}
}

func TestGetMonthlyTrend_BoundsChecked(t *testing.T) {
	svc := newDashboard(&mockStore{})

	for _, monthsBack := range []int{0, -1, 37} {
		_, err := svc.GetMonthlyTrend(context.Background(), "user-1", monthsBack, day(2026, 3, 15))
		var validation *domain.ErrValidation
		if !errors.As(err, &validation) {
			t.Errorf("months_back=%d: expected ErrValidation, got %v", monthsBack, err)
		}
	}
}

func TestGetMonthlyTrend_ExactSeries(t *testing.T) {
	store := &mockStore{
		records: []domain.LedgerRecord{
			{ID: "r1", Source: domain.SourceBankLedger, Kind: "CREDIT", Status: "CONFIRMED", AmountCents: 1_000, OccurredAt: day(2026, 2, 10), AccountID: "acc-a"},
		},
	}

	svc := newDashboard(store)
	out, err := svc.GetMonthlyTrend(context.Background(), "user-1", 3, day(2026, 3, 15))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(out.Points))
	}
	if out.Points[1].TotalCreditCents != 1_000 {
		t.Errorf("february point: expected 1000, got %d", out.Points[1].TotalCreditCents)
	}
}

func TestGetCommitments_MapsBucketsToRecords(t *testing.T) {
	store := &mockStore{
		records: []domain.LedgerRecord{
			{ID: "due", Source: domain.SourceAccountsReceivableLedger, Kind: "DEBIT", Status: "PENDING", AmountCents: 100, OccurredAt: day(2026, 3, 15), AccountID: "acc-a", Description: "aluguel"},
			{ID: "late", Source: domain.SourceAccountsReceivableLedger, Kind: "DEBIT", Status: "PENDING", AmountCents: 200, OccurredAt: day(2026, 3, 1), AccountID: "acc-a", Description: "luz"},
			{ID: "done", Source: domain.SourceBankLedger, Kind: "DEBIT", Status: "CONFIRMED", AmountCents: 300, OccurredAt: day(2026, 3, 15), AccountID: "acc-a"},
		},
	}

	svc := newDashboard(store)
	out, err := svc.GetCommitments(context.Background(), "user-1", day(2026, 3, 15))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(out.DueToday) != 1 || out.DueToday[0].ID != "due" {
		t.Errorf("due today: expected [due], got %+v", out.DueToday)
	}
	if len(out.Overdue) != 1 || out.Overdue[0].ID != "late" {
		t.Errorf("overdue: expected [late], got %+v", out.Overdue)
	}
	// The full wire record survives the round trip through the aggregator.
	if out.DueToday[0].Description != "aluguel" {
		t.Errorf("expected description to survive, got '%s'", out.DueToday[0].Description)
	}
}

func TestInvalidateLedgerState(t *testing.T) {
	store := &mockStore{
		accounts: []domain.BankAccount{{ID: "acc-a", IsActive: true}},
	}

	svc := newDashboard(store)
	if _, err := svc.GetBalances(context.Background(), "user-1", day(2026, 3, 15)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	svc.InvalidateLedgerState("user-1")
	if _, err := svc.GetBalances(context.Background(), "user-1", day(2026, 3, 15)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.listAccountsCalls != 2 {
		t.Errorf("expected fresh fetch after invalidation, got %d calls", store.listAccountsCalls)
	}
}
