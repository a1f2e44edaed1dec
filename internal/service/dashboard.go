// Package service provides the business logic layer (use cases).
// DashboardService hosts the ledger aggregation core; the remaining
// services orchestrate CRUD against the finance API.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/infra/observability"
	"github.com/rmartins/grana-bff-go/internal/ledger"
	"github.com/rmartins/grana-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var dashTracer = otel.Tracer("service/dashboard")

// ledgerState is one fetched snapshot of a user's accounts and ledger.
// Aggregations are recomputed from it on every request; derived results
// are never cached or patched, only the raw fetch is.
type ledgerState struct {
	accounts []domain.BankAccount
	records  []domain.LedgerRecord
}

// DashboardService derives balances, period summaries, trends and
// commitment buckets from the user's ledger.
type DashboardService struct {
	store   port.FinanceStore
	cache   port.Cache[any]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDashboardService creates the dashboard service with all dependencies injected.
func NewDashboardService(store port.FinanceStore, cache port.Cache[any], metrics *observability.Metrics, logger *zap.Logger) *DashboardService {
	return &DashboardService{store: store, cache: cache, metrics: metrics, logger: logger}
}

// fetchLedgerState loads accounts and ledger records concurrently, with a
// short-TTL cache in front of the finance API.
func (s *DashboardService) fetchLedgerState(ctx context.Context, userID string) (*ledgerState, error) {
	cacheKey := fmt.Sprintf("ledger-state:%s", userID)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if state, ok := cached.(*ledgerState); ok {
			s.metrics.IncrCacheHit("ledger-state")
			return state, nil
		}
	}
	s.metrics.IncrCacheMiss("ledger-state")

	state := &ledgerState{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accounts, err := s.store.ListAccounts(gCtx, userID)
		if err != nil {
			s.logger.Error("failed to fetch accounts",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return fmt.Errorf("accounts fetch: %w", err)
		}
		state.accounts = accounts
		return nil
	})

	g.Go(func() error {
		records, err := s.store.ListLedgerRecords(gCtx, userID, domain.LedgerFilter{})
		if err != nil {
			s.logger.Error("failed to fetch ledger records",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return fmt.Errorf("ledger fetch: %w", err)
		}
		state.records = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, state)
	return state, nil
}

// InvalidateLedgerState drops the cached snapshot after any ledger or
// account mutation, so the next aggregation sees fresh data.
func (s *DashboardService) InvalidateLedgerState(userID string) {
	s.cache.Delete(fmt.Sprintf("ledger-state:%s", userID))
}

// GetBalances computes the real balance of every active account.
func (s *DashboardService) GetBalances(ctx context.Context, userID string, referenceDate time.Time) (*domain.DashboardBalances, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.GetBalances")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	state, err := s.fetchLedgerState(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := make([]domain.BankAccount, 0, len(state.accounts))
	inactive := 0
	for _, a := range state.accounts {
		if a.IsActive {
			active = append(active, a)
		} else {
			inactive++
		}
	}

	entries := toLedgerEntries(state.records)

	start := time.Now()
	balances, err := ledger.ComputeRealBalances(toLedgerAccounts(active), entries)
	s.metrics.RecordAggregation("real_balances", len(entries), time.Since(start))
	if err != nil {
		return nil, err
	}

	var total int64
	for _, b := range balances {
		total += b.RealBalanceCents
	}

	return &domain.DashboardBalances{
		Balances:       balances,
		TotalCents:     total,
		ActiveAccounts: len(active),
		InactiveHidden: inactive,
		ReferenceDate:  referenceDate.Format("2006-01-02"),
	}, nil
}

// GetPeriodSummary aggregates totals for an inclusive date window,
// optionally scoped to a single account.
func (s *DashboardService) GetPeriodSummary(ctx context.Context, userID string, from, to time.Time, accountID string) (*domain.DashboardSummary, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.GetPeriodSummary")
	defer span.End()

	if to.Before(from) {
		return nil, &domain.ErrValidation{Field: "to", Message: "window end precedes window start"}
	}

	state, err := s.fetchLedgerState(ctx, userID)
	if err != nil {
		return nil, err
	}

	var acctFilter *string
	if accountID != "" {
		if !accountExists(state.accounts, accountID) {
			return nil, &domain.ErrNotFound{Resource: "account", ID: accountID}
		}
		acctFilter = &accountID
	}

	entries := toLedgerEntries(state.records)

	start := time.Now()
	summary, err := ledger.ComputePeriodSummary(entries, from, to, acctFilter)
	s.metrics.RecordAggregation("period_summary", len(entries), time.Since(start))
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		Period: domain.SummaryPeriod{
			From: from.Format("2006-01-02"),
			To:   to.Format("2006-01-02"),
		},
		AccountID: accountID,
		Summary:   summary,
	}, nil
}

// GetMonthlyTrend returns the trailing credit/debit series ending at the
// month containing referenceDate.
func (s *DashboardService) GetMonthlyTrend(ctx context.Context, userID string, monthsBack int, referenceDate time.Time) (*domain.DashboardTrend, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.GetMonthlyTrend")
	defer span.End()

	if monthsBack < 1 || monthsBack > 36 {
		return nil, &domain.ErrValidation{Field: "months_back", Message: "must be between 1 and 36"}
	}

	state, err := s.fetchLedgerState(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := toLedgerEntries(state.records)

	start := time.Now()
	points, err := ledger.ComputeMonthlyTrend(entries, monthsBack, referenceDate)
	s.metrics.RecordAggregation("monthly_trend", len(entries), time.Since(start))
	if err != nil {
		return nil, err
	}

	return &domain.DashboardTrend{MonthsBack: monthsBack, Points: points}, nil
}

// GetComparison compares the current month's credits and debits against
// the previous month.
func (s *DashboardService) GetComparison(ctx context.Context, userID string, referenceDate time.Time) (*domain.DashboardComparison, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.GetComparison")
	defer span.End()

	state, err := s.fetchLedgerState(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := toLedgerEntries(state.records)

	start := time.Now()
	cmp, err := ledger.CompareToPreviousMonth(entries, referenceDate)
	s.metrics.RecordAggregation("month_comparison", len(entries), time.Since(start))
	if err != nil {
		return nil, err
	}

	return &domain.DashboardComparison{
		ReferenceDate: referenceDate.Format("2006-01-02"),
		Comparison:    cmp,
	}, nil
}

// GetCommitments splits pending records into due-today and overdue
// buckets for the commitments panel.
func (s *DashboardService) GetCommitments(ctx context.Context, userID string, today time.Time) (*domain.DashboardCommitments, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.GetCommitments")
	defer span.End()

	state, err := s.fetchLedgerState(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := toLedgerEntries(state.records)

	start := time.Now()
	buckets, err := ledger.BucketCommitments(entries, today)
	s.metrics.RecordAggregation("commitments", len(entries), time.Since(start))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.LedgerRecord, len(state.records))
	for _, r := range state.records {
		byID[r.ID] = r
	}

	return &domain.DashboardCommitments{
		Today:    today.Format("2006-01-02"),
		DueToday: recordsFor(buckets.DueToday, byID),
		Overdue:  recordsFor(buckets.Overdue, byID),
	}, nil
}

func recordsFor(entries []ledger.Entry, byID map[string]domain.LedgerRecord) []domain.LedgerRecord {
	out := make([]domain.LedgerRecord, 0, len(entries))
	for _, e := range entries {
		if rec, ok := byID[e.ID]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func accountExists(accounts []domain.BankAccount, accountID string) bool {
	for _, a := range accounts {
		if a.ID == accountID {
			return true
		}
	}
	return false
}
