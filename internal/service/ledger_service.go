package service

import (
	"context"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var ledgerTracer = otel.Tracer("service/ledger")

// LedgerService handles CRUD over ledger records, including transfers.
type LedgerService struct {
	store     port.FinanceStore
	dashboard *DashboardService
	logger    *zap.Logger
}

// NewLedgerService creates the ledger service. The dashboard service is
// needed to invalidate its cached snapshot after mutations.
func NewLedgerService(store port.FinanceStore, dashboard *DashboardService, logger *zap.Logger) *LedgerService {
	return &LedgerService{store: store, dashboard: dashboard, logger: logger}
}

// validKinds and validStatuses mirror the values the finance API accepts.
var (
	validKinds    = map[string]bool{"CREDIT": true, "DEBIT": true, "TRANSFER": true}
	validStatuses = map[string]bool{"PENDING": true, "CONFIRMED": true, "CANCELLED": true}
)

// validateRecordRequest rejects a malformed payload before it ever
// reaches the finance API. The same structural rules the aggregation
// core enforces apply at write time, so stored data stays aggregatable.
func validateRecordRequest(req *domain.LedgerRecordRequest) error {
	if !validKinds[req.Kind] {
		return &domain.ErrValidation{Field: "kind", Message: "must be CREDIT, DEBIT or TRANSFER"}
	}
	if !validStatuses[req.Status] {
		return &domain.ErrValidation{Field: "status", Message: "must be PENDING, CONFIRMED or CANCELLED"}
	}
	if req.AmountCents < 0 {
		return &domain.ErrValidation{Field: "amount_cents", Message: "must be non-negative"}
	}
	if _, err := time.Parse("2006-01-02", req.OccurredAt); err != nil {
		return &domain.ErrValidation{Field: "occurred_at", Message: "must be a YYYY-MM-DD date"}
	}

	switch req.Kind {
	case "TRANSFER":
		if req.AccountID != "" {
			return &domain.ErrValidation{Field: "account_id", Message: "must be empty for TRANSFER records"}
		}
		if req.TransferFromAccountID == "" || req.TransferToAccountID == "" {
			return &domain.ErrValidation{Field: "transfer_from_account_id", Message: "TRANSFER requires both source and destination accounts"}
		}
		if req.TransferFromAccountID == req.TransferToAccountID {
			return &domain.ErrValidation{Field: "transfer_to_account_id", Message: "source and destination must differ"}
		}
	default:
		if req.AccountID == "" {
			return &domain.ErrValidation{Field: "account_id", Message: "required for CREDIT and DEBIT records"}
		}
		if req.TransferFromAccountID != "" || req.TransferToAccountID != "" {
			return &domain.ErrValidation{Field: "transfer_from_account_id", Message: "transfer fields only apply to TRANSFER records"}
		}
	}
	return nil
}

// List returns ledger records matching the filter.
func (s *LedgerService) List(ctx context.Context, userID string, filter domain.LedgerFilter) ([]domain.LedgerRecord, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.List")
	defer span.End()

	return s.store.ListLedgerRecords(ctx, userID, filter)
}

// Get returns a single ledger record.
func (s *LedgerService) Get(ctx context.Context, userID, recordID string) (*domain.LedgerRecord, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.Get")
	defer span.End()

	return s.store.GetLedgerRecord(ctx, userID, recordID)
}

// Create validates and stores a new ledger record.
func (s *LedgerService) Create(ctx context.Context, userID string, req *domain.LedgerRecordRequest) (*domain.LedgerRecord, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.Create")
	defer span.End()

	if err := validateRecordRequest(req); err != nil {
		return nil, err
	}

	rec, err := s.store.CreateLedgerRecord(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.dashboard.InvalidateLedgerState(userID)
	s.logger.Info("ledger record created",
		zap.String("user_id", userID),
		zap.String("record_id", rec.ID),
		zap.String("kind", rec.Kind),
	)
	return rec, nil
}

// Update validates and replaces an existing ledger record.
func (s *LedgerService) Update(ctx context.Context, userID, recordID string, req *domain.LedgerRecordRequest) (*domain.LedgerRecord, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.Update")
	defer span.End()

	if err := validateRecordRequest(req); err != nil {
		return nil, err
	}

	rec, err := s.store.UpdateLedgerRecord(ctx, userID, recordID, req)
	if err != nil {
		return nil, err
	}

	s.dashboard.InvalidateLedgerState(userID)
	return rec, nil
}

// Delete removes a ledger record.
func (s *LedgerService) Delete(ctx context.Context, userID, recordID string) error {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.Delete")
	defer span.End()

	if err := s.store.DeleteLedgerRecord(ctx, userID, recordID); err != nil {
		return err
	}

	s.dashboard.InvalidateLedgerState(userID)
	return nil
}
