package service

import (
	"context"
	"strings"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var importTracer = otel.Tracer("service/imports")

// maxOFXUploadBytes caps uploaded statement files.
const maxOFXUploadBytes = 5 << 20

// ImportService handles OFX statement imports. Parsing and AI
// categorization happen on the finance API; this service uploads files
// and shepherds the human review of suggested categories.
type ImportService struct {
	store     port.FinanceStore
	dashboard *DashboardService
	logger    *zap.Logger
}

// NewImportService creates the import service.
func NewImportService(store port.FinanceStore, dashboard *DashboardService, logger *zap.Logger) *ImportService {
	return &ImportService{store: store, dashboard: dashboard, logger: logger}
}

// Upload sends a raw OFX file for server-side parsing.
func (s *ImportService) Upload(ctx context.Context, userID, accountID, fileName string, data []byte) (*domain.OFXImport, error) {
	ctx, span := importTracer.Start(ctx, "ImportService.Upload")
	defer span.End()

	if accountID == "" {
		return nil, &domain.ErrValidation{Field: "account_id", Message: "required"}
	}
	if len(data) == 0 {
		return nil, &domain.ErrValidation{Field: "file", Message: "empty file"}
	}
	if len(data) > maxOFXUploadBytes {
		return nil, &domain.ErrValidation{Field: "file", Message: "file exceeds 5MB limit"}
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".ofx") {
		return nil, &domain.ErrValidation{Field: "file", Message: "only .ofx files are accepted"}
	}

	imp, err := s.store.UploadOFX(ctx, userID, accountID, fileName, data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ofx file uploaded",
		zap.String("user_id", userID),
		zap.String("import_id", imp.ID),
		zap.String("file_name", fileName),
		zap.Int("size_bytes", len(data)),
	)
	return imp, nil
}

// List returns all imports for a user, newest first as served by the API.
func (s *ImportService) List(ctx context.Context, userID string) ([]domain.OFXImport, error) {
	ctx, span := importTracer.Start(ctx, "ImportService.List")
	defer span.End()

	return s.store.ListOFXImports(ctx, userID)
}

// ListPending returns the parsed transactions of an import that still
// await human review.
func (s *ImportService) ListPending(ctx context.Context, userID, importID string) ([]domain.OFXPendingTransaction, error) {
	ctx, span := importTracer.Start(ctx, "ImportService.ListPending")
	defer span.End()

	return s.store.ListOFXPending(ctx, userID, importID)
}

// Review approves or re-categorizes one pending transaction. Approval
// materializes it into the ledger on the server, so the cached ledger
// snapshot is invalidated.
func (s *ImportService) Review(ctx context.Context, userID, importID, pendingID string, req *domain.OFXReviewRequest) (*domain.OFXPendingTransaction, error) {
	ctx, span := importTracer.Start(ctx, "ImportService.Review")
	defer span.End()

	if !req.Approve && req.CategoryID == "" {
		return nil, &domain.ErrValidation{Field: "category_id", Message: "required when not approving the suggestion"}
	}

	pending, err := s.store.ReviewOFXPending(ctx, userID, importID, pendingID, req)
	if err != nil {
		return nil, err
	}

	if req.Approve {
		s.dashboard.InvalidateLedgerState(userID)
	}
	return pending, nil
}
