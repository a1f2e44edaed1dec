package service

import (
	"context"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var taxonomyTracer = otel.Tracer("service/taxonomy")

// TaxonomyService manages categories and tags.
type TaxonomyService struct {
	store  port.FinanceStore
	logger *zap.Logger
}

// NewTaxonomyService creates the taxonomy service.
func NewTaxonomyService(store port.FinanceStore, logger *zap.Logger) *TaxonomyService {
	return &TaxonomyService{store: store, logger: logger}
}

func validateCategoryRequest(req *domain.CategoryRequest) error {
	if req.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if req.Kind != "CREDIT" && req.Kind != "DEBIT" {
		return &domain.ErrValidation{Field: "kind", Message: "must be CREDIT or DEBIT"}
	}
	return nil
}

// ListCategories returns all categories for a user.
func (s *TaxonomyService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	ctx, span := taxonomyTracer.Start(ctx, "TaxonomyService.ListCategories")
	defer span.End()

	return s.store.ListCategories(ctx, userID)
}

// CreateCategory validates and stores a new category.
func (s *TaxonomyService) CreateCategory(ctx context.Context, userID string, req *domain.CategoryRequest) (*domain.Category, error) {
	ctx, span := taxonomyTracer.Start(ctx, "TaxonomyService.CreateCategory")
	defer span.End()

	if err := validateCategoryRequest(req); err != nil {
		return nil, err
	}
	return s.store.CreateCategory(ctx, userID, req)
}

// UpdateCategory validates and replaces a category.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, userID, categoryID string, req *domain.CategoryRequest) (*domain.Category, error) {
	ctx, span := taxonomyTracer.Start(ctx, "TaxonomyService.UpdateCategory")
	defer span.End()

	if err := validateCategoryRequest(req); err != nil {
		return nil, err
	}
	return s.store.UpdateCategory(ctx, userID, categoryID, req)
}

// DeleteCategory removes a category.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	ctx, span := taxonomyTracer.Start(ctx, "TaxonomyService.DeleteCategory")
	defer span.End()

	return s.store.DeleteCategory(ctx, userID, categoryID)
}

// ListTags returns all tags for a user.
func (s *TaxonomyService) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	ctx, span := taxonomyTracer.Start(ctx, "TaxonomyService.ListTags")
	defer span.End()

	return s.store.ListTags(ctx, userID)
}

// CreateTag validates and stores a new tag.
func (s *TaxonomyService) CreateTag(ctx context.Context, userID string, req *domain.TagRequest) (*domain.Tag, error) {
	ctx, span := taxonomyTracer.Start(ctx, "TaxonomyService.CreateTag")
	defer span.End()

	if req.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	return s.store.CreateTag(ctx, userID, req)
}

// DeleteTag removes a tag.
func (s *TaxonomyService) DeleteTag(ctx context.Context, userID, tagID string) error {
	ctx, span := taxonomyTracer.Start(ctx, "TaxonomyService.DeleteTag")
	defer span.End()

	return s.store.DeleteTag(ctx, userID, tagID)
}
