package financeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rmartins/grana-bff-go/internal/domain"
)

// --- Categories & tags (implements part of port.FinanceStore) ---

func (c *Client) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListCategories")
	defer span.End()

	return getList[domain.Category](c, ctx, fmt.Sprintf("users/%s/categories", escape(userID)))
}

func (c *Client) CreateCategory(ctx context.Context, userID string, req *domain.CategoryRequest) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.CreateCategory")
	defer span.End()

	path := fmt.Sprintf("users/%s/categories", escape(userID))
	return postOne[domain.Category](c, ctx, http.MethodPost, path, req)
}

func (c *Client) UpdateCategory(ctx context.Context, userID, categoryID string, req *domain.CategoryRequest) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdateCategory")
	defer span.End()

	path := fmt.Sprintf("users/%s/categories/%s", escape(userID), escape(categoryID))
	return postOne[domain.Category](c, ctx, http.MethodPut, path, req)
}

func (c *Client) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.DeleteCategory")
	defer span.End()

	path := fmt.Sprintf("users/%s/categories/%s", escape(userID), escape(categoryID))
	_, err := c.call(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListTags")
	defer span.End()

	return getList[domain.Tag](c, ctx, fmt.Sprintf("users/%s/tags", escape(userID)))
}

func (c *Client) CreateTag(ctx context.Context, userID string, req *domain.TagRequest) (*domain.Tag, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.CreateTag")
	defer span.End()

	path := fmt.Sprintf("users/%s/tags", escape(userID))
	return postOne[domain.Tag](c, ctx, http.MethodPost, path, req)
}

func (c *Client) DeleteTag(ctx context.Context, userID, tagID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.DeleteTag")
	defer span.End()

	path := fmt.Sprintf("users/%s/tags/%s", escape(userID), escape(tagID))
	_, err := c.call(ctx, http.MethodDelete, path, nil)
	return err
}
