package financeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rmartins/grana-bff-go/internal/domain"
)

// --- Recurring payments (implements part of port.FinanceStore) ---

func (c *Client) ListRecurringPayments(ctx context.Context, userID string) ([]domain.RecurringPayment, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListRecurringPayments")
	defer span.End()

	return getList[domain.RecurringPayment](c, ctx, fmt.Sprintf("users/%s/recurring", escape(userID)))
}

func (c *Client) GetRecurringPayment(ctx context.Context, userID, recurringID string) (*domain.RecurringPayment, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GetRecurringPayment")
	defer span.End()

	path := fmt.Sprintf("users/%s/recurring/%s", escape(userID), escape(recurringID))
	return getOne[domain.RecurringPayment](c, ctx, path, "recurring payment", recurringID)
}

func (c *Client) CreateRecurringPayment(ctx context.Context, userID string, req *domain.RecurringPaymentRequest) (*domain.RecurringPayment, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.CreateRecurringPayment")
	defer span.End()

	path := fmt.Sprintf("users/%s/recurring", escape(userID))
	return postOne[domain.RecurringPayment](c, ctx, http.MethodPost, path, req)
}

func (c *Client) UpdateRecurringPayment(ctx context.Context, userID, recurringID string, req *domain.RecurringPaymentRequest) (*domain.RecurringPayment, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdateRecurringPayment")
	defer span.End()

	path := fmt.Sprintf("users/%s/recurring/%s", escape(userID), escape(recurringID))
	return postOne[domain.RecurringPayment](c, ctx, http.MethodPut, path, req)
}

func (c *Client) DeleteRecurringPayment(ctx context.Context, userID, recurringID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.DeleteRecurringPayment")
	defer span.End()

	path := fmt.Sprintf("users/%s/recurring/%s", escape(userID), escape(recurringID))
	_, err := c.call(ctx, http.MethodDelete, path, nil)
	return err
}
