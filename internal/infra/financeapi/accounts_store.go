package financeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rmartins/grana-bff-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// --- Bank accounts (implements part of port.FinanceStore) ---

// ListAccounts fetches every bank account of a user.
func (c *Client) ListAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListAccounts")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	return getList[domain.BankAccount](c, ctx, fmt.Sprintf("users/%s/accounts", escape(userID)))
}

// GetAccount fetches a single bank account.
func (c *Client) GetAccount(ctx context.Context, userID, accountID string) (*domain.BankAccount, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GetAccount")
	defer span.End()

	path := fmt.Sprintf("users/%s/accounts/%s", escape(userID), escape(accountID))
	return getOne[domain.BankAccount](c, ctx, path, "account", accountID)
}

// CreateAccount creates a bank account.
func (c *Client) CreateAccount(ctx context.Context, userID string, req *domain.BankAccountRequest) (*domain.BankAccount, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.CreateAccount")
	defer span.End()

	path := fmt.Sprintf("users/%s/accounts", escape(userID))
	return postOne[domain.BankAccount](c, ctx, http.MethodPost, path, req)
}

// UpdateAccount updates a bank account.
func (c *Client) UpdateAccount(ctx context.Context, userID, accountID string, req *domain.BankAccountRequest) (*domain.BankAccount, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdateAccount")
	defer span.End()

	path := fmt.Sprintf("users/%s/accounts/%s", escape(userID), escape(accountID))
	return postOne[domain.BankAccount](c, ctx, http.MethodPut, path, req)
}

// DeleteAccount removes a bank account.
func (c *Client) DeleteAccount(ctx context.Context, userID, accountID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.DeleteAccount")
	defer span.End()

	path := fmt.Sprintf("users/%s/accounts/%s", escape(userID), escape(accountID))
	_, err := c.call(ctx, http.MethodDelete, path, nil)
	return err
}
