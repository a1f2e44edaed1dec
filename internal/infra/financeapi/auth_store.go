package financeapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
)

// --- Auth (implements port.AuthStore) ---

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GetUserByEmail")
	defer span.End()

	path := "users/by-email?email=" + url.QueryEscape(email)
	return getOne[domain.User](c, ctx, path, "user", email)
}

func (c *Client) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return c.GetUser(ctx, userID)
}

func (c *Client) GetCredentials(ctx context.Context, userID string) (*domain.AuthCredential, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GetCredentials")
	defer span.End()

	path := "users/" + escape(userID) + "/credentials"
	return getOne[domain.AuthCredential](c, ctx, path, "credentials", userID)
}

func (c *Client) UpdateCredentials(ctx context.Context, userID string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdateCredentials")
	defer span.End()

	path := "users/" + escape(userID) + "/credentials"
	_, err := c.call(ctx, http.MethodPatch, path, updates)
	return err
}

func (c *Client) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.StoreRefreshToken")
	defer span.End()

	payload := map[string]any{
		"user_id":    userID,
		"token_hash": tokenHash,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}
	_, err := c.call(ctx, http.MethodPost, "auth/refresh-tokens", payload)
	return err
}

func (c *Client) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.AuthRefreshToken, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GetRefreshToken")
	defer span.End()

	path := "auth/refresh-tokens/" + escape(tokenHash)
	token, err := getOne[domain.AuthRefreshToken](c, ctx, path, "refresh token", tokenHash)
	if err != nil {
		// A missing token is not an internal failure; the caller treats
		// nil as "unknown token".
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return token, nil
}

func (c *Client) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.RevokeRefreshToken")
	defer span.End()

	_, err := c.call(ctx, http.MethodDelete, "auth/refresh-tokens/"+escape(tokenHash), nil)
	return err
}

func (c *Client) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.RevokeAllRefreshTokens")
	defer span.End()

	_, err := c.call(ctx, http.MethodDelete, "users/"+escape(userID)+"/refresh-tokens", nil)
	return err
}
