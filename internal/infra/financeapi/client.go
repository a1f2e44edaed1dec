// Package financeapi provides the client for the remote finance REST API,
// the single data backend of this BFF: bank accounts, ledger records,
// categories, tags, recurring payments, OFX imports and user
// administration all live behind it.
package financeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/infra/observability"
	"github.com/rmartins/grana-bff-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("financeapi")

// Client wraps HTTP calls to the finance API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates a finance API client. Outbound concurrency is capped
// by cfg.MaxConcurrency.
func NewClient(httpClient *http.Client, baseURL, apiToken string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiToken:   apiToken,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// do executes an authenticated request against the finance API and returns
// the raw response body. 404 and 204 are mapped to (nil, nil) so callers
// can decide whether "no data" is an error for their resource.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1/"+path, body)
	if err != nil {
		c.logger.Error("financeapi: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("financeapi: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("financeapi: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("financeapi: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return nil, fmt.Errorf("finance api returned status %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Debug("financeapi: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return respBody, nil
}

// call wraps do with the bulkhead, circuit breaker and retry policy.
// Every outbound request in this package goes through it.
func (c *Client) call(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.bulkhead.Release()

	var body []byte
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			b, err := c.do(ctx, method, path, payload)
			if err != nil {
				return err
			}
			body = b
			return nil
		})
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		c.metrics.IncrExternalError("finance-api")
		return nil, &domain.ErrCircuitOpen{Service: "finance-api"}
	}
	if err != nil {
		c.metrics.IncrExternalError("finance-api")
		return nil, err
	}
	return body, nil
}

// getOne decodes a single-object response, mapping empty bodies to
// ErrNotFound for the given resource.
func getOne[T any](c *Client, ctx context.Context, path, resource, id string) (*T, error) {
	body, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 || string(body) == "null" {
		return nil, &domain.ErrNotFound{Resource: resource, ID: id}
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	return &out, nil
}

// getList decodes a list response. An empty body decodes to an empty slice.
func getList[T any](c *Client, ctx context.Context, path string) ([]T, error) {
	body, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}

// postOne sends a create/update payload and decodes the returned object.
func postOne[T any](c *Client, ctx context.Context, method, path string, payload any) (*T, error) {
	body, err := c.call(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func escape(s string) string {
	return url.PathEscape(s)
}
