package financeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/infra/resilience"

	"go.uber.org/zap"
)

// --- OFX imports (implements part of port.FinanceStore) ---

// UploadOFX forwards a raw OFX statement to the finance API, which parses
// it and runs categorization server-side. The BFF never inspects the file
// contents.
func (c *Client) UploadOFX(ctx context.Context, userID, accountID, fileName string, data []byte) (*domain.OFXImport, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UploadOFX")
	defer span.End()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.WriteField("account_id", accountID); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v1/users/%s/imports/ofx", c.baseURL, escape(userID))

	var imported *domain.OFXImport
	_, err = c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf.Bytes()))
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+c.apiToken)
			req.Header.Set("Content-Type", mw.FormDataContentType())

			resp, err := c.httpClient.Do(req)
			if err != nil {
				c.logger.Error("financeapi: OFX upload failed",
					zap.String("file", fileName),
					zap.Error(err),
				)
				return err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				c.logger.Warn("financeapi: OFX upload non-2xx",
					zap.String("file", fileName),
					zap.Int("status", resp.StatusCode),
					zap.String("body", string(body)),
				)
				return fmt.Errorf("finance api returned status %d: %s", resp.StatusCode, string(body))
			}

			var imp domain.OFXImport
			if err := json.Unmarshal(body, &imp); err != nil {
				return fmt.Errorf("decode import: %w", err)
			}
			imported = &imp
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return imported, nil
}

func (c *Client) ListOFXImports(ctx context.Context, userID string) ([]domain.OFXImport, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListOFXImports")
	defer span.End()

	return getList[domain.OFXImport](c, ctx, fmt.Sprintf("users/%s/imports", escape(userID)))
}

func (c *Client) ListOFXPending(ctx context.Context, userID, importID string) ([]domain.OFXPendingTransaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListOFXPending")
	defer span.End()

	path := fmt.Sprintf("users/%s/imports/%s/pending", escape(userID), escape(importID))
	return getList[domain.OFXPendingTransaction](c, ctx, path)
}

func (c *Client) ReviewOFXPending(ctx context.Context, userID, importID, pendingID string, req *domain.OFXReviewRequest) (*domain.OFXPendingTransaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ReviewOFXPending")
	defer span.End()

	path := fmt.Sprintf("users/%s/imports/%s/pending/%s", escape(userID), escape(importID), escape(pendingID))
	return postOne[domain.OFXPendingTransaction](c, ctx, http.MethodPost, path, req)
}
