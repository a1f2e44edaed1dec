package financeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rmartins/grana-bff-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// --- Ledger records (implements part of port.FinanceStore) ---

// ListLedgerRecords fetches ledger records, optionally narrowed by the
// filter. The API tags every record with its source family
// (BANK_LEDGER / ACCOUNTS_RECEIVABLE_LEDGER); records missing the
// discriminant are rejected here, at the ingestion boundary, so nothing
// downstream ever has to sniff field presence.
func (c *Client) ListLedgerRecords(ctx context.Context, userID string, filter domain.LedgerFilter) ([]domain.LedgerRecord, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListLedgerRecords")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	q := url.Values{}
	if !filter.From.IsZero() {
		q.Set("from", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		q.Set("to", filter.To.Format("2006-01-02"))
	}
	if filter.AccountID != "" {
		q.Set("account_id", filter.AccountID)
	}
	if filter.CategoryID != "" {
		q.Set("category_id", filter.CategoryID)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Kind != "" {
		q.Set("kind", filter.Kind)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
		q.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	path := fmt.Sprintf("users/%s/ledger", escape(userID))
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	records, err := getList[domain.LedgerRecord](c, ctx, path)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Source != domain.SourceBankLedger && rec.Source != domain.SourceAccountsReceivableLedger {
			return nil, &domain.ErrValidation{
				Field:   "source",
				Message: fmt.Sprintf("record %s has unknown source '%s'", rec.ID, rec.Source),
			}
		}
	}
	return records, nil
}

// GetLedgerRecord fetches a single ledger record.
func (c *Client) GetLedgerRecord(ctx context.Context, userID, recordID string) (*domain.LedgerRecord, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GetLedgerRecord")
	defer span.End()

	path := fmt.Sprintf("users/%s/ledger/%s", escape(userID), escape(recordID))
	return getOne[domain.LedgerRecord](c, ctx, path, "ledger record", recordID)
}

// CreateLedgerRecord creates a ledger record (credit, debit or transfer).
func (c *Client) CreateLedgerRecord(ctx context.Context, userID string, req *domain.LedgerRecordRequest) (*domain.LedgerRecord, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.CreateLedgerRecord")
	defer span.End()

	path := fmt.Sprintf("users/%s/ledger", escape(userID))
	return postOne[domain.LedgerRecord](c, ctx, http.MethodPost, path, req)
}

// UpdateLedgerRecord updates a ledger record.
func (c *Client) UpdateLedgerRecord(ctx context.Context, userID, recordID string, req *domain.LedgerRecordRequest) (*domain.LedgerRecord, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdateLedgerRecord")
	defer span.End()

	path := fmt.Sprintf("users/%s/ledger/%s", escape(userID), escape(recordID))
	return postOne[domain.LedgerRecord](c, ctx, http.MethodPut, path, req)
}

// DeleteLedgerRecord removes a ledger record.
func (c *Client) DeleteLedgerRecord(ctx context.Context, userID, recordID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.DeleteLedgerRecord")
	defer span.End()

	path := fmt.Sprintf("users/%s/ledger/%s", escape(userID), escape(recordID))
	_, err := c.call(ctx, http.MethodDelete, path, nil)
	return err
}
