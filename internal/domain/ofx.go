package domain

import "time"

// ============================================================
// OFX statement imports
// ============================================================

// OFX parsing and AI categorization happen server-side. The BFF uploads
// the raw file, lists the parsed result and lets a human approve or edit
// the suggested categories before the records enter the ledger.

// OFXImport is one uploaded statement file and its processing state.
type OFXImport struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AccountID    string    `json:"account_id"`
	FileName     string    `json:"file_name"`
	Status       string    `json:"status"` // processing, review, completed, failed
	TotalCount   int       `json:"total_count"`
	PendingCount int       `json:"pending_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// OFXPendingTransaction is a parsed statement line awaiting human review.
// SuggestedCategoryID carries the server-side AI suggestion; the reviewer
// either approves it or overrides it.
type OFXPendingTransaction struct {
	ID                  string    `json:"id"`
	ImportID            string    `json:"import_id"`
	Kind                string    `json:"kind"` // CREDIT or DEBIT
	AmountCents         int64     `json:"amount_cents"`
	OccurredAt          time.Time `json:"occurred_at"`
	Description         string    `json:"description"`
	SuggestedCategoryID string    `json:"suggested_category_id,omitempty"`
	Confidence          float64   `json:"confidence,omitempty"`
	Reviewed            bool      `json:"reviewed"`
}

// OFXReviewRequest approves a pending transaction, optionally overriding
// the suggested category.
type OFXReviewRequest struct {
	CategoryID string `json:"category_id,omitempty"`
	Approve    bool   `json:"approve"`
}
