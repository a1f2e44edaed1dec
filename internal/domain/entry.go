package domain

import "time"

// ============================================================
// Ledger records (bank transactions + receivables/payables)
// ============================================================

// LedgerSource discriminates the two record families the finance API
// serves. The discriminant is resolved once at the ingestion boundary;
// nothing downstream inspects field presence to guess a record's variant.
type LedgerSource string

const (
	SourceBankLedger               LedgerSource = "BANK_LEDGER"
	SourceAccountsReceivableLedger LedgerSource = "ACCOUNTS_RECEIVABLE_LEDGER"
)

// LedgerRecord is the wire shape of one movement of money.
//
// For CREDIT/DEBIT records AccountID identifies the single affected
// account. For TRANSFER records the two transfer fields identify source
// and destination and AccountID is empty. Amounts are non-negative minor
// currency units; direction is encoded by Kind, never by sign.
type LedgerRecord struct {
	ID                    string       `json:"id"`
	Source                LedgerSource `json:"source"`
	Kind                  string       `json:"kind"`   // CREDIT, DEBIT, TRANSFER
	Status                string       `json:"status"` // PENDING, CONFIRMED, CANCELLED
	AmountCents           int64        `json:"amount_cents"`
	OccurredAt            time.Time    `json:"occurred_at"`
	AccountID             string       `json:"account_id,omitempty"`
	TransferFromAccountID string       `json:"transfer_from_account_id,omitempty"`
	TransferToAccountID   string       `json:"transfer_to_account_id,omitempty"`
	CategoryID            string       `json:"category_id,omitempty"`
	Description           string       `json:"description"`
	TagIDs                []string     `json:"tag_ids,omitempty"`
	CreatedAt             time.Time    `json:"created_at"`
}

// LedgerRecordRequest is the payload for creating or updating a record.
type LedgerRecordRequest struct {
	Kind                  string   `json:"kind"`
	Status                string   `json:"status"`
	AmountCents           int64    `json:"amount_cents"`
	OccurredAt            string   `json:"occurred_at"` // YYYY-MM-DD
	AccountID             string   `json:"account_id,omitempty"`
	TransferFromAccountID string   `json:"transfer_from_account_id,omitempty"`
	TransferToAccountID   string   `json:"transfer_to_account_id,omitempty"`
	CategoryID            string   `json:"category_id,omitempty"`
	Description           string   `json:"description"`
	TagIDs                []string `json:"tag_ids,omitempty"`
}

// LedgerFilter narrows record listings. Zero values mean "no filter".
type LedgerFilter struct {
	From       time.Time
	To         time.Time
	AccountID  string
	CategoryID string
	Status     string
	Kind       string
	Page       int
	PageSize   int
}
