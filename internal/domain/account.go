package domain

import "time"

// ============================================================
// Bank accounts
// ============================================================

// BankAccount represents a bank account as stored by the finance API.
// OpeningBalanceCents is a snapshot supplied at account creation; the real
// balance is always derived from it plus the ledger, never stored.
type BankAccount struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	Name                string    `json:"name"`
	Institution         string    `json:"institution"`
	AccountType         string    `json:"account_type"` // checking, savings, wallet
	OpeningBalanceCents int64     `json:"opening_balance_cents"`
	Color               string    `json:"color,omitempty"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
}

// BankAccountRequest is the payload for creating or updating an account.
type BankAccountRequest struct {
	Name                string `json:"name"`
	Institution         string `json:"institution"`
	AccountType         string `json:"account_type"`
	OpeningBalanceCents int64  `json:"opening_balance_cents"`
	Color               string `json:"color,omitempty"`
	IsActive            *bool  `json:"is_active,omitempty"`
}

// BankAccountWithBalance pairs an account with its derived real balance
// for the accounts listing view.
type BankAccountWithBalance struct {
	BankAccount
	RealBalanceCents int64 `json:"real_balance_cents"`
}
