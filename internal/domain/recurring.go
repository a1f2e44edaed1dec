package domain

import "time"

// ============================================================
// Recurring payments
// ============================================================

// RecurringPayment describes a payment or receipt that repeats on a fixed
// schedule. The finance API materializes occurrences into ledger records;
// the BFF only manages the template and previews upcoming occurrences.
type RecurringPayment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Kind        string    `json:"kind"` // CREDIT or DEBIT
	AmountCents int64     `json:"amount_cents"`
	AccountID   string    `json:"account_id"`
	CategoryID  string    `json:"category_id,omitempty"`
	Frequency   string    `json:"frequency"` // weekly, monthly, yearly
	DayOfMonth  int       `json:"day_of_month,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecurringPaymentRequest is the payload for creating or updating a
// recurring payment template.
type RecurringPaymentRequest struct {
	Description string `json:"description"`
	Kind        string `json:"kind"`
	AmountCents int64  `json:"amount_cents"`
	AccountID   string `json:"account_id"`
	CategoryID  string `json:"category_id,omitempty"`
	Frequency   string `json:"frequency"`
	DayOfMonth  int    `json:"day_of_month,omitempty"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date,omitempty"`
}

// RecurringOccurrence is a projected future occurrence of a recurring
// payment, used by calendar views. It is derived, never persisted.
type RecurringOccurrence struct {
	RecurringPaymentID string    `json:"recurring_payment_id"`
	Description        string    `json:"description"`
	Kind               string    `json:"kind"`
	AmountCents        int64     `json:"amount_cents"`
	DueDate            time.Time `json:"due_date"`
}
