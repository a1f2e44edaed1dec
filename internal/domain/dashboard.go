package domain

import "github.com/rmartins/grana-bff-go/internal/ledger"

// ============================================================
// Dashboard view models
// ============================================================

// DashboardBalances is the response for GET /v1/dashboard/balances.
type DashboardBalances struct {
	Balances       []ledger.AccountBalance `json:"balances"`
	TotalCents     int64                   `json:"total_cents"`
	ActiveAccounts int                     `json:"active_accounts"`
	InactiveHidden int                     `json:"inactive_hidden"`
	ReferenceDate  string                  `json:"reference_date"` // YYYY-MM-DD
}

// DashboardSummary is the response for GET /v1/dashboard/summary.
type DashboardSummary struct {
	Period    SummaryPeriod        `json:"period"`
	AccountID string               `json:"account_id,omitempty"`
	Summary   ledger.PeriodSummary `json:"summary"`
}

// SummaryPeriod is the date window a summary covers.
type SummaryPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DashboardTrend is the response for GET /v1/dashboard/trend.
type DashboardTrend struct {
	MonthsBack int                        `json:"months_back"`
	Points     []ledger.MonthlyTrendPoint `json:"points"`
}

// DashboardComparison is the response for GET /v1/dashboard/comparison.
type DashboardComparison struct {
	ReferenceDate string                 `json:"reference_date"`
	Comparison    ledger.MonthComparison `json:"comparison"`
}

// DashboardCommitments is the response for GET /v1/dashboard/commitments.
type DashboardCommitments struct {
	Today    string         `json:"today"` // YYYY-MM-DD
	DueToday []LedgerRecord `json:"due_today"`
	Overdue  []LedgerRecord `json:"overdue"`
}
