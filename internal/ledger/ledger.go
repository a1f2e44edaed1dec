// Package ledger implements the pure aggregation core: real balance
// computation across credit/debit/transfer entries, period totals,
// monthly trends, month-over-month comparison and commitment bucketing.
//
// Every function here is a pure function of its arguments. No I/O, no
// clocks, no shared state — callers inject the reference date. Results
// are recomputed from scratch on every call and must never be patched
// incrementally.
package ledger

import (
	"fmt"
	"strconv"
	"time"
)

// EntryKind discriminates the three movement variants. A TRANSFER is a
// single logical record with two account references; it is never stored
// as a CREDIT/DEBIT pair.
type EntryKind string

const (
	KindCredit   EntryKind = "CREDIT"
	KindDebit    EntryKind = "DEBIT"
	KindTransfer EntryKind = "TRANSFER"
)

// EntryStatus is the settlement state of an entry.
type EntryStatus string

const (
	StatusPending   EntryStatus = "PENDING"
	StatusConfirmed EntryStatus = "CONFIRMED"
	StatusCancelled EntryStatus = "CANCELLED"
)

// Account is the aggregator's view of a bank account. OpeningBalanceCents
// is an externally supplied snapshot and is never mutated here.
type Account struct {
	ID                  string
	OpeningBalanceCents int64
	IsActive            bool
}

// Entry is one movement of money. Exactly one of {AccountID} or
// {TransferFromAccountID, TransferToAccountID} is populated, matching Kind.
// AmountCents is always >= 0; direction is encoded by Kind, never by sign.
type Entry struct {
	ID                    string
	Kind                  EntryKind
	AmountCents           int64
	Status                EntryStatus
	OccurredAt            time.Time // day granularity
	AccountID             string    // CREDIT/DEBIT only
	TransferFromAccountID string    // TRANSFER only
	TransferToAccountID   string    // TRANSFER only
	CategoryID            string    // optional
}

// AccountBalance is a derived output: opening balance plus the net effect
// of every entry touching the account. Computed fresh on every call.
type AccountBalance struct {
	AccountID        string `json:"account_id"`
	RealBalanceCents int64  `json:"real_balance_cents"`
}

// PeriodSummary aggregates entries inside a date window.
type PeriodSummary struct {
	TotalCreditCents    int64 `json:"total_credit_cents"`
	TotalDebitCents     int64 `json:"total_debit_cents"`
	TotalConfirmedCents int64 `json:"total_confirmed_cents"`
	TotalPendingCents   int64 `json:"total_pending_cents"`
	Count               int   `json:"count"`
}

// MonthlyTrendPoint is one month of a trailing trend series.
type MonthlyTrendPoint struct {
	Year             int    `json:"year"`
	Month            int    `json:"month"` // 1-12
	Label            string `json:"label"`
	TotalCreditCents int64  `json:"total_credit_cents"`
	TotalDebitCents  int64  `json:"total_debit_cents"`
}

// Comparison holds a current-vs-previous month pair.
type Comparison struct {
	CurrentCents     int64   `json:"current_cents"`
	PreviousCents    int64   `json:"previous_cents"`
	PercentVariation float64 `json:"percent_variation"`
}

// MonthComparison compares the current calendar month against the previous
// one, split by direction.
type MonthComparison struct {
	Receivable Comparison `json:"receivable"`
	Payable    Comparison `json:"payable"`
}

// CommitmentBuckets splits pending entries into "due today" and "overdue".
type CommitmentBuckets struct {
	DueToday []Entry `json:"due_today"`
	Overdue  []Entry `json:"overdue"`
}

// ============================================================
// Input validation
// ============================================================

// ValidationError reports a malformed entry. The package keeps its own
// error type so it stays free of upper-layer imports; handlers map it to
// HTTP 400 alongside the domain validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ValidateEntry checks an entry against the structural invariants.
// Aggregation rejects the whole input on the first malformed entry — a
// partial aggregate over a corrupted ledger is worse than no aggregate.
func ValidateEntry(e Entry) error {
	if e.AmountCents < 0 {
		return &ValidationError{Field: "amount_cents", Message: "must be non-negative (entry " + e.ID + ")"}
	}
	switch e.Kind {
	case KindCredit, KindDebit:
		if e.AccountID == "" {
			return &ValidationError{Field: "account_id", Message: "required for " + string(e.Kind) + " (entry " + e.ID + ")"}
		}
		if e.TransferFromAccountID != "" || e.TransferToAccountID != "" {
			return &ValidationError{Field: "transfer_accounts", Message: "must be empty for " + string(e.Kind) + " (entry " + e.ID + ")"}
		}
	case KindTransfer:
		if e.TransferFromAccountID == "" || e.TransferToAccountID == "" {
			return &ValidationError{Field: "transfer_accounts", Message: "both legs required for TRANSFER (entry " + e.ID + ")"}
		}
		if e.TransferFromAccountID == e.TransferToAccountID {
			return &ValidationError{Field: "transfer_accounts", Message: "transfer legs must differ (entry " + e.ID + ")"}
		}
		if e.AccountID != "" {
			// A stray account_id on a TRANSFER is exactly the shape that
			// caused double counting upstream. Reject it at the door.
			return &ValidationError{Field: "account_id", Message: "must be empty for TRANSFER (entry " + e.ID + ")"}
		}
	default:
		return &ValidationError{Field: "kind", Message: "unknown entry kind '" + string(e.Kind) + "' (entry " + e.ID + ")"}
	}
	switch e.Status {
	case StatusPending, StatusConfirmed, StatusCancelled:
	default:
		return &ValidationError{Field: "status", Message: "unknown entry status '" + string(e.Status) + "' (entry " + e.ID + ")"}
	}
	return nil
}

// ValidateEntries rejects the whole slice on the first malformed entry.
func ValidateEntries(entries []Entry) error {
	for _, e := range entries {
		if err := ValidateEntry(e); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================
// Calendar helpers (day granularity)
// ============================================================

// sameCalendarDay compares two instants by local calendar day, not by
// timestamp.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfDay truncates an instant to midnight of its calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// monthWindow returns the inclusive [first day, last day] window of the
// calendar month containing ref.
func monthWindow(ref time.Time) (time.Time, time.Time) {
	y, m, _ := ref.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// inWindow reports whether t falls inside [start, end], inclusive on both
// ends, comparing at day granularity.
func inWindow(t, start, end time.Time) bool {
	d := startOfDay(t)
	return !d.Before(startOfDay(start)) && !d.After(startOfDay(end))
}

var monthAbbrevPTBR = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// MonthLabel derives a stable display label from (year, month),
// e.g. "mar/2026".
func MonthLabel(year, month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthAbbrevPTBR[month-1] + "/" + strconv.Itoa(year)
}
