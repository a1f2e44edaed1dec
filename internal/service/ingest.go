package service

import (
	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/ledger"
)

// ============================================================
// Ingestion boundary: wire records -> ledger entries
// ============================================================

// toLedgerAccounts maps API accounts to the aggregator's account type.
func toLedgerAccounts(accounts []domain.BankAccount) []ledger.Account {
	out := make([]ledger.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ledger.Account{
			ID:                  a.ID,
			OpeningBalanceCents: a.OpeningBalanceCents,
			IsActive:            a.IsActive,
		})
	}
	return out
}

// toLedgerEntries maps wire records to tagged ledger entries. The record's
// variant was already resolved at the ingestion boundary (the financeapi
// client rejects unknown sources), so this is a plain field mapping —
// no field-presence sniffing happens here or anywhere downstream.
func toLedgerEntries(records []domain.LedgerRecord) []ledger.Entry {
	out := make([]ledger.Entry, 0, len(records))
	for _, r := range records {
		out = append(out, ledger.Entry{
			ID:                    r.ID,
			Kind:                  ledger.EntryKind(r.Kind),
			AmountCents:           r.AmountCents,
			Status:                ledger.EntryStatus(r.Status),
			OccurredAt:            r.OccurredAt,
			AccountID:             r.AccountID,
			TransferFromAccountID: r.TransferFromAccountID,
			TransferToAccountID:   r.TransferToAccountID,
			CategoryID:            r.CategoryID,
		})
	}
	return out
}
