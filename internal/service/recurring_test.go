package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/service"

	"go.uber.org/zap"
)

func TestRecurringCreate_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  domain.RecurringPaymentRequest
	}{
		{"bad kind", domain.RecurringPaymentRequest{Kind: "TRANSFER", AmountCents: 100, AccountID: "acc-a", Frequency: "monthly", DayOfMonth: 5, StartDate: "2026-01-01"}},
		{"bad frequency", domain.RecurringPaymentRequest{Kind: "DEBIT", AmountCents: 100, AccountID: "acc-a", Frequency: "daily", StartDate: "2026-01-01"}},
		{"monthly without day", domain.RecurringPaymentRequest{Kind: "DEBIT", AmountCents: 100, AccountID: "acc-a", Frequency: "monthly", StartDate: "2026-01-01"}},
		{"end before start", domain.RecurringPaymentRequest{Kind: "DEBIT", AmountCents: 100, AccountID: "acc-a", Frequency: "weekly", StartDate: "2026-02-01", EndDate: "2026-01-01"}},
		{"missing account", domain.RecurringPaymentRequest{Kind: "DEBIT", AmountCents: 100, Frequency: "weekly", StartDate: "2026-01-01"}},
	}

	svc := service.NewRecurringService(&mockStore{}, zap.NewNop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", &tc.req)
			var validation *domain.ErrValidation
			if !errors.As(err, &validation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPreviewOccurrences_Monthly(t *testing.T) {
	store := &mockStore{
		recurring: []domain.RecurringPayment{
			{
				ID: "rp-1", Description: "aluguel", Kind: "DEBIT", AmountCents: 180_000,
				AccountID: "acc-a", Frequency: "monthly", DayOfMonth: 31,
				StartDate: day(2026, 1, 1), IsActive: true,
			},
		},
	}

	svc := service.NewRecurringService(store, zap.NewNop())
	occurrences, err := svc.PreviewOccurrences(context.Background(), "user-1", day(2026, 1, 1), day(2026, 3, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(occurrences) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occurrences))
	}
	// Day 31 clamps to February's last day.
	if !occurrences[1].DueDate.Equal(day(2026, 2, 28)) {
		t.Errorf("february: expected clamp to the 28th, got %v", occurrences[1].DueDate)
	}
	if !occurrences[2].DueDate.Equal(day(2026, 3, 31)) {
		t.Errorf("march: expected the 31st, got %v", occurrences[2].DueDate)
	}
}

func TestPreviewOccurrences_WeeklyAndWindow(t *testing.T) {
	store := &mockStore{
		recurring: []domain.RecurringPayment{
			{
				ID: "rp-1", Kind: "CREDIT", AmountCents: 50_000, AccountID: "acc-a",
				Frequency: "weekly", StartDate: day(2026, 3, 2), IsActive: true,
			},
			// Inactive templates never project.
			{
				ID: "rp-2", Kind: "DEBIT", AmountCents: 10_000, AccountID: "acc-a",
				Frequency: "weekly", StartDate: day(2026, 3, 2), IsActive: false,
			},
		},
	}

	svc := service.NewRecurringService(store, zap.NewNop())
	occurrences, err := svc.PreviewOccurrences(context.Background(), "user-1", day(2026, 3, 9), day(2026, 3, 23))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(occurrences) != 3 {
		t.Fatalf("expected 3 occurrences (9th, 16th, 23rd), got %d", len(occurrences))
	}
	for _, o := range occurrences {
		if o.RecurringPaymentID != "rp-1" {
			t.Errorf("inactive template leaked: %+v", o)
		}
	}
}

func TestPreviewOccurrences_RespectsEndDate(t *testing.T) {
	store := &mockStore{
		recurring: []domain.RecurringPayment{
			{
				ID: "rp-1", Kind: "DEBIT", AmountCents: 10_000, AccountID: "acc-a",
				Frequency: "monthly", DayOfMonth: 10,
				StartDate: day(2026, 1, 1), EndDate: day(2026, 2, 15), IsActive: true,
			},
		},
	}

	svc := service.NewRecurringService(store, zap.NewNop())
	occurrences, err := svc.PreviewOccurrences(context.Background(), "user-1", day(2026, 1, 1), day(2026, 6, 30))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(occurrences) != 2 {
		t.Fatalf("expected 2 occurrences before the end date, got %d", len(occurrences))
	}
}
