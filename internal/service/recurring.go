package service

import (
	"context"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var recurringTracer = otel.Tracer("service/recurring")

// RecurringService manages recurring payment templates and projects
// their upcoming occurrences for calendar views.
type RecurringService struct {
	store  port.FinanceStore
	logger *zap.Logger
}

// NewRecurringService creates the recurring payments service.
func NewRecurringService(store port.FinanceStore, logger *zap.Logger) *RecurringService {
	return &RecurringService{store: store, logger: logger}
}

var validFrequencies = map[string]bool{"weekly": true, "monthly": true, "yearly": true}

func validateRecurringRequest(req *domain.RecurringPaymentRequest) error {
	if req.Kind != "CREDIT" && req.Kind != "DEBIT" {
		return &domain.ErrValidation{Field: "kind", Message: "must be CREDIT or DEBIT"}
	}
	if req.AmountCents < 0 {
		return &domain.ErrValidation{Field: "amount_cents", Message: "must be non-negative"}
	}
	if req.AccountID == "" {
		return &domain.ErrValidation{Field: "account_id", Message: "required"}
	}
	if !validFrequencies[req.Frequency] {
		return &domain.ErrValidation{Field: "frequency", Message: "must be weekly, monthly or yearly"}
	}
	if req.Frequency == "monthly" && (req.DayOfMonth < 1 || req.DayOfMonth > 31) {
		return &domain.ErrValidation{Field: "day_of_month", Message: "must be between 1 and 31 for monthly frequency"}
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return &domain.ErrValidation{Field: "start_date", Message: "must be a YYYY-MM-DD date"}
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return &domain.ErrValidation{Field: "end_date", Message: "must be a YYYY-MM-DD date"}
		}
		if end.Before(start) {
			return &domain.ErrValidation{Field: "end_date", Message: "must not precede start_date"}
		}
	}
	return nil
}

// List returns all recurring payment templates for a user.
func (s *RecurringService) List(ctx context.Context, userID string) ([]domain.RecurringPayment, error) {
	ctx, span := recurringTracer.Start(ctx, "RecurringService.List")
	defer span.End()

	return s.store.ListRecurringPayments(ctx, userID)
}

// Get returns one recurring payment template.
func (s *RecurringService) Get(ctx context.Context, userID, recurringID string) (*domain.RecurringPayment, error) {
	ctx, span := recurringTracer.Start(ctx, "RecurringService.Get")
	defer span.End()

	return s.store.GetRecurringPayment(ctx, userID, recurringID)
}

// Create validates and stores a new recurring payment template.
func (s *RecurringService) Create(ctx context.Context, userID string, req *domain.RecurringPaymentRequest) (*domain.RecurringPayment, error) {
	ctx, span := recurringTracer.Start(ctx, "RecurringService.Create")
	defer span.End()

	if err := validateRecurringRequest(req); err != nil {
		return nil, err
	}

	rp, err := s.store.CreateRecurringPayment(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("recurring payment created",
		zap.String("user_id", userID),
		zap.String("recurring_id", rp.ID),
		zap.String("frequency", rp.Frequency),
	)
	return rp, nil
}

// Update validates and replaces a recurring payment template.
func (s *RecurringService) Update(ctx context.Context, userID, recurringID string, req *domain.RecurringPaymentRequest) (*domain.RecurringPayment, error) {
	ctx, span := recurringTracer.Start(ctx, "RecurringService.Update")
	defer span.End()

	if err := validateRecurringRequest(req); err != nil {
		return nil, err
	}
	return s.store.UpdateRecurringPayment(ctx, userID, recurringID, req)
}

// Delete removes a recurring payment template.
func (s *RecurringService) Delete(ctx context.Context, userID, recurringID string) error {
	ctx, span := recurringTracer.Start(ctx, "RecurringService.Delete")
	defer span.End()

	return s.store.DeleteRecurringPayment(ctx, userID, recurringID)
}

// PreviewOccurrences projects the occurrences of all active templates
// that fall inside [from, to]. Projection is done locally; occurrences
// are never persisted here.
func (s *RecurringService) PreviewOccurrences(ctx context.Context, userID string, from, to time.Time) ([]domain.RecurringOccurrence, error) {
	ctx, span := recurringTracer.Start(ctx, "RecurringService.PreviewOccurrences")
	defer span.End()

	if to.Before(from) {
		return nil, &domain.ErrValidation{Field: "to", Message: "window end precedes window start"}
	}

	templates, err := s.store.ListRecurringPayments(ctx, userID)
	if err != nil {
		return nil, err
	}

	occurrences := []domain.RecurringOccurrence{}
	for _, t := range templates {
		if !t.IsActive {
			continue
		}
		for _, due := range projectOccurrences(t, from, to) {
			occurrences = append(occurrences, domain.RecurringOccurrence{
				RecurringPaymentID: t.ID,
				Description:        t.Description,
				Kind:               t.Kind,
				AmountCents:        t.AmountCents,
				DueDate:            due,
			})
		}
	}
	return occurrences, nil
}

// projectOccurrences walks a template's schedule from its start date and
// collects the due dates inside [from, to]. Monthly schedules clamp the
// day of month to the month's last day (day 31 in February becomes the
// 28th or 29th).
func projectOccurrences(t domain.RecurringPayment, from, to time.Time) []time.Time {
	var due []time.Time

	end := to
	if !t.EndDate.IsZero() && t.EndDate.Before(end) {
		end = t.EndDate
	}

	switch t.Frequency {
	case "weekly":
		for d := t.StartDate; !d.After(end); d = d.AddDate(0, 0, 7) {
			if !d.Before(from) {
				due = append(due, d)
			}
		}
	case "monthly":
		day := t.DayOfMonth
		if day == 0 {
			day = t.StartDate.Day()
		}
		cursor := time.Date(t.StartDate.Year(), t.StartDate.Month(), 1, 0, 0, 0, 0, t.StartDate.Location())
		for !cursor.After(end) {
			d := clampToMonth(cursor, day)
			if !d.Before(t.StartDate) && !d.Before(from) && !d.After(end) {
				due = append(due, d)
			}
			cursor = cursor.AddDate(0, 1, 0)
		}
	case "yearly":
		for d := t.StartDate; !d.After(end); d = d.AddDate(1, 0, 0) {
			if !d.Before(from) {
				due = append(due, d)
			}
		}
	}
	return due
}

// clampToMonth returns the given day inside monthStart's month, clamped
// to that month's last day.
func clampToMonth(monthStart time.Time, day int) time.Time {
	lastDay := monthStart.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, monthStart.Location())
}
