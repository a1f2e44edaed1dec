package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rmartins/grana-bff-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Dashboard — aggregated views over the ledger
// ============================================================

func dashboardBalancesHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/balances")
		defer span.End()

		userID := UserIDFromContext(ctx)
		span.SetAttributes(attribute.String("user.id", userID))

		refDate, err := parseDateParam(r, "reference_date", time.Now())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		balances, err := svc.GetBalances(ctx, userID, refDate)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, balances)
	}
}

func dashboardSummaryHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/summary")
		defer span.End()

		userID := UserIDFromContext(ctx)

		// Default window: the current calendar month.
		now := time.Now()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

		from, err := parseDateParam(r, "from", firstOfMonth)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		to, err := parseDateParam(r, "to", lastOfMonth)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		summary, err := svc.GetPeriodSummary(ctx, userID, from, to, r.URL.Query().Get("account_id"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func dashboardTrendHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/trend")
		defer span.End()

		userID := UserIDFromContext(ctx)

		monthsBack := 6
		if v := r.URL.Query().Get("months_back"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "months_back must be an integer")
				return
			}
			monthsBack = n
		}

		refDate, err := parseDateParam(r, "reference_date", time.Now())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		trend, err := svc.GetMonthlyTrend(ctx, userID, monthsBack, refDate)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, trend)
	}
}

func dashboardComparisonHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/comparison")
		defer span.End()

		userID := UserIDFromContext(ctx)

		refDate, err := parseDateParam(r, "reference_date", time.Now())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		cmp, err := svc.GetComparison(ctx, userID, refDate)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, cmp)
	}
}

func dashboardCommitmentsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/commitments")
		defer span.End()

		userID := UserIDFromContext(ctx)

		today, err := parseDateParam(r, "today", time.Now())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		commitments, err := svc.GetCommitments(ctx, userID, today)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, commitments)
	}
}
