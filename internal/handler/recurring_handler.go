package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Recurring payments
// ============================================================

func listRecurringHandler(svc *service.RecurringService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/recurring")
		defer span.End()

		templates, err := svc.List(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, templates)
	}
}

func getRecurringHandler(svc *service.RecurringService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/recurring/{recurringId}")
		defer span.End()

		rp, err := svc.Get(ctx, UserIDFromContext(ctx), chi.URLParam(r, "recurringId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rp)
	}
}

func createRecurringHandler(svc *service.RecurringService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/recurring")
		defer span.End()

		var req domain.RecurringPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rp, err := svc.Create(ctx, UserIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, rp)
	}
}

func updateRecurringHandler(svc *service.RecurringService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/recurring/{recurringId}")
		defer span.End()

		var req domain.RecurringPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rp, err := svc.Update(ctx, UserIDFromContext(ctx), chi.URLParam(r, "recurringId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rp)
	}
}

func deleteRecurringHandler(svc *service.RecurringService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/recurring/{recurringId}")
		defer span.End()

		if err := svc.Delete(ctx, UserIDFromContext(ctx), chi.URLParam(r, "recurringId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// recurringOccurrencesHandler previews upcoming occurrences for calendar
// views. Defaults to the next 30 days.
func recurringOccurrencesHandler(svc *service.RecurringService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/recurring/occurrences")
		defer span.End()

		now := time.Now()
		from, err := parseDateParam(r, "from", now)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		to, err := parseDateParam(r, "to", now.AddDate(0, 0, 30))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		occurrences, err := svc.PreviewOccurrences(ctx, UserIDFromContext(ctx), from, to)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, occurrences)
	}
}
