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
// Ledger records
// ============================================================

func parseLedgerFilter(r *http.Request) (domain.LedgerFilter, error) {
	filter := domain.LedgerFilter{
		AccountID:  r.URL.Query().Get("account_id"),
		CategoryID: r.URL.Query().Get("category_id"),
		Status:     r.URL.Query().Get("status"),
		Kind:       r.URL.Query().Get("kind"),
	}
	filter.Page, filter.PageSize = parsePagination(r)

	from, err := parseDateParam(r, "from", time.Time{})
	if err != nil {
		return filter, err
	}
	to, err := parseDateParam(r, "to", time.Time{})
	if err != nil {
		return filter, err
	}
	filter.From, filter.To = from, to
	return filter, nil
}

func listLedgerHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/ledger")
		defer span.End()

		filter, err := parseLedgerFilter(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		records, err := svc.List(ctx, UserIDFromContext(ctx), filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func getLedgerHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/ledger/{recordId}")
		defer span.End()

		rec, err := svc.Get(ctx, UserIDFromContext(ctx), chi.URLParam(r, "recordId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func createLedgerHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/ledger")
		defer span.End()

		var req domain.LedgerRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rec, err := svc.Create(ctx, UserIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func updateLedgerHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/ledger/{recordId}")
		defer span.End()

		var req domain.LedgerRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rec, err := svc.Update(ctx, UserIDFromContext(ctx), chi.URLParam(r, "recordId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func deleteLedgerHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/ledger/{recordId}")
		defer span.End()

		if err := svc.Delete(ctx, UserIDFromContext(ctx), chi.URLParam(r, "recordId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
