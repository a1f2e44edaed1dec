package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// OFX imports
// ============================================================

func uploadOFXHandler(svc *service.ImportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/imports/ofx")
		defer span.End()

		if err := r.ParseMultipartForm(8 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read uploaded file")
			return
		}

		imp, err := svc.Upload(ctx, UserIDFromContext(ctx), r.FormValue("account_id"), header.Filename, data)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusAccepted, imp)
	}
}

func listImportsHandler(svc *service.ImportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/imports")
		defer span.End()

		imports, err := svc.List(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, imports)
	}
}

func listPendingHandler(svc *service.ImportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/imports/{importId}/pending")
		defer span.End()

		pending, err := svc.ListPending(ctx, UserIDFromContext(ctx), chi.URLParam(r, "importId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, pending)
	}
}

func reviewPendingHandler(svc *service.ImportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/imports/{importId}/pending/{pendingId}/review")
		defer span.End()

		var req domain.OFXReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		pending, err := svc.Review(ctx, UserIDFromContext(ctx), chi.URLParam(r, "importId"), chi.URLParam(r, "pendingId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, pending)
	}
}
