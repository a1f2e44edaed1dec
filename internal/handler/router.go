package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/infra/observability"
	"github.com/rmartins/grana-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles everything the router serves.
type Services struct {
	Dashboard *service.DashboardService
	Accounts  *service.AccountService
	Ledger    *service.LedgerService
	Taxonomy  *service.TaxonomyService
	Recurring *service.RecurringService
	Imports   *service.ImportService
	Admin     *service.AdminService
	Auth      *service.AuthService
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract defined for the Grana frontend.
func NewRouter(svcs Services, metrics *observability.Metrics, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(metricsMiddleware(metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svcs.Taxonomy, logger))
	r.Get("/readyz", readyzHandler(metrics))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Autenticação (public)
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authLoginHandler(svcs.Auth, logger))
			r.Post("/refresh", authRefreshHandler(svcs.Auth, logger))

			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(svcs.Auth, logger))
				r.Post("/logout", authLogoutHandler(svcs.Auth, logger))
				r.Put("/password", authChangePasswordHandler(svcs.Auth, logger))
			})
		})

		// =============================================
		// Everything below requires a valid token
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(svcs.Auth, logger))

			// Dashboard
			r.Get("/dashboard/balances", dashboardBalancesHandler(svcs.Dashboard, logger))
			r.Get("/dashboard/summary", dashboardSummaryHandler(svcs.Dashboard, logger))
			r.Get("/dashboard/trend", dashboardTrendHandler(svcs.Dashboard, logger))
			r.Get("/dashboard/comparison", dashboardComparisonHandler(svcs.Dashboard, logger))
			r.Get("/dashboard/commitments", dashboardCommitmentsHandler(svcs.Dashboard, logger))

			// Bank accounts
			r.Get("/accounts", listAccountsHandler(svcs.Accounts, logger))
			r.Post("/accounts", createAccountHandler(svcs.Accounts, logger))
			r.Get("/accounts/{accountId}", getAccountHandler(svcs.Accounts, logger))
			r.Put("/accounts/{accountId}", updateAccountHandler(svcs.Accounts, logger))
			r.Delete("/accounts/{accountId}", deleteAccountHandler(svcs.Accounts, logger))

			// Ledger records (transactions + receivables/payables + transfers)
			r.Get("/ledger", listLedgerHandler(svcs.Ledger, logger))
			r.Post("/ledger", createLedgerHandler(svcs.Ledger, logger))
			r.Get("/ledger/{recordId}", getLedgerHandler(svcs.Ledger, logger))
			r.Put("/ledger/{recordId}", updateLedgerHandler(svcs.Ledger, logger))
			r.Delete("/ledger/{recordId}", deleteLedgerHandler(svcs.Ledger, logger))

			// Categories & tags
			r.Get("/categories", listCategoriesHandler(svcs.Taxonomy, logger))
			r.Post("/categories", createCategoryHandler(svcs.Taxonomy, logger))
			r.Put("/categories/{categoryId}", updateCategoryHandler(svcs.Taxonomy, logger))
			r.Delete("/categories/{categoryId}", deleteCategoryHandler(svcs.Taxonomy, logger))
			r.Get("/tags", listTagsHandler(svcs.Taxonomy, logger))
			r.Post("/tags", createTagHandler(svcs.Taxonomy, logger))
			r.Delete("/tags/{tagId}", deleteTagHandler(svcs.Taxonomy, logger))

			// Recurring payments
			r.Get("/recurring", listRecurringHandler(svcs.Recurring, logger))
			r.Post("/recurring", createRecurringHandler(svcs.Recurring, logger))
			r.Get("/recurring/occurrences", recurringOccurrencesHandler(svcs.Recurring, logger))
			r.Get("/recurring/{recurringId}", getRecurringHandler(svcs.Recurring, logger))
			r.Put("/recurring/{recurringId}", updateRecurringHandler(svcs.Recurring, logger))
			r.Delete("/recurring/{recurringId}", deleteRecurringHandler(svcs.Recurring, logger))

			// OFX imports
			r.Post("/imports/ofx", uploadOFXHandler(svcs.Imports, logger))
			r.Get("/imports", listImportsHandler(svcs.Imports, logger))
			r.Get("/imports/{importId}/pending", listPendingHandler(svcs.Imports, logger))
			r.Post("/imports/{importId}/pending/{pendingId}/review", reviewPendingHandler(svcs.Imports, logger))

			// Admin: users & permission groups
			r.Get("/users", listUsersHandler(svcs.Admin, logger))
			r.Post("/users", createUserHandler(svcs.Admin, logger))
			r.Get("/users/{userId}", getUserHandler(svcs.Admin, logger))
			r.Put("/users/{userId}", updateUserHandler(svcs.Admin, logger))
			r.Delete("/users/{userId}", deleteUserHandler(svcs.Admin, logger))
			r.Get("/permission-groups", listPermissionGroupsHandler(svcs.Admin, logger))
			r.Post("/permission-groups", createPermissionGroupHandler(svcs.Admin, logger))
			r.Put("/permission-groups/{groupId}", updatePermissionGroupHandler(svcs.Admin, logger))
			r.Delete("/permission-groups/{groupId}", deletePermissionGroupHandler(svcs.Admin, logger))
		})
	})

	return r
}

// ============================================================
// Operational handlers
// ============================================================

func healthzHandler(taxonomy *service.TaxonomyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "grana-bff", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if taxonomy != nil {
			start := time.Now()
			_, err := taxonomy.ListCategories(ctx, "health-check")
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				logger.Debug("healthz: finance-api probe failed", zap.Error(err))
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "finance-api", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overall := "healthy"
		for _, s := range services {
			if s.Status == "degraded" {
				overall = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overall,
			Services: services,
		})
	}
}

func readyzHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":                "ready",
			"ledger_cache_hit_rate": metrics.CacheHitRate("ledger-state"),
		})
	}
}

// metricsMiddleware records per-route duration and status counts. The
// chi route pattern is used as the operation label so path parameters do
// not explode cardinality.
func metricsMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			metrics.RecordRequestDuration(r.Method+" "+pattern, time.Since(start))
			metrics.IncrRequest(strconv.Itoa(ww.Status()))
		})
	}
}
