package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partsbook/partsbook/internal/coa"
	"github.com/partsbook/partsbook/internal/ledger"
	"github.com/partsbook/partsbook/internal/reports"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Pool           *pgxpool.Pool
	CoaHandler     *coa.Handler
	LedgerHandler  *ledger.Handler
	ReportsHandler *reports.Handler
}

// NewRouter constructs the chi.Router with engine defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if params.Pool != nil {
			if err := params.Pool.Ping(r.Context()); err != nil {
				params.Logger.Error("health check", slog.Any("error", err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"degraded"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(userScopeMiddleware)

		if params.CoaHandler != nil {
			r.Route("/coa", func(r chi.Router) {
				params.CoaHandler.MountRoutes(r)
			})
		}
		if params.LedgerHandler != nil {
			r.Route("/ledger", func(r chi.Router) {
				params.LedgerHandler.MountRoutes(r)
			})
		}
		if params.ReportsHandler != nil {
			r.Route("/reports", func(r chi.Router) {
				params.ReportsHandler.MountRoutes(r)
			})
		}
	})

	return r
}
