package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	_ "lending-desk/docs"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"lending-desk/internal/api/handler"
	mw "lending-desk/internal/api/middleware"
	"lending-desk/internal/config"
	"lending-desk/internal/domain/customer"
	"lending-desk/internal/domain/marketing"
	"lending-desk/internal/infrastructure/repository"
)

func SetupRouter(
	customerService customer.CustomerService,
	targetService marketing.TargetService,
	scratch *repository.ScratchStore,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupCustomerRoutes(router, cfg, customerService, targetService, logger)
	setupMarketingRoutes(router, cfg, targetService, logger)
	setupScratchRoutes(router, cfg, scratch, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(*cfg, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupCustomerRoutes(router *chi.Mux, cfg *config.Config, svc customer.CustomerService, targets marketing.TargetService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)
	reports := handler.NewReportHandler(svc, targets, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.SaveCustomer)
		r.Get("/", h.ListCustomers)
		r.Post("/derivation-preview", h.PreviewDerivation)
		r.Post("/extract", h.ExtractFields)
		r.Route("/{recordID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.SaveCustomer)
			r.Delete("/", h.DeleteCustomer)
			r.Post("/documents", h.AttachDocuments)
			r.Get("/topup-preview", h.PreviewTopUp)
			r.Get("/settlement-suggestion", h.SuggestSettlement)
			r.Post("/resolution", h.ResolveCustomer)
			r.Put("/resolution", h.AmendResolution)
			r.Delete("/resolution", h.RevertResolution)
		})
	})

	router.Route("/reports", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/dashboard", reports.Dashboard)
		r.Get("/institutions", reports.Institutions)
		r.Get("/export", reports.Export)
	})
}

func setupMarketingRoutes(router *chi.Mux, cfg *config.Config, svc marketing.TargetService, logger *slog.Logger) {
	h := handler.NewMarketingHandler(svc, logger)

	router.Route("/marketing", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Route("/targets", func(r chi.Router) {
			r.Post("/", h.SaveTarget)
			r.Get("/", h.ListTargets)
			r.Route("/{targetID}", func(r chi.Router) {
				r.Get("/", h.GetTarget)
				r.Delete("/", h.DeleteTarget)
				r.Put("/realization", h.RecordRealization)
			})
		})
		r.Get("/summaries", h.Summaries)
	})
}

func setupScratchRoutes(router *chi.Mux, cfg *config.Config, scratch *repository.ScratchStore, logger *slog.Logger) {
	h := handler.NewScratchHandler(scratch, logger)

	router.Route("/scratch", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Route("/drafts/{recordID}", func(r chi.Router) {
			r.Put("/", h.SaveDraft)
			r.Get("/", h.LoadDraft)
			r.Delete("/", h.ClearDraft)
		})
		r.Route("/ui", func(r chi.Router) {
			r.Get("/", h.GetUIState)
			r.Put("/active-tab", h.SetActiveTab)
			r.Put("/editing-id", h.SetEditingID)
		})
	})
}
