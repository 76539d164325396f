package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "lending-desk/docs"
	"lending-desk/internal/api"
	"lending-desk/internal/batch"
	"lending-desk/internal/config"
	"lending-desk/internal/domain/customer"
	"lending-desk/internal/domain/marketing"
	"lending-desk/internal/event"
	"lending-desk/internal/infrastructure/extraction"
	"lending-desk/internal/infrastructure/logging"
	"lending-desk/internal/infrastructure/repository"
	"lending-desk/internal/infrastructure/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// @title Lending Desk API
// @version 1.0
// @description Record manager for pension-backed cooperative loans.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	store := initializeStore(cfg, logger)

	customerRepo, marketingRepo, scratch := initializeRepositories(store, logger)

	publisher := initializePublisher(cfg, logger)
	extractor := initializeExtractor(cfg, logger)

	customerService := customer.NewCustomerService(customerRepo, publisher, extractor, scratch, logger)
	targetService := marketing.NewTargetService(marketingRepo, logger)

	refreshJob := batch.NewPortfolioMetricsJob(customerService, cfg.Batch.PortfolioRefreshTimeout, logger)
	cronScheduler := startBatchJobs(cfg, logger, refreshJob)

	router := api.SetupRouter(customerService, targetService, scratch, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeStore(cfg *config.Config, logger *slog.Logger) storage.Store {
	switch cfg.Storage.Driver {
	case "postgres":
		logger.Info("Initializing postgres blob store...")
		pool, err := pgxpool.New(context.Background(), cfg.Storage.URL)
		if err != nil {
			logger.Error("Failed to create connection pool", "error", err)
			os.Exit(1)
		}
		store := storage.NewPostgresStore(pool, cfg.Storage.URL, logger)
		if err := store.EnsureSchema(context.Background()); err != nil {
			logger.Error("Failed to ensure kv schema", "error", err)
			os.Exit(1)
		}
		return store
	case "file", "":
		logger.Info("Initializing file blob store...", "path", cfg.Storage.Path)
		store, err := storage.NewFileStore(cfg.Storage.Path, logger)
		if err != nil {
			logger.Error("Failed to create file store", "error", err)
			os.Exit(1)
		}
		return store
	default:
		logger.Error("Unknown storage driver", "driver", cfg.Storage.Driver)
		os.Exit(1)
		return nil
	}
}

func initializeRepositories(store storage.Store, logger *slog.Logger) (*repository.CustomerRepository, *repository.MarketingRepository, *repository.ScratchStore) {
	logger.Info("Loading record collections...")
	ctx := context.Background()

	customerRepo := repository.NewCustomerRepository(store, logger)
	if err := customerRepo.Load(ctx); err != nil {
		logger.Error("Failed to load customer collection", "error", err)
		os.Exit(1)
	}
	if err := customerRepo.WatchExternal(ctx); err != nil {
		logger.Warn("External change watching disabled for customers", "error", err)
	}

	marketingRepo := repository.NewMarketingRepository(store, logger)
	if err := marketingRepo.Load(ctx); err != nil {
		logger.Error("Failed to load marketing collection", "error", err)
		os.Exit(1)
	}
	if err := marketingRepo.WatchExternal(ctx); err != nil {
		logger.Warn("External change watching disabled for marketing targets", "error", err)
	}

	return customerRepo, marketingRepo, repository.NewScratchStore(store, logger)
}

func initializePublisher(cfg *config.Config, logger *slog.Logger) event.EventPublisher {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ publishing disabled")
		return nil
	}
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/",
		cfg.RabbitMQ.Username, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, continuing without events", "error", err)
		return nil
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize event publisher, continuing without events", "error", err)
		return nil
	}
	return publisher
}

func initializeExtractor(cfg *config.Config, logger *slog.Logger) customer.FieldExtractor {
	if !cfg.Extraction.Enabled {
		logger.Info("Free-text extraction disabled")
		return nil
	}
	if cfg.Extraction.APIKey == "" {
		logger.Warn("Extraction enabled but no API key configured, disabling")
		return nil
	}
	return extraction.NewGeminiExtractor(cfg.Extraction, logger)
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, refreshJob *batch.PortfolioMetricsJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.PortfolioRefreshSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 2 * * *"
		logger.Warn("Portfolio refresh schedule not configured, using default", "schedule", scheduleSpec)
	}

	jobID, err := c.AddJob(scheduleSpec, refreshJob)
	if err != nil {
		logger.Error("Failed to schedule portfolio refresh job", "error", err)
		os.Exit(1)
	}
	logger.Info("Portfolio refresh job scheduled", "schedule", scheduleSpec, "jobID", int(jobID))

	// Prime the gauges once at startup instead of waiting for 2 AM.
	go refreshJob.Run()

	c.Start()
	return c
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}
