package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	"github.com/SscSPs/shopdesk_backend/internal/core/services"
	"github.com/SscSPs/shopdesk_backend/internal/handlers"
	"github.com/SscSPs/shopdesk_backend/internal/middleware"
	"github.com/SscSPs/shopdesk_backend/internal/platform/config"
	"github.com/SscSPs/shopdesk_backend/internal/platform/tracing"
	"github.com/SscSPs/shopdesk_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/shopdesk_backend/internal/repositories/file"
	"github.com/SscSPs/shopdesk_backend/internal/repositories/memory"
	"github.com/SscSPs/shopdesk_backend/internal/utils"
	"github.com/SscSPs/shopdesk_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const serviceVersion = "1.0.0"

// @title ShopDesk Backend API
// @version 1.0
// @description Configuration-driven module gating, document workflows and approval lifecycle.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.TracingEnabled {
		if err := tracing.Init("shopdesk_backend", serviceVersion, cfg.TracingOutput); err != nil {
			logger.Error("Failed to initialize tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Tracing enabled", slog.String("output", cfg.TracingOutput))
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	seed := file.NewSource(cfg.ConfigOverridePath)

	var repos portsrepo.RepositoryProvider
	switch cfg.StorageBackend {
	case config.StoragePgSQL:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if cfg.RunMigrations {
			if err := runMigrations(cfg, logger); err != nil {
				logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		repos = pgsql.NewRepositoryProvider(dbPool, cfg.TenantID, seed)
	default:
		logger.Warn("Using in-memory storage, approval requests are lost on restart")
		repos = memory.NewRepositoryProvider(seed, demoProfiles()...)
	}

	container := services.NewServiceContainer(cfg, repos)
	if err := container.Config.Load(ctx); err != nil {
		logger.Error("Failed to load tenant configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	stopApprovals, err := container.Approvals.Start(ctx)
	if err != nil {
		logger.Error("Failed to start approval queue", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer stopApprovals()

	rateLimiter, err := newRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, rateLimiter, posthogClient)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to flush traces", slog.String("error", err.Error()))
	}
}

// newRateLimiter builds an in-process limiter from a formatted rate such as "20-S".
// An empty rate disables limiting.
func newRateLimiter(formatted string) (*limiter.Limiter, error) {
	if formatted == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(limitermemory.NewStore(), rate), nil
}

// runMigrations applies pending "up" migrations through a temporary database/sql handle.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// demoProfiles seeds the in-memory profile directory so the pending list shows names.
func demoProfiles() []domain.UserProfile {
	return []domain.UserProfile{
		{UserID: "admin", Name: "Store Admin"},
		{UserID: "manager", Name: "Floor Manager"},
		{UserID: "cashier", Name: "Front Desk"},
	}
}
