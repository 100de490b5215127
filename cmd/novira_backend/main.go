package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	_ "github.com/novira-app/novira-backend/cmd/docs"
	"github.com/novira-app/novira-backend/internal/adapters/cache"
	"github.com/novira-app/novira-backend/internal/adapters/database/pgsql"
	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	"github.com/novira-app/novira-backend/internal/core/services"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/novira-app/novira-backend/internal/handlers"
	"github.com/novira-app/novira-backend/internal/middleware"
	"github.com/novira-app/novira-backend/internal/platform/config"
	"github.com/novira-app/novira-backend/internal/worker"
	"github.com/novira-app/novira-backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Novira Backend API
// @version 1.0
// @description Debt ledger and settlement API for the Novira shared-expense tracker.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := dto.RegisterValidations(); err != nil {
		logger.Error("Failed to register custom validations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Repositories, with the rate reader behind Redis when configured.
	var rateRepo portsrepo.RateRepositoryFacade = pgsql.NewRateRepository(dbPool)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to parse REDIS_URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		rateRepo = cache.NewCachedRateRepository(rateRepo, redis.NewClient(opts), logger, cfg.RateCacheTTL)
		logger.Info("Exchange rate cache enabled.")
	}

	repos := portsrepo.RepositoryProvider{
		SplitRepo:    pgsql.NewSplitRepository(dbPool),
		CurrencyRepo: pgsql.NewCurrencyRepository(dbPool),
		RateRepo:     rateRepo,
	}

	// Recompute worker: settlements and split changes nudge it, and it warms
	// the rate table so the next on-demand aggregation starts from a fresh
	// snapshot.
	recomputeWorker := worker.NewRecomputeWorker(cfg.RecomputeDebounce, func(jobCtx context.Context) {
		jobCtx, cancel := context.WithTimeout(jobCtx, 10*time.Second)
		defer cancel()
		if _, err := repos.RateRepo.GetRateTable(jobCtx, cfg.ReportingCurrency); err != nil {
			logger.Warn("Recompute warmup failed", slog.String("error", err.Error()))
		}
	}, logger)

	serviceContainer := services.NewServiceContainer(cfg, repos, recomputeWorker.Kick)

	go func() {
		if err := recomputeWorker.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Recompute worker stopped", slog.String("error", err.Error()))
		}
	}()

	// Split change feed keeps derived balances fresh across instances.
	changeFeed := pgsql.NewSplitChangeFeed(dbPool, logger)
	go func() {
		if err := changeFeed.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Split change feed stopped", slog.String("error", err.Error()))
		}
	}()
	go recomputeWorker.Subscribe(ctx, changeFeed)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLogger builds the process logger: JSON in production, colorized tint
// output for development.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
}

// runMigrations applies all pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

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

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
