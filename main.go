package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/config"
	"github.com/greglas75/coding-ui-sub018/pkg/database"
	"github.com/greglas75/coding-ui-sub018/pkg/llm"
	"github.com/greglas75/coding-ui-sub018/pkg/repositories"
	"github.com/greglas75/coding-ui-sub018/pkg/services"
	"github.com/greglas75/coding-ui-sub018/pkg/worker"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Starting coding engine",
		zap.String("version", Version),
		zap.String("env", cfg.Env),
		zap.String("default_model", cfg.AI.DefaultModel),
		zap.Duration("sweep_interval", cfg.Engine.SweepInterval))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(cfg, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	answers := repositories.NewAnswerRepository(db)
	categories := repositories.NewCategoryRepository(db)
	codes := repositories.NewCodeRepository(db)
	auditRepo := repositories.NewAuditRepository(db)

	factory := llm.NewClientFactory(cfg.AI, logger)
	pool := llm.NewWorkerPool(llm.WorkerPoolConfig{MaxConcurrent: cfg.Engine.SweepConcurrency}, logger)

	audit := services.NewAuditService(auditRepo, logger)
	categorizer := services.NewCategorizationService(answers, codes, factory, cfg.Engine.SuggestionTTL, cfg.AI.DefaultModel, logger)
	batch := services.NewBatchService(categorizer, answers, logger)
	confirm := services.NewAutoConfirmService(answers, audit, logger)
	sweep := services.NewSweepService(categories, batch, confirm, pool,
		cfg.Engine.BatchLimit, cfg.Engine.AutoConfirmThreshold, logger)

	runner := worker.NewSweepRunner(sweep, cfg.Engine.SweepInterval, logger)
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("Sweep runner failed", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runMigrations(cfg *config.Config, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return database.RunMigrations(sqlDB, cfg.MigrationsPath, logger)
}
