// Package cli holds the start-up steps shared by the expense binaries.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"expenses/internal/amqp"
	"expenses/internal/config"
	"expenses/internal/log"
	"expenses/internal/services"
	"expenses/internal/storage"
)

// SetupLogger builds the process logger at the given LOG_LEVEL and installs
// it as the slog default. Unknown levels fall back to info.
func SetupLogger(level string) *log.Logger {
	lvl, _ := config.ParseLogLevel(level)
	logger := log.New(log.Config{Level: lvl, Component: log.ComponentApp})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration or exits the process.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite opens the repository and seeds categories, or exits the process.
// An empty categories list seeds the defaults.
func InitSQLite(ctx context.Context, logger *log.Logger, dbPath string, categories []string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", log.FieldError, err, "path", dbPath)
		os.Exit(1)
	}

	if version, err := storage.SchemaVersion(dbPath); err != nil {
		logger.Warn("Could not read schema version", log.FieldError, err)
	} else {
		logger.WithComponent(log.ComponentStorage).Info("Schema ready", "version", version)
	}

	if len(categories) == 0 {
		categories = storage.DefaultCategories
	}
	if _, err := repo.SeedCategories(ctx, categories); err != nil {
		logger.Error("Failed to seed categories", log.FieldError, err, log.FieldOperation, log.OpSeed)
		_ = repo.Close()
		os.Exit(1)
	}
	return repo
}

// InitPublisher connects to AMQP when a URL is configured. It returns a nil
// interface, not a nil *amqp.Client, when events are disabled.
func InitPublisher(logger *log.Logger, cfg *config.Config) (services.EventPublisher, error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP disabled, expense events will not be published")
		return nil, nil
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return nil, err
	}
	logger.WithComponent(log.ComponentAMQP).Info("AMQP publisher connected",
		"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return client, nil
}

// GracefulShutdown runs cleanup once SIGINT or SIGTERM arrives. cleanup gets
// a context bounded by timeout. The returned channel closes when cleanup is done.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func(ctx context.Context)) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}
		if err := shutdownCtx.Err(); err != nil {
			logger.Warn("Shutdown timeout reached", log.FieldError, err)
		} else {
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return done
}
