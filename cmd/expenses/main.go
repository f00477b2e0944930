package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"expenses/internal/cli"
	apphttp "expenses/internal/http"
	"expenses/internal/log"
	"expenses/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(context.Background(), logger, cfg.SQLiteDBPath, cfg.DefaultCategories)
	logger.Info("SQLite repository initialized", "path", cfg.SQLiteDBPath)

	publisher, err := cli.InitPublisher(logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		_ = repo.Close()
		os.Exit(1)
	}

	svc := services.NewExpenseService(repo, publisher)
	srv := apphttp.NewServer(cfg.Addr(), svc, logger)
	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.WriteTimeout

	// HTTP first, then the store and broker.
	done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close expense service", log.FieldError, err)
		}
	})

	logger.Info("Starting expenses server", "port", cfg.Port, log.FieldOperation, log.OpStartup)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		_ = svc.Close()
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
