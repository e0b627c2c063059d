package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"meditrack-api/config"
	"meditrack-api/handlers"
	"meditrack-api/health"
	"meditrack-api/logging"
	"meditrack-api/scheduler"
	"meditrack-api/server"
	"meditrack-api/store"
	"meditrack-api/tracker"
	"meditrack-api/validation"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLoggerWithOptions("logs", cfg.LogRetentionWeeks, cfg.MaxLogFileSize, cfg.LogLevel)
	defer logging.Shutdown()

	dataStore := store.NewFileStore(cfg.DataFile)
	if err := dataStore.Load(); err != nil {
		logging.Error("Failed to load data file", "error", err)
		os.Exit(1)
	}

	validator := validation.NewDataValidator()
	registry := tracker.NewRegistry(dataStore, validator)
	healthChecker := health.NewHealthChecker(dataStore)

	jobs := scheduler.NewScheduler(dataStore, registry, validator, cfg)
	if err := jobs.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer jobs.Stop()

	handler := handlers.NewHandler(dataStore, registry, healthChecker)
	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
