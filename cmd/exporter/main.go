package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/internal/config"
	"github.com/ahl-official/ahl-utm-tracking/internal/export"
	"github.com/ahl-official/ahl-utm-tracking/internal/logger"
	"github.com/ahl-official/ahl-utm-tracking/internal/repository/mongo"
	"github.com/ahl-official/ahl-utm-tracking/internal/secrets"
	"github.com/ahl-official/ahl-utm-tracking/internal/sink/sheets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting export worker",
		zap.String("environment", cfg.Service.Environment))

	ctx := context.Background()

	// Resolve secrets once; rotated values take effect on restart
	secretValues, err := secrets.Load(ctx, &cfg.Google, log)
	if err != nil {
		log.Fatal("Failed to resolve secrets", zap.Error(err))
	}

	// Initialize MongoDB client
	mongoClient, err := mongo.NewClient(ctx, &cfg.Mongo, log)
	if err != nil {
		log.Fatal("Failed to create MongoDB client", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(); err != nil {
			log.Error("Failed to close MongoDB client", zap.Error(err))
		}
	}()

	// Initialize repository
	repo := mongo.NewRepository(mongoClient, log)

	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	// Initialize sheets sink
	sheetsClient, err := sheets.NewClient(ctx, &cfg.Sheets, secretValues.SheetsCredentialsJSON, log)
	if err != nil {
		log.Fatal("Failed to create Sheets client", zap.Error(err))
	}

	// Initialize export worker
	worker := export.NewWorker(&cfg.Export, repo, sheetsClient, log)

	// Start health check endpoint
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if err := repo.Ping(r.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Export.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	// Start worker
	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Export worker starting")

	go func() {
		if err := worker.Start(workerCtx); err != nil {
			log.Fatal("Export worker error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down export worker gracefully")
	cancel()
}
