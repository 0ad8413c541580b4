package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/docs"
	"github.com/ahl-official/ahl-utm-tracking/internal/config"
	"github.com/ahl-official/ahl-utm-tracking/internal/export"
	"github.com/ahl-official/ahl-utm-tracking/internal/handler"
	"github.com/ahl-official/ahl-utm-tracking/internal/logger"
	"github.com/ahl-official/ahl-utm-tracking/internal/repository/mongo"
	"github.com/ahl-official/ahl-utm-tracking/internal/secrets"
	"github.com/ahl-official/ahl-utm-tracking/internal/service"
	"github.com/ahl-official/ahl-utm-tracking/internal/sink/sheets"
)

// @title UTM Tracking Service API
// @version 1.0
// @description API for attributing inbound WhatsApp conversations to ad clicks
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
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

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

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
	defer func(mongoClient *mongo.Client) {
		if err := mongoClient.Close(); err != nil {
			log.Error("Failed to close MongoDB client", zap.Error(err))
		}
	}(mongoClient)

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

	// Initialize attribution service
	attribution := service.NewAttributionService(repo, service.Options{
		CountryCode:   cfg.Attribution.CountryCode,
		MatchWindow:   time.Duration(cfg.Attribution.MatchWindowSec) * time.Second,
		CaptureDirect: cfg.Attribution.CaptureDirect,
		TargetNumber:  cfg.Webhook.TargetNumber,
	}, log)

	// Initialize batch exporter for the manual trigger
	exporter := export.NewExporter(repo, sheetsClient, export.ExporterConfig{
		BatchSize:     cfg.Export.BatchSize,
		RetryAttempts: cfg.Export.RetryAttempts,
		RetryDelay:    time.Duration(cfg.Export.RetryDelaySec) * time.Second,
	}, log)

	// Initialize handler
	h := handler.NewHandler(attribution, exporter, repo, secretValues.WebhookSecret, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
