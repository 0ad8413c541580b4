package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Service     Service
	Mongo       Mongo
	Sheets      Sheets
	Webhook     Webhook
	Attribution Attribution
	Export      Export
	Google      Google
}

type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

type Mongo struct {
	URI               string `envconfig:"MONGO_URI" required:"true"`
	Database          string `envconfig:"MONGO_DB" default:"utm_tracking"`
	ClicksCollection  string `envconfig:"MONGO_CLICKS_COLLECTION" default:"clicks"`
	ConnectTimeoutSec int    `envconfig:"MONGO_CONNECT_TIMEOUT_SEC" default:"10"`
	MaxPoolSize       uint64 `envconfig:"MONGO_MAX_POOL_SIZE" default:"20"`
}

type Sheets struct {
	SpreadsheetID string `envconfig:"SHEETS_SPREADSHEET_ID" required:"true"`
	SheetName     string `envconfig:"SHEETS_TAB_NAME" default:"Conversions"`
}

type Webhook struct {
	TargetNumber string `envconfig:"WEBHOOK_TARGET_NUMBER" required:"true"`
}

type Attribution struct {
	CountryCode    string `envconfig:"ATTRIBUTION_COUNTRY_CODE" default:"91"`
	MatchWindowSec int    `envconfig:"ATTRIBUTION_MATCH_WINDOW_SEC" default:"300"`
	CaptureDirect  bool   `envconfig:"ATTRIBUTION_CAPTURE_DIRECT" default:"true"`
}

type Export struct {
	BatchSize         int    `envconfig:"EXPORT_BATCH_SIZE" default:"250"`
	SweepIntervalSec  int    `envconfig:"EXPORT_SWEEP_INTERVAL_SEC" default:"300"`
	RetryAttempts     int    `envconfig:"EXPORT_RETRY_ATTEMPTS" default:"3"`
	RetryDelaySec     int    `envconfig:"EXPORT_RETRY_DELAY_SEC" default:"2"`
	ReconnectDelaySec int    `envconfig:"EXPORT_RECONNECT_DELAY_SEC" default:"60"`
	HealthCheckPort   string `envconfig:"EXPORT_HEALTH_CHECK_PORT" default:"8081"`
}

// Google groups the GCP settings shared by the secret resolver.
// ProjectID may be empty when all secrets are provided via environment.
type Google struct {
	ProjectID               string `envconfig:"GCP_PROJECT_ID" default:""`
	WebhookSecretName       string `envconfig:"GCP_WEBHOOK_SECRET_NAME" default:"gallabox-webhook-secret"`
	SheetsCredentialsSecret string `envconfig:"GCP_SHEETS_CREDENTIALS_SECRET" default:"sheets-service-account"`
}

func Load() (*Config, error) {
	// Optional .env for local development, real environments set vars directly
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
