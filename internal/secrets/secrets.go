package secrets

import (
	"context"
	"fmt"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/internal/config"
)

// Env keys checked before falling back to Secret Manager
const (
	EnvWebhookSecret   = "WEBHOOK_SECRET"
	EnvSheetsCredsJSON = "SHEETS_CREDENTIALS_JSON"
)

// Values holds the secrets resolved once at startup. The struct is
// immutable afterwards; rotated secrets take effect on process restart.
type Values struct {
	WebhookSecret         string
	SheetsCredentialsJSON []byte
}

// Resolver resolves individual secrets, environment first, then the
// latest Secret Manager version. The Secret Manager client is optional;
// without a project id only the environment is consulted.
type Resolver struct {
	client    *secretmanager.Client
	projectID string
	log       *zap.Logger
}

// NewResolver creates a resolver, connecting to Secret Manager only when
// a GCP project is configured
func NewResolver(ctx context.Context, projectID string, log *zap.Logger) (*Resolver, error) {
	r := &Resolver{
		projectID: projectID,
		log:       log,
	}

	if projectID == "" {
		log.Info("No GCP project configured, resolving secrets from environment only")
		return r, nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}
	r.client = client

	return r, nil
}

// Resolve returns the environment value when set, otherwise fetches the
// latest secret version from Secret Manager
func (r *Resolver) Resolve(ctx context.Context, envKey, secretName string) (string, error) {
	if value := os.Getenv(envKey); value != "" {
		return value, nil
	}

	if r.client == nil {
		return "", fmt.Errorf("secret %s unavailable: %s not set and no GCP project configured", secretName, envKey)
	}

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", r.projectID, secretName)
	resp, err := r.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", secretName, err)
	}

	r.log.Info("Secret resolved from Secret Manager", zap.String("secret", secretName))
	return string(resp.Payload.Data), nil
}

// Close releases the Secret Manager client
func (r *Resolver) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Load resolves every process secret once and returns the immutable set
func Load(ctx context.Context, cfg *config.Google, log *zap.Logger) (*Values, error) {
	resolver, err := NewResolver(ctx, cfg.ProjectID, log)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resolver.Close(); err != nil {
			log.Warn("Failed to close secret manager client", zap.Error(err))
		}
	}()

	webhookSecret, err := resolver.Resolve(ctx, EnvWebhookSecret, cfg.WebhookSecretName)
	if err != nil {
		return nil, err
	}

	sheetsCreds, err := resolver.Resolve(ctx, EnvSheetsCredsJSON, cfg.SheetsCredentialsSecret)
	if err != nil {
		return nil, err
	}

	return &Values{
		WebhookSecret:         webhookSecret,
		SheetsCredentialsJSON: []byte(sheetsCreds),
	}, nil
}
