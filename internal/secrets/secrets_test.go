package secrets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestResolver_Resolve_EnvironmentFirst(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_SECRET", "from-env")

	resolver, err := NewResolver(context.Background(), "", zap.NewNop())
	assert.NoError(t, err)

	value, err := resolver.Resolve(context.Background(), "TEST_WEBHOOK_SECRET", "gallabox-webhook-secret")

	assert.NoError(t, err)
	assert.Equal(t, "from-env", value)
}

func TestResolver_Resolve_MissingEverywhere(t *testing.T) {
	resolver, err := NewResolver(context.Background(), "", zap.NewNop())
	assert.NoError(t, err)

	value, err := resolver.Resolve(context.Background(), "TEST_UNSET_SECRET", "gallabox-webhook-secret")

	assert.Error(t, err)
	assert.Empty(t, value)
	assert.Contains(t, err.Error(), "TEST_UNSET_SECRET not set")
}

func TestResolver_Close_WithoutClient(t *testing.T) {
	resolver, err := NewResolver(context.Background(), "", zap.NewNop())
	assert.NoError(t, err)

	assert.NoError(t, resolver.Close())
}
