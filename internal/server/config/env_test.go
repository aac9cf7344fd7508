package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("LLM_PROVIDER", "Google")
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("COMPANION_ALLOWED_MODELS", "gpt-4o, gemini-1.5-pro ,")
	t.Setenv("COMPANION_HISTORY_LIMIT", "20")
	t.Setenv("S3_BUCKET", "attachments")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 2*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, ProviderGoogle, c.LLMProvider)
	assert.Equal(t, "g-key", c.GoogleAPIKey)
	assert.Equal(t, []string{"gpt-4o", "gemini-1.5-pro"}, c.AllowedModels)
	assert.Equal(t, 20, c.HistoryLimit)
	assert.True(t, c.AttachmentsEnabled())
}

func TestParseEnv_IgnoresUnparsable(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_EXPIRES_IN", "tomorrow")
	t.Setenv("COMPANION_HISTORY_LIMIT", "ten")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, 24*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, 10, c.HistoryLimit)
}
