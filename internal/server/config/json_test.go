package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":             "0.0.0.0:8000",
		"database_dsn":                   "postgres://db/assistant",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "1h",
		"llm_provider":                   "google",
		"google_model":                   "gemini-1.5-pro",
		"companion_name":                 "Supre",
		"allowed_models":                 []string{"gemini-1.5-pro"},
		"history_limit":                  6,
		"health_check_interval":          "30s",
		"s3_bucket":                      "notes",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "0.0.0.0:8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://db/assistant", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 1*time.Hour, cfg.AccessTokenValidityDuration)
		assert.Equal(t, ProviderGoogle, cfg.LLMProvider)
		assert.Equal(t, "gemini-1.5-pro", cfg.GoogleModel)
		assert.Equal(t, "Supre", cfg.CompanionName)
		assert.Equal(t, []string{"gemini-1.5-pro"}, cfg.AllowedModels)
		assert.Equal(t, 6, cfg.HistoryLimit)
		assert.Equal(t, 30*time.Second, cfg.HealthCheckInterval)
		assert.Equal(t, "notes", cfg.S3Bucket)
	})

	t.Run("absent fields keep current values", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "defaults:1234", SecretKey: "key"}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
