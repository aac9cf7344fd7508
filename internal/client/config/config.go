package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the assistant CLI.
//
// Fields:
//   - ServerURL: base URL of the backend JSON API.
//   - Token: access token sent as a bearer token; empty means log in interactively.
//   - RequestTimeout: per-request timeout. Chat turns wait on the LLM, so keep it generous.
type Config struct {
	ServerURL      string
	Token          string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 2 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment and the JSON file (if present). Later sources take precedence
// over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	if v := os.Getenv("ASSISTANT_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("ASSISTANT_TOKEN"); v != "" {
		cfg.Token = v
	}
}
