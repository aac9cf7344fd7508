package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/supreassistant/internal/flagx"
	"github.com/dmitrijs2005/supreassistant/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted. Only
// fields present (non-zero) in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	LogLevel                     string         `json:"log_level"`
	LLMProvider                  string         `json:"llm_provider"`
	OpenAIModel                  string         `json:"openai_model"`
	OpenAIBaseURL                string         `json:"openai_base_url"`
	GoogleModel                  string         `json:"google_model"`
	CompanionName                string         `json:"companion_name"`
	CompanionSystemPrompt        string         `json:"companion_system_prompt"`
	CompanionSystemPromptPath    string         `json:"companion_system_prompt_path"`
	AllowedModels                []string       `json:"allowed_models"`
	HistoryLimit                 int            `json:"history_limit"`
	HealthCheckInterval          timex.Duration `json:"health_check_interval"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c / -config, if any, and overlays its
// values onto config. Unreadable or malformed files panic: the server must
// not start with a config the operator did not intend.
func parseJson(config *Config) {
	path := flagx.ConfigFilePath(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LLMProvider, c.LLMProvider)
	setString(&config.OpenAIModel, c.OpenAIModel)
	setString(&config.OpenAIBaseURL, c.OpenAIBaseURL)
	setString(&config.GoogleModel, c.GoogleModel)
	setString(&config.CompanionName, c.CompanionName)
	setString(&config.CompanionSystemPrompt, c.CompanionSystemPrompt)
	setString(&config.CompanionSystemPromptPath, c.CompanionSystemPromptPath)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.HealthCheckInterval.Duration > 0 {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if len(c.AllowedModels) > 0 {
		config.AllowedModels = c.AllowedModels
	}
	if c.HistoryLimit > 0 {
		config.HistoryLimit = c.HistoryLimit
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
