package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays values from environment variables. Variable names follow
// the ones the assistant has always been deployed with (PORT, JWT_SECRET,
// OPENAI_MODEL_NAME, ...). Unset or unparsable values leave the field as is.
func parseEnv(c *Config) {
	if port := os.Getenv("PORT"); port != "" {
		c.EndpointAddrHTTP = ":" + port
	}
	c.EndpointAddrHTTP = getEnv("HTTP_ADDR", c.EndpointAddrHTTP)
	c.EndpointAddrGRPC = getEnv("GRPC_ADDR", c.EndpointAddrGRPC)
	c.DatabaseDSN = getEnv("DATABASE_DSN", c.DatabaseDSN)
	c.SecretKey = getEnv("JWT_SECRET", c.SecretKey)
	c.AccessTokenValidityDuration = getEnvDuration("JWT_EXPIRES_IN", c.AccessTokenValidityDuration)
	c.RefreshTokenValidityDuration = getEnvDuration("REFRESH_TOKEN_EXPIRES_IN", c.RefreshTokenValidityDuration)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.LLMProvider = strings.ToLower(getEnv("LLM_PROVIDER", c.LLMProvider))
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIModel = getEnv("OPENAI_MODEL_NAME", c.OpenAIModel)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.GoogleAPIKey = getEnv("GOOGLE_API_KEY", c.GoogleAPIKey)
	c.GoogleModel = getEnv("GOOGLE_MODEL_NAME", c.GoogleModel)

	c.CompanionName = getEnv("COMPANION_NAME", c.CompanionName)
	c.CompanionSystemPromptPath = getEnv("COMPANION_SYSTEM_PROMPT_PATH", c.CompanionSystemPromptPath)
	if models := os.Getenv("COMPANION_ALLOWED_MODELS"); models != "" {
		c.AllowedModels = splitList(models)
	}
	c.HistoryLimit = getEnvInt("COMPANION_HISTORY_LIMIT", c.HistoryLimit)
	c.HealthCheckInterval = getEnvDuration("HEALTH_CHECK_INTERVAL", c.HealthCheckInterval)

	c.S3AccessKey = getEnv("S3_ACCESS_KEY", c.S3AccessKey)
	c.S3SecretKey = getEnv("S3_SECRET_KEY", c.S3SecretKey)
	c.S3Bucket = getEnv("S3_BUCKET", c.S3Bucket)
	c.S3Region = getEnv("S3_REGION", c.S3Region)
	c.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", c.S3BaseEndpoint)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
