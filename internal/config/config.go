package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	OpenAI   OpenAIConfig
	Synth    SynthConfig
	FirmIntel FirmIntelConfig
	Postgres PostgresConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// OpenAIConfig holds the OpenAI-compatible LLM endpoint configuration.
// Enabled is false when no API key is set; every caller must then fall
// back to the local deterministic parser.
type OpenAIConfig struct {
	APIKey      string
	APIBase     string
	ChatModel   string
	Temperature float64
	MaxTokens   int
	Timeout     int // seconds; bounds every remote parse call
	Enabled     bool
}

// SynthConfig holds prospect-synthesis limits
type SynthConfig struct {
	DefaultCount int
	MaxCount     int
}

// FirmIntelConfig holds firm-website fetch settings
type FirmIntelConfig struct {
	FetchTimeout int // seconds
	MaxBodyBytes int64
}

// PostgresConfig holds the optional activity-log database configuration.
// Logging is disabled entirely when DSN is empty.
type PostgresConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			APIBase:     getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			ChatModel:   getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.2),
			MaxTokens:   getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 2048),
			Timeout:     getEnvAsInt("OPENAI_TIMEOUT", 12),
			Enabled:     getEnv("OPENAI_API_KEY", "") != "",
		},
		Synth: SynthConfig{
			DefaultCount: getEnvAsInt("SYNTH_DEFAULT_COUNT", 12),
			MaxCount:     getEnvAsInt("SYNTH_MAX_COUNT", 60),
		},
		FirmIntel: FirmIntelConfig{
			FetchTimeout: getEnvAsInt("FIRM_FETCH_TIMEOUT", 8),
			MaxBodyBytes: int64(getEnvAsInt("FIRM_MAX_BODY_KB", 512)) * 1024,
		},
		Postgres: PostgresConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Synth.MaxCount < cfg.Synth.DefaultCount {
		return nil, fmt.Errorf("SYNTH_MAX_COUNT (%d) must be >= SYNTH_DEFAULT_COUNT (%d)",
			cfg.Synth.MaxCount, cfg.Synth.DefaultCount)
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
