// Package config provides configuration for the travel chatbot backend.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the backend configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// OpenRouter (completion provider)
	OpenRouterURL    string
	OpenRouterAPIKey string
	ChatModel        string
	VisionModel      string
	LLMTimeout       time.Duration

	// Amadeus (tool provider)
	AmadeusURL          string
	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusTimeout      time.Duration

	// Orchestration
	MaxToolRounds int
	SessionTTL    time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:            getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:         getEnv("DATABASE_URL", "file:tripwise.db?cache=shared&mode=rwc"),
		OpenRouterURL:       getEnv("OPENROUTER_URL", "https://openrouter.ai/api"),
		OpenRouterAPIKey:    getEnv("OPENROUTER_API_KEY", ""),
		ChatModel:           getEnv("CHAT_MODEL", "anthropic/claude-sonnet-4"),
		VisionModel:         getEnv("VISION_MODEL", "openai/gpt-4o"),
		LLMTimeout:          time.Duration(getEnvInt("LLM_TIMEOUT_MS", 90000)) * time.Millisecond,
		AmadeusURL:          getEnv("AMADEUS_URL", "https://test.api.amadeus.com"),
		AmadeusClientID:     getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret: getEnv("AMADEUS_CLIENT_SECRET", ""),
		AmadeusTimeout:      time.Duration(getEnvInt("AMADEUS_TIMEOUT_MS", 30000)) * time.Millisecond,
		MaxToolRounds:       getEnvInt("MAX_TOOL_ROUNDS", 10),
		SessionTTL:          time.Duration(getEnvInt("SESSION_TTL_MIN", 30)) * time.Minute,
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
