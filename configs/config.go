package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	Port                string
	Environment         string
	LogLevel            string
	GeminiAPIKey        string
	GeminiModel         string
	AssistantPromptPath string
	Weather             *OpenWeatherMapConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AssistantPromptPath: getEnv("ASSISTANT_PROMPT_PATH", "configs/assistant_prompt.yaml"),
		Weather:             GetOpenWeatherMapConfig(),
	}
}

// IsDevelopment reports whether the server runs in the development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
