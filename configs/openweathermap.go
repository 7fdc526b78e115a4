package config

// OpenWeatherMapConfig holds the OpenWeatherMap API settings
type OpenWeatherMapConfig struct {
	APIKey  string
	BaseURL string
}

// GetOpenWeatherMapConfig reads the OpenWeatherMap settings from the environment
func GetOpenWeatherMapConfig() *OpenWeatherMapConfig {
	return &OpenWeatherMapConfig{
		APIKey:  getEnv("OPENWEATHERMAP_API_KEY", ""),
		BaseURL: getEnv("OPENWEATHERMAP_BASE_URL", "https://api.openweathermap.org/data/2.5"),
	}
}

// Enabled reports whether live weather can be fetched
func (c *OpenWeatherMapConfig) Enabled() bool {
	return c != nil && c.APIKey != ""
}
