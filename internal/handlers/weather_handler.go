package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WeatherHandler serves the weather card
type WeatherHandler struct {
	weather WeatherProvider
}

// NewWeatherHandler creates a new WeatherHandler
func NewWeatherHandler(weather WeatherProvider) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// GetWeather returns the current weather card
func (wh *WeatherHandler) GetWeather(c *gin.Context) {
	respondOK(c, http.StatusOK, wh.weather.GetCurrentWeather(c.Request.Context()))
}
