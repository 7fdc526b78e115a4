package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"agroai-api/internal/models"

	"go.uber.org/zap"
)

// TashkentCoordinates is the location of the dashboard weather card
var TashkentCoordinates = struct {
	Lat float64
	Lon float64
}{
	Lat: 41.2995,
	Lon: 69.2401,
}

const weatherDateLayout = "02.01.2006"

// WeatherService serves the dashboard weather card.
// Without an OpenWeatherMap key it always returns models.StaticWeather.
type WeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

// NewWeatherService creates a new WeatherService
func NewWeatherService(apiKey, baseURL string, logger *zap.Logger) *WeatherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeatherService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.Named("weather"),
		now:    time.Now,
	}
}

// currentWeatherResponse is the subset of the OpenWeatherMap current weather payload we read
type currentWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
}

// GetCurrentWeather returns the weather card, falling back to the static snapshot on any failure
func (ws *WeatherService) GetCurrentWeather(ctx context.Context) models.WeatherData {
	if ws.apiKey == "" {
		return ws.staticWeather()
	}

	data, err := ws.fetchCurrentWeather(ctx)
	if err != nil {
		ws.logger.Warn("Live weather unavailable, using static snapshot", zap.Error(err))
		return ws.staticWeather()
	}
	return data
}

func (ws *WeatherService) staticWeather() models.WeatherData {
	data := models.StaticWeather
	data.Date = ws.now().Format(weatherDateLayout)
	return data
}

func (ws *WeatherService) fetchCurrentWeather(ctx context.Context) (models.WeatherData, error) {
	url := fmt.Sprintf("%s/weather?lat=%f&lon=%f&appid=%s&units=metric&lang=uz",
		ws.baseURL, TashkentCoordinates.Lat, TashkentCoordinates.Lon, ws.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.WeatherData{}, err
	}
	resp, err := ws.client.Do(req)
	if err != nil {
		return models.WeatherData{}, fmt.Errorf("OpenWeatherMap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.WeatherData{}, fmt.Errorf("OpenWeatherMap returned status %d", resp.StatusCode)
	}

	var owm currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owm); err != nil {
		return models.WeatherData{}, fmt.Errorf("failed to decode OpenWeatherMap response: %w", err)
	}

	data := models.WeatherData{
		Temp:      math.Round(owm.Main.Temp),
		Humidity:  owm.Main.Humidity,
		WindSpeed: math.Round(owm.Wind.Speed * 3.6),
		Condition: models.StaticWeather.Condition,
		Date:      ws.now().Format(weatherDateLayout),
		Location:  models.StaticWeather.Location,
		Live:      true,
	}
	if len(owm.Weather) > 0 && owm.Weather[0].Description != "" {
		data.Condition = owm.Weather[0].Description
	}
	return data, nil
}
