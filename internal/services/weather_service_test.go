package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agroai-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
}

func TestGetCurrentWeatherStatic(t *testing.T) {
	ws := NewWeatherService("", "", zap.NewNop())
	ws.now = fixedClock

	data := ws.GetCurrentWeather(context.Background())
	assert.Equal(t, 24.0, data.Temp)
	assert.Equal(t, 45, data.Humidity)
	assert.Equal(t, 12.0, data.WindSpeed)
	assert.Equal(t, "Quyoshli", data.Condition)
	assert.Equal(t, "18.10.2026", data.Date)
	assert.False(t, data.Live)
	assert.Empty(t, models.StaticWeather.Date, "snapshot must not be mutated")
}

func TestGetCurrentWeatherLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"main":{"temp":18.6,"humidity":61},"weather":[{"description":"bulutli"}],"wind":{"speed":5}}`))
	}))
	defer srv.Close()

	ws := NewWeatherService("test-key", srv.URL, zap.NewNop())
	ws.now = fixedClock

	data := ws.GetCurrentWeather(context.Background())
	require.True(t, data.Live)
	assert.Equal(t, 19.0, data.Temp)
	assert.Equal(t, 61, data.Humidity)
	assert.Equal(t, 18.0, data.WindSpeed)
	assert.Equal(t, "bulutli", data.Condition)
	assert.Equal(t, "18.10.2026", data.Date)
}

func TestGetCurrentWeatherFallsBackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ws := NewWeatherService("bad-key", srv.URL, zap.NewNop())
	data := ws.GetCurrentWeather(context.Background())
	assert.False(t, data.Live)
	assert.Equal(t, models.StaticWeather.Condition, data.Condition)
}
