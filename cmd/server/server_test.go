package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	config "agroai-api/configs"
	"agroai-api/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newApp(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("OPENWEATHERMAP_API_KEY", "")
	t.Setenv("ASSISTANT_PROMPT_PATH", "../../configs/assistant_prompt.yaml")

	r, err := router.NewFromConfig(context.Background(), config.LoadConfig(), zap.NewNop())
	require.NoError(t, err)
	return r
}

func TestRouterSetup(t *testing.T) {
	r := newApp(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/v1/options", http.StatusOK},
		{http.MethodGet, "/api/v1/weather", http.StatusOK},
		{http.MethodGet, "/api/v1/monitoring/logs?period=1h", http.StatusOK},
		{http.MethodPost, "/api/v1/sessions", http.StatusCreated},
		{http.MethodGet, "/api/v1/sessions/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		req, err := http.NewRequest(tt.method, tt.path, nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.status, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestMissingAPIKeyReturnsLocalizedErrors(t *testing.T) {
	r := newApp(t)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	id := extractID(t, w.Body.Bytes())
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/chat", jsonBody(`{"message":"Salom"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Uzr, xatolik yuz berdi.")
}
