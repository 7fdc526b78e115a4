package handlers

import (
	"context"
	"errors"
	"net/http"

	"agroai-api/internal/models"
	"agroai-api/internal/services"
	"agroai-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Advisor is the assistant used by the views. *services.GeminiService implements it.
type Advisor interface {
	AnalyzeDisease(ctx context.Context, base64Image string) (*models.DiseaseResult, error)
	GetCropRecommendations(ctx context.Context, req models.RecommendationRequest) ([]models.CropRecommendation, error)
	Chat(ctx context.Context, history []models.ChatTurn, message string) (string, error)
}

// WeatherProvider returns the weather card. *services.WeatherService implements it.
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context) models.WeatherData
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondStoreError maps session store errors to HTTP statuses
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, "Sessiya topilmadi")
	case errors.Is(err, store.ErrBusy):
		respondError(c, http.StatusConflict, "So'rov bajarilmoqda, iltimos kuting")
	case errors.Is(err, store.ErrNoImage):
		respondError(c, http.StatusBadRequest, "Avval rasm yuklang")
	case errors.Is(err, store.ErrEmptyMessage):
		respondError(c, http.StatusBadRequest, "Xabar bo'sh bo'lmasligi kerak")
	case errors.Is(err, store.ErrUnknownTab):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

// logAdapterError logs a failed assistant call. A missing credential is always an error.
func logAdapterError(logger *zap.Logger, op, sessionID string, err error) {
	fields := []zap.Field{zap.String("op", op), zap.String("session_id", sessionID), zap.Error(err)}
	var parseErr *services.ParseError
	switch {
	case errors.Is(err, services.ErrMissingAPIKey):
		logger.Error("Gemini API key is not configured", fields...)
	case errors.As(err, &parseErr):
		logger.Warn("Assistant returned malformed data", append(fields, zap.String("raw", parseErr.Raw))...)
	case errors.Is(err, context.Canceled):
		logger.Info("Assistant call cancelled", fields...)
	default:
		logger.Error("Assistant call failed", fields...)
	}
}
