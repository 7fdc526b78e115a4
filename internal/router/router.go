// Package router wires services and handlers into a gin engine.
package router

import (
	"context"
	"fmt"

	config "agroai-api/configs"
	"agroai-api/internal/handlers"
	"agroai-api/internal/services"
	"agroai-api/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the components served by the API
type Dependencies struct {
	Store      *store.SessionStore
	Advisor    handlers.Advisor
	Weather    handlers.WeatherProvider
	Exporter   *services.ExportService
	Monitoring *services.MonitoringService
	Logger     *zap.Logger
}

// NewFromConfig builds every service from cfg and returns the engine
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	assistantPrompt := ""
	persona, err := config.LoadAssistantPrompt(cfg.AssistantPromptPath)
	if err != nil {
		logger.Warn("Using built-in assistant prompt", zap.Error(err))
	} else {
		assistantPrompt = persona.BuildPrompt()
	}

	if cfg.GeminiAPIKey == "" {
		logger.Error("GEMINI_API_KEY is not set; assistant calls will fail")
	}
	gemini, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, assistantPrompt, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini service: %w", err)
	}

	return New(Dependencies{
		Store:      store.NewSessionStore(logger),
		Advisor:    gemini,
		Weather:    NewWeatherService(cfg.Weather, logger),
		Exporter:   services.NewExportService(),
		Monitoring: services.NewMonitoringService(logger),
		Logger:     logger,
	}), nil
}

// NewWeatherService returns a live OpenWeatherMap service when cfg has a key,
// otherwise one that always serves the static snapshot.
func NewWeatherService(cfg *config.OpenWeatherMapConfig, logger *zap.Logger) *services.WeatherService {
	if !cfg.Enabled() {
		logger.Info("OPENWEATHERMAP_API_KEY is not set; serving static weather")
		return services.NewWeatherService("", "", logger)
	}
	return services.NewWeatherService(cfg.APIKey, cfg.BaseURL, logger)
}

// New registers middleware and routes
func New(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(deps.Monitoring.LoggingMiddleware())
	r.Use(cors.Default())

	sessionHandler := handlers.NewSessionHandler(deps.Store, deps.Advisor, deps.Weather, deps.Exporter, deps.Logger)
	weatherHandler := handlers.NewWeatherHandler(deps.Weather)
	monitoringHandler := handlers.NewMonitoringHandler(deps.Monitoring)

	r.GET("/health", handlers.HealthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/options", handlers.GetOptions)
		v1.GET("/weather", weatherHandler.GetWeather)

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}

		v1.POST("/sessions", sessionHandler.CreateSession)
		session := v1.Group("/sessions/:id")
		{
			session.GET("", sessionHandler.GetSession)
			session.PUT("/tab", sessionHandler.SetTab)
			session.GET("/dashboard", sessionHandler.GetDashboard)

			session.POST("/recommendations", sessionHandler.SubmitRecommendation)
			session.GET("/recommendations", sessionHandler.GetRecommendations)
			session.GET("/analytics", sessionHandler.GetAnalytics)
			session.GET("/analytics/export", sessionHandler.ExportAnalytics)

			session.POST("/disease/image", sessionHandler.UploadImage)
			session.POST("/disease/analyze", sessionHandler.AnalyzeDisease)

			session.GET("/chat", sessionHandler.GetChat)
			session.POST("/chat", sessionHandler.SendChat)
		}
	}

	return r
}
