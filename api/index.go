package handler

import (
	"context"
	"log"
	"net/http"
	"sync"

	config "agroai-api/configs"
	"agroai-api/internal/logging"
	"agroai-api/internal/router"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	app     http.Handler
	initErr error
	once    sync.Once
)

// setupApp builds the engine once per function instance.
func setupApp() (http.Handler, error) {
	once.Do(func() {
		// Vercel injects the environment, so no godotenv here
		cfg := config.LoadConfig()

		logger, err := logging.New(cfg.Environment, cfg.LogLevel)
		if err != nil {
			log.Printf("Failed to initialize logger, falling back to production defaults: %v", err)
			logger, _ = zap.NewProduction()
		}

		gin.SetMode(gin.ReleaseMode)
		app, initErr = router.NewFromConfig(context.Background(), cfg, logger)
		if initErr != nil {
			logger.Error("Failed to initialize application", zap.Error(initErr))
		}
	})
	return app, initErr
}

// Handler is the Vercel entry point for every request
func Handler(w http.ResponseWriter, r *http.Request) {
	h, err := setupApp()
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	h.ServeHTTP(w, r)
}
