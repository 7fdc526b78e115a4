package handlers

import (
	"net/http"

	"agroai-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GetOptions returns the fixed lists used by the recommendation form and the sidebar
func GetOptions(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"soilTypes": models.SoilTypes,
		"seasons":   models.Seasons,
		"goals":     models.Goals,
		"tabs":      models.Tabs,
		"defaults":  models.DefaultRecommendationRequest(),
	})
}
