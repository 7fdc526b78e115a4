package handlers

import (
	"net/http"

	"agroai-api/internal/models"
	"agroai-api/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SubmitRecommendation runs the crop recommendation flow.
// On success the results replace the previous ones and the session moves to the analytics view.
func (h *SessionHandler) SubmitRecommendation(c *gin.Context) {
	id := c.Param("id")

	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Noto'g'ri so'rov: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.store.BeginRecommendation(id, req); err != nil {
		respondStoreError(c, err)
		return
	}

	recs, err := h.advisor.GetCropRecommendations(c.Request.Context(), req)
	if err != nil {
		logAdapterError(h.logger, "recommendations", id, err)
		s, storeErr := h.store.FailRecommendation(id, models.RecommendationError)
		if storeErr != nil {
			respondStoreError(c, storeErr)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   models.RecommendationError,
			"data":    s,
		})
		return
	}

	s, err := h.store.CompleteRecommendation(id, recs)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.logger.Info("Recommendations stored", zap.String("session_id", id), zap.Int("count", len(recs)))
	respondOK(c, http.StatusOK, s)
}

// GetRecommendations returns the form and the last results
func (h *SessionHandler) GetRecommendations(c *gin.Context) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"form":            s.Form,
		"recommendations": s.Recommendations,
		"loading":         s.RecommendationLoading,
		"error":           s.RecommendationError,
	})
}

// GetAnalytics returns chart data for the last results
func (h *SessionHandler) GetAnalytics(c *gin.Context) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, services.BuildAnalytics(s.Recommendations))
}

// ExportAnalytics downloads the last results as an xlsx workbook
func (h *SessionHandler) ExportAnalytics(c *gin.Context) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	buf, err := h.exporter.RecommendationsWorkbook(s.Recommendations)
	if err != nil {
		h.logger.Error("Workbook export failed", zap.String("session_id", s.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Eksport qilishda xatolik yuz berdi")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="agroai-tavsiyalar.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
