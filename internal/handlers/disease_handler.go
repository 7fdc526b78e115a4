package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"agroai-api/internal/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxImageSize      = 10 << 20 // 10MB
	// base64 of a maxImageSize photo plus the data URL prefix and multipart framing
	maxUploadBodySize = maxImageSize/3*4 + 64<<10
)

const imageTooLargeMessage = "Rasm hajmi 10MB dan oshmasligi kerak"

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

type imageRequest struct {
	Image string `json:"image" binding:"required"`
}

// UploadImage stores a plant photo, sent either as multipart "file" or as JSON {"image": dataURL}.
// Any previous diagnosis is discarded.
func (h *SessionHandler) UploadImage(c *gin.Context) {
	id := c.Param("id")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBodySize)

	var dataURL string
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, _, err := c.Request.FormFile("file")
		if isBodyTooLarge(err) {
			respondError(c, http.StatusRequestEntityTooLarge, imageTooLargeMessage)
			return
		}
		if err != nil {
			respondError(c, http.StatusBadRequest, "Rasm faylini olishda xatolik")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Rasm faylini o'qishda xatolik")
			return
		}
		if len(data) > maxImageSize {
			respondError(c, http.StatusRequestEntityTooLarge, imageTooLargeMessage)
			return
		}
		mime := mimetype.Detect(data)
		if !strings.HasPrefix(mime.String(), "image/") {
			respondError(c, http.StatusBadRequest, "Faqat rasm fayllari qabul qilinadi (JPG, PNG)")
			return
		}
		dataURL = "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
	} else {
		var req imageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if isBodyTooLarge(err) {
				respondError(c, http.StatusRequestEntityTooLarge, imageTooLargeMessage)
				return
			}
			respondError(c, http.StatusBadRequest, "Noto'g'ri so'rov: "+err.Error())
			return
		}
		if !strings.HasPrefix(req.Image, "data:image/") || !strings.Contains(req.Image, ",") {
			respondError(c, http.StatusBadRequest, "Rasm data URL ko'rinishida bo'lishi kerak")
			return
		}
		dataURL = req.Image
	}

	s, err := h.store.SetImage(id, dataURL)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, diseaseView(s.Image, s.DiseaseResult, s.DiseaseError, s.DiseaseLoading))
}

// AnalyzeDisease diagnoses the uploaded photo
func (h *SessionHandler) AnalyzeDisease(c *gin.Context) {
	id := c.Param("id")

	payload, err := h.store.BeginDiseaseAnalysis(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	result, err := h.advisor.AnalyzeDisease(c.Request.Context(), payload)
	if err != nil {
		logAdapterError(h.logger, "disease", id, err)
		s, storeErr := h.store.FailDiseaseAnalysis(id, models.DiseaseErrorMessage)
		if storeErr != nil {
			respondStoreError(c, storeErr)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   models.DiseaseErrorMessage,
			"data":    diseaseView(s.Image, s.DiseaseResult, s.DiseaseError, s.DiseaseLoading),
		})
		return
	}

	s, err := h.store.CompleteDiseaseAnalysis(id, *result)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.logger.Info("Disease analyzed", zap.String("session_id", id), zap.String("disease", result.DiseaseName))
	respondOK(c, http.StatusOK, diseaseView(s.Image, s.DiseaseResult, s.DiseaseError, s.DiseaseLoading))
}

func diseaseView(image string, result *models.DiseaseResult, errMsg string, loading bool) gin.H {
	return gin.H{
		"image":   image,
		"result":  result,
		"healthy": result != nil && strings.Contains(result.DiseaseName, models.HealthySentinel),
		"error":   errMsg,
		"loading": loading,
	}
}
