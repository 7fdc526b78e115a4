package handlers

import (
	"net/http"

	"agroai-api/internal/models"
	"agroai-api/internal/services"
	"agroai-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler serves the views of one session
type SessionHandler struct {
	store    *store.SessionStore
	advisor  Advisor
	weather  WeatherProvider
	exporter *services.ExportService
	logger   *zap.Logger
}

// NewSessionHandler creates the handler for all session scoped views
func NewSessionHandler(st *store.SessionStore, advisor Advisor, weather WeatherProvider, exporter *services.ExportService, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{
		store:    st,
		advisor:  advisor,
		weather:  weather,
		exporter: exporter,
		logger:   logger.Named("handlers"),
	}
}

// CreateSession starts a new session
func (h *SessionHandler) CreateSession(c *gin.Context) {
	respondOK(c, http.StatusCreated, h.store.Create())
}

// GetSession returns the full session state
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, s)
}

type setTabRequest struct {
	Tab models.Tab `json:"tab" binding:"required"`
}

// SetTab switches the active view
func (h *SessionHandler) SetTab(c *gin.Context) {
	var req setTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Noto'g'ri so'rov: "+err.Error())
		return
	}
	s, err := h.store.SetActiveTab(c.Param("id"), req.Tab)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"activeTab": s.ActiveTab})
}

// Shortcut links the dashboard to another view
type Shortcut struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tab         models.Tab `json:"tab"`
}

// DashboardView is the landing view of a session
type DashboardView struct {
	Greeting  string             `json:"greeting"`
	Subtitle  string             `json:"subtitle"`
	Weather   models.WeatherData `json:"weather"`
	Shortcuts []Shortcut         `json:"shortcuts"`
}

var dashboardShortcuts = []Shortcut{
	{
		Title:       "Hosilni Rejalashtirish",
		Description: "Yeringiz va maqsadingizga mos ekinlarni sun'iy intellekt yordamida tanlang.",
		Tab:         models.TabCropRecommendation,
	},
	{
		Title:       "Kasallikni Aniqlash",
		Description: "O'simlik rasmini yuklang va tezkor diagnoz oling.",
		Tab:         models.TabDiseaseDetection,
	},
}

// GetDashboard returns the welcome banner, the weather card and the shortcuts
func (h *SessionHandler) GetDashboard(c *gin.Context) {
	if _, err := h.store.Get(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, DashboardView{
		Greeting:  "Xush kelibsiz, Fermer!",
		Subtitle:  "Bugun ekinlaringiz uchun ajoyib kun.",
		Weather:   h.weather.GetCurrentWeather(c.Request.Context()),
		Shortcuts: dashboardShortcuts,
	})
}
