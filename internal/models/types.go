package models

import (
	"errors"
	"fmt"
	"time"
)

// RecommendationRequest represents one submission of the crop planning form
type RecommendationRequest struct {
	LandSize float64 `json:"landSize"` // hectares
	SoilType string  `json:"soilType"`
	Season   string  `json:"season"`
	Goal     string  `json:"goal"`
}

// ErrInvalidRecommendationRequest is returned by RecommendationRequest.Validate
var ErrInvalidRecommendationRequest = errors.New("invalid recommendation request")

// Validate checks the land size and that every option comes from its fixed list
func (r RecommendationRequest) Validate() error {
	if !(r.LandSize > 0) {
		return fmt.Errorf("%w: land size must be positive, got %v", ErrInvalidRecommendationRequest, r.LandSize)
	}
	if !IsSoilType(r.SoilType) {
		return fmt.Errorf("%w: unknown soil type %q", ErrInvalidRecommendationRequest, r.SoilType)
	}
	if !IsSeason(r.Season) {
		return fmt.Errorf("%w: unknown season %q", ErrInvalidRecommendationRequest, r.Season)
	}
	if !IsGoal(r.Goal) {
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidRecommendationRequest, r.Goal)
	}
	return nil
}

// CropRecommendation represents one candidate crop returned by the model
type CropRecommendation struct {
	CropName        string  `json:"cropName"`
	Reason          string  `json:"reason"`
	EstimatedCost   float64 `json:"estimatedCost"`   // USD per hectare
	EstimatedProfit float64 `json:"estimatedProfit"` // USD per hectare, may be negative
	RiskFactor      float64 `json:"riskFactor"`      // 0-100
	DurationMonths  float64 `json:"durationMonths"`
}

// DiseaseResult represents the diagnosis of one plant photo
type DiseaseResult struct {
	DiseaseName string  `json:"diseaseName"`
	Confidence  float64 `json:"confidence"` // 0-100
	Description string  `json:"description"`
	Treatment   string  `json:"treatment"`
}

// Role identifies the author of a chat message
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether r is one of the two known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// ChatMessage is one entry of a session transcript
type ChatMessage struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatTurn is a role/text pair passed to the assistant as prior history
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Turns converts a transcript into the history shape expected by the assistant
func Turns(messages []ChatMessage) []ChatTurn {
	turns := make([]ChatTurn, len(messages))
	for i, m := range messages {
		turns[i] = ChatTurn{Role: m.Role, Text: m.Text}
	}
	return turns
}

// WeatherData is the display-only weather card shown on the dashboard
type WeatherData struct {
	Temp      float64 `json:"temp"`      // °C
	Humidity  int     `json:"humidity"`  // %
	WindSpeed float64 `json:"windSpeed"` // km/h
	Condition string  `json:"condition"`
	Date      string  `json:"date"`
	Location  string  `json:"location"`
	Live      bool    `json:"live"`
}

// Tab names one of the views of the application
type Tab string

const (
	TabDashboard          Tab = "DASHBOARD"
	TabDiseaseDetection   Tab = "DISEASE_DETECTION"
	TabCropRecommendation Tab = "CROP_RECOMMENDATION"
	TabAnalytics          Tab = "ANALYTICS"
	TabChat               Tab = "CHAT"
)

// Tabs lists the views in sidebar order
var Tabs = []Tab{TabDashboard, TabDiseaseDetection, TabCropRecommendation, TabAnalytics, TabChat}

// Valid reports whether t is a known view
func (t Tab) Valid() bool {
	for _, known := range Tabs {
		if t == known {
			return true
		}
	}
	return false
}
