package services

import (
	"math"

	"agroai-api/internal/models"
)

// DurationPalette colours the duration breakdown, cycling when there are more crops than colours
var DurationPalette = []string{"#10B981", "#F59E0B", "#3B82F6", "#EF4444"}

// HighRiskThreshold separates "low" from "high" risk bars
const HighRiskThreshold = 50.0

// FinanceBar is one group of the cost/profit bar chart
type FinanceBar struct {
	CropName        string  `json:"cropName"`
	EstimatedCost   float64 `json:"estimatedCost"`
	EstimatedProfit float64 `json:"estimatedProfit"`
}

// RiskBar is one horizontal bar of the risk chart
type RiskBar struct {
	CropName   string  `json:"cropName"`
	RiskFactor float64 `json:"riskFactor"`
	Level      string  `json:"level"` // "low" or "high"
}

// DurationSlice is one slice of the maturation breakdown
type DurationSlice struct {
	CropName       string  `json:"cropName"`
	DurationMonths float64 `json:"durationMonths"`
	Share          float64 `json:"share"` // percent of the total, 1 decimal
	Color          string  `json:"color"`
}

// AnalyticsView is the chart data of the analytics screen
type AnalyticsView struct {
	Empty      bool            `json:"empty"`
	Message    string          `json:"message,omitempty"`
	Finance    []FinanceBar    `json:"finance"`
	Risk       []RiskBar       `json:"risk"`
	RiskDomain [2]float64      `json:"riskDomain"`
	Duration   []DurationSlice `json:"duration"`
}

// BuildAnalytics derives the chart data from a recommendation sequence.
// It keeps the input order and does not modify recs.
func BuildAnalytics(recs []models.CropRecommendation) AnalyticsView {
	view := AnalyticsView{
		Finance:    make([]FinanceBar, 0, len(recs)),
		Risk:       make([]RiskBar, 0, len(recs)),
		RiskDomain: [2]float64{0, 100},
		Duration:   make([]DurationSlice, 0, len(recs)),
	}
	if len(recs) == 0 {
		view.Empty = true
		view.Message = models.AnalyticsEmptyMessage
		return view
	}

	var totalMonths float64
	for _, rec := range recs {
		totalMonths += rec.DurationMonths
	}

	for i, rec := range recs {
		view.Finance = append(view.Finance, FinanceBar{
			CropName:        rec.CropName,
			EstimatedCost:   rec.EstimatedCost,
			EstimatedProfit: rec.EstimatedProfit,
		})

		level := "low"
		if rec.RiskFactor > HighRiskThreshold {
			level = "high"
		}
		view.Risk = append(view.Risk, RiskBar{
			CropName:   rec.CropName,
			RiskFactor: rec.RiskFactor,
			Level:      level,
		})

		var share float64
		if totalMonths > 0 {
			share = math.Round(rec.DurationMonths/totalMonths*1000) / 10
		}
		view.Duration = append(view.Duration, DurationSlice{
			CropName:       rec.CropName,
			DurationMonths: rec.DurationMonths,
			Share:          share,
			Color:          DurationPalette[i%len(DurationPalette)],
		})
	}
	return view
}
