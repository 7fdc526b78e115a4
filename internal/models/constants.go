package models

import "slices"

// SoilTypes are the soil options offered by the recommendation form
var SoilTypes = []string{
	"Qora tuproq (Chernozem)",
	"Qumloq (Sandy)",
	"Gil tuproq (Clay)",
	"Sho'rlangan (Saline)",
	"Bo'z tuproq (Serozem)",
}

// Goals are the farmer goals offered by the recommendation form
var Goals = []string{
	"Maksimal foyda (High Profit)",
	"Barqaror daromad (Stability)",
	"Kam xarajat (Low Cost)",
	"Eksport (Export potential)",
	"Tuproq unumdorligini oshirish",
}

// Seasons are the planting seasons offered by the recommendation form
var Seasons = []string{
	"Bahor (Mart-May)",
	"Yoz (Iyun-Avgust)",
	"Kuz (Sentabr-Noyabr)",
	"Qish (Dekabr-Fevral)",
}

func IsSoilType(s string) bool { return slices.Contains(SoilTypes, s) }
func IsGoal(s string) bool     { return slices.Contains(Goals, s) }
func IsSeason(s string) bool   { return slices.Contains(Seasons, s) }

// DefaultRecommendationRequest is the initial state of the recommendation form
func DefaultRecommendationRequest() RecommendationRequest {
	return RecommendationRequest{
		LandSize: 1,
		SoilType: SoilTypes[0],
		Season:   Seasons[0],
		Goal:     Goals[0],
	}
}

// StaticWeather is the weather card shown when no live source is configured.
// Date is filled in by the weather service.
var StaticWeather = WeatherData{
	Temp:      24,
	Humidity:  45,
	WindSpeed: 12,
	Condition: "Quyoshli",
	Location:  "Toshkent, O'zbekiston",
}

// User-facing messages
const (
	ChatGreeting          = "Assalomu alaykum! Men AgroAI yordamchisiman. Sizga qanday yordam bera olaman? Ekinlar, o'g'itlar yoki kasalliklar haqida so'rang."
	ChatApology           = "Uzr, xatolik yuz berdi. Iltimos keyinroq urinib ko'ring."
	DiseaseErrorMessage   = "Xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring yoki API kalitni tekshiring."
	RecommendationError   = "Tavsiya olishda xatolik yuz berdi."
	AnalyticsEmptyMessage = "Ma'lumot yo'q. Avval \"Ekin Tavsiyasi\" bo'limida tahlilni bajaring."
	HealthySentinel       = "Sog'lom"
)
