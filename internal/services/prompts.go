package services

import (
	"fmt"
	"strconv"

	"agroai-api/internal/models"

	"google.golang.org/genai"
)

// Prompts and response schemas sent to Gemini. The wording is Uzbek because the
// answers are shown to the farmer verbatim.

const diseasePrompt = `
Sen professional agronomsan. Quyidagi rasmdagi o'simlikni tahlil qil.
1. O'simlik turini aniqla.
2. Unda qanday kasallik yoki zararkunanda borligini aniqla.
3. Agar o'simlik sog'lom bo'lsa, "` + models.HealthySentinel + `" deb yoz.
4. Davolash bo'yicha qisqa va aniq tavsiyalar ber (o'zbek tilida).

Javobni JSON formatida qaytar:
{
  "diseaseName": "Kasallik nomi",
  "confidence": 95,
  "description": "Qisqacha ta'rif",
  "treatment": "Davolash choralari"
}
`

const recommendationPromptTemplate = `
Fermer xo'jaligi uchun qaror qabul qilish tizimi (DSS) sifatida ishla.
Ma'lumotlar:
- Yer maydoni: %s gektar
- Tuproq turi: %s
- Mavsum: %s
- Fermerning maqsadi: %s

O'zbekiston sharoitini hisobga olgan holda, ushbu shartlarga eng mos keladigan 3-4 ta ekin turini taklif qil.
Har bir ekin uchun taxminiy xarajat (1 gektar uchun USD hisobida), kutilayotgan foyda (USD), risk darajasi (0-100%%) va yetilish muddatini (oy) hisobla.
Risk omillarini (ob-havo, kasallik, bozor) hisobga ol.
`

// DefaultAssistantPrompt primes the chat when no persona file is configured
const DefaultAssistantPrompt = "Sen AgroAI Pro tizimisining aqlli yordamchisisan. Fermerlarga o'zbek tilida, aniq va foydali maslahatlar berasan. Ekinlar, o'g'itlar, kasalliklar va bozor narxlari bo'yicha ekspert kabi javob ber."

func recommendationPrompt(req models.RecommendationRequest) string {
	return fmt.Sprintf(recommendationPromptTemplate,
		strconv.FormatFloat(req.LandSize, 'f', -1, 64),
		req.SoilType,
		req.Season,
		req.Goal,
	)
}

func diseaseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"diseaseName": {Type: genai.TypeString},
			"confidence":  {Type: genai.TypeNumber},
			"description": {Type: genai.TypeString},
			"treatment":   {Type: genai.TypeString},
		},
		Required: []string{"diseaseName", "confidence", "description", "treatment"},
	}
}

func recommendationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"cropName":        {Type: genai.TypeString, Description: "Ekin nomi"},
				"reason":          {Type: genai.TypeString, Description: "Nima uchun tavsiya qilingani"},
				"estimatedCost":   {Type: genai.TypeNumber, Description: "Gektariga xarajat ($)"},
				"estimatedProfit": {Type: genai.TypeNumber, Description: "Gektariga kutilayotgan foyda ($)"},
				"riskFactor":      {Type: genai.TypeNumber, Description: "Risk foizi (0-100)"},
				"durationMonths":  {Type: genai.TypeNumber, Description: "Yetilish muddati (oy)"},
			},
			Required: []string{"cropName", "reason", "estimatedCost", "estimatedProfit", "riskFactor", "durationMonths"},
		},
	}
}
