package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"agroai-api/internal/models"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	// DefaultGeminiModel is used when no model is configured
	DefaultGeminiModel = "gemini-2.5-flash"
	// MaxRecommendations caps the number of crops kept from one answer
	MaxRecommendations = 4
)

// ContentGenerator is the remote generation endpoint. *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiService translates domain requests into Gemini calls and parses the answers
type GeminiService struct {
	generator       ContentGenerator
	model           string
	assistantPrompt string
	logger          *zap.Logger
}

// NewGeminiService creates the adapter. An empty apiKey is not an error here:
// the service is created and every operation reports ErrMissingAPIKey.
func NewGeminiService(ctx context.Context, apiKey, model, assistantPrompt string, logger *zap.Logger) (*GeminiService, error) {
	if apiKey == "" {
		return NewGeminiServiceWithGenerator(nil, model, assistantPrompt, logger), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return NewGeminiServiceWithGenerator(client.Models, model, assistantPrompt, logger), nil
}

// NewGeminiServiceWithGenerator creates the adapter on top of an existing generator
func NewGeminiServiceWithGenerator(generator ContentGenerator, model, assistantPrompt string, logger *zap.Logger) *GeminiService {
	if model == "" {
		model = DefaultGeminiModel
	}
	if strings.TrimSpace(assistantPrompt) == "" {
		assistantPrompt = DefaultAssistantPrompt
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiService{
		generator:       generator,
		model:           model,
		assistantPrompt: assistantPrompt,
		logger:          logger.Named("gemini"),
	}
}

// Configured reports whether a credential was supplied
func (s *GeminiService) Configured() bool {
	return s.generator != nil
}

// Model returns the model identifier used for every call
func (s *GeminiService) Model() string {
	return s.model
}

// AnalyzeDisease diagnoses the plant in a base64 encoded photo
func (s *GeminiService) AnalyzeDisease(ctx context.Context, base64Image string) (*models.DiseaseResult, error) {
	const op = "analyzeDisease"
	if !s.Configured() {
		return nil, ErrMissingAPIKey
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(base64Image))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, mime.String())
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime.String()),
			genai.NewPartFromText(diseasePrompt),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   diseaseSchema(),
	}

	text, err := s.generate(ctx, op, contents, config)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	result, err := parseDiseaseResult(text)
	if err != nil {
		s.logger.Warn("Disease response rejected", zap.Error(err))
		return nil, &ParseError{Op: op, Raw: text, Err: err}
	}
	s.logger.Info("Disease analyzed",
		zap.String("disease", result.DiseaseName),
		zap.Float64("confidence", result.Confidence))
	return result, nil
}

// GetCropRecommendations asks for 3-4 crops matching the farm conditions.
// An empty answer yields an empty slice, not an error.
func (s *GeminiService) GetCropRecommendations(ctx context.Context, req models.RecommendationRequest) ([]models.CropRecommendation, error) {
	const op = "getCropRecommendations"
	if !s.Configured() {
		return nil, ErrMissingAPIKey
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(recommendationPrompt(req), genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   recommendationSchema(),
	}

	text, err := s.generate(ctx, op, contents, config)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Warn("Empty recommendation response")
		return []models.CropRecommendation{}, nil
	}

	recs, err := parseRecommendations(text)
	if err != nil {
		s.logger.Warn("Recommendation response rejected", zap.Error(err))
		return nil, &ParseError{Op: op, Raw: text, Err: err}
	}
	if len(recs) > MaxRecommendations {
		s.logger.Warn("Truncating recommendations",
			zap.Int("received", len(recs)),
			zap.Int("kept", MaxRecommendations))
		recs = recs[:MaxRecommendations]
	}
	s.logger.Info("Recommendations received", zap.Int("count", len(recs)))
	return recs, nil
}

// Chat sends one user message. The persona turn goes first, then history as given, then message.
func (s *GeminiService) Chat(ctx context.Context, history []models.ChatTurn, message string) (string, error) {
	const op = "chat"
	if !s.Configured() {
		return "", ErrMissingAPIKey
	}
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	contents, err := s.chatContents(history, message)
	if err != nil {
		return "", err
	}

	text, err := s.generate(ctx, op, contents, nil)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (s *GeminiService) chatContents(history []models.ChatTurn, message string) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(history)+2)
	contents = append(contents, genai.NewContentFromText(s.assistantPrompt, genai.RoleUser))
	for i, turn := range history {
		if !turn.Role.Valid() {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidRole, turn.Role, i)
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))
	return contents, nil
}

func (s *GeminiService) generate(ctx context.Context, op string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	resp, err := s.generator.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		s.logger.Error("Gemini call failed", zap.String("op", op), zap.Error(err))
		return "", &ServiceError{Op: op, Err: err}
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

type diseaseResultWire struct {
	DiseaseName *string  `json:"diseaseName"`
	Confidence  *float64 `json:"confidence"`
	Description *string  `json:"description"`
	Treatment   *string  `json:"treatment"`
}

func parseDiseaseResult(text string) (*models.DiseaseResult, error) {
	var wire diseaseResultWire
	if err := json.Unmarshal([]byte(stripFences(text)), &wire); err != nil {
		return nil, err
	}

	var missing []string
	if wire.DiseaseName == nil || strings.TrimSpace(*wire.DiseaseName) == "" {
		missing = append(missing, "diseaseName")
	}
	if wire.Confidence == nil {
		missing = append(missing, "confidence")
	}
	if wire.Description == nil {
		missing = append(missing, "description")
	}
	if wire.Treatment == nil {
		missing = append(missing, "treatment")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	if *wire.Confidence < 0 || *wire.Confidence > 100 {
		return nil, fmt.Errorf("confidence %v outside [0,100]", *wire.Confidence)
	}

	return &models.DiseaseResult{
		DiseaseName: *wire.DiseaseName,
		Confidence:  *wire.Confidence,
		Description: *wire.Description,
		Treatment:   *wire.Treatment,
	}, nil
}

type cropRecommendationWire struct {
	CropName        *string  `json:"cropName"`
	Reason          *string  `json:"reason"`
	EstimatedCost   *float64 `json:"estimatedCost"`
	EstimatedProfit *float64 `json:"estimatedProfit"`
	RiskFactor      *float64 `json:"riskFactor"`
	DurationMonths  *float64 `json:"durationMonths"`
}

func parseRecommendations(text string) ([]models.CropRecommendation, error) {
	var wire []cropRecommendationWire
	if err := json.Unmarshal([]byte(stripFences(text)), &wire); err != nil {
		return nil, err
	}

	recs := make([]models.CropRecommendation, 0, len(wire))
	for i, w := range wire {
		rec, err := w.toModel()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (w cropRecommendationWire) toModel() (models.CropRecommendation, error) {
	var missing []string
	if w.CropName == nil || strings.TrimSpace(*w.CropName) == "" {
		missing = append(missing, "cropName")
	}
	if w.Reason == nil {
		missing = append(missing, "reason")
	}
	if w.EstimatedCost == nil {
		missing = append(missing, "estimatedCost")
	}
	if w.EstimatedProfit == nil {
		missing = append(missing, "estimatedProfit")
	}
	if w.RiskFactor == nil {
		missing = append(missing, "riskFactor")
	}
	if w.DurationMonths == nil {
		missing = append(missing, "durationMonths")
	}
	if len(missing) > 0 {
		return models.CropRecommendation{}, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	var errs []error
	if *w.EstimatedCost < 0 {
		errs = append(errs, fmt.Errorf("estimatedCost %v is negative", *w.EstimatedCost))
	}
	if *w.RiskFactor < 0 || *w.RiskFactor > 100 {
		errs = append(errs, fmt.Errorf("riskFactor %v outside [0,100]", *w.RiskFactor))
	}
	if *w.DurationMonths <= 0 {
		errs = append(errs, fmt.Errorf("durationMonths %v is not positive", *w.DurationMonths))
	}
	if err := errors.Join(errs...); err != nil {
		return models.CropRecommendation{}, err
	}

	return models.CropRecommendation{
		CropName:        *w.CropName,
		Reason:          *w.Reason,
		EstimatedCost:   *w.EstimatedCost,
		EstimatedProfit: *w.EstimatedProfit,
		RiskFactor:      *w.RiskFactor,
		DurationMonths:  *w.DurationMonths,
	}, nil
}

var fencePattern = regexp.MustCompile("```[a-zA-Z]*\n|```")

// stripFences removes markdown code fences such as ```json ... ``` so JSON can be parsed
func stripFences(text string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
}
