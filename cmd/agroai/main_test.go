package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"agroai-api/internal/models"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAssistant struct {
	req       models.RecommendationRequest
	image     string
	histories [][]models.ChatTurn
	chatErr   error
}

func (f *fakeAssistant) AnalyzeDisease(_ context.Context, base64Image string) (*models.DiseaseResult, error) {
	f.image = base64Image
	return &models.DiseaseResult{DiseaseName: "Zang", Confidence: 80, Description: "d", Treatment: "t"}, nil
}

func (f *fakeAssistant) GetCropRecommendations(_ context.Context, req models.RecommendationRequest) ([]models.CropRecommendation, error) {
	f.req = req
	return []models.CropRecommendation{
		{CropName: "Tarvuz", Reason: "r", EstimatedCost: 900, EstimatedProfit: 2100, RiskFactor: 35, DurationMonths: 3},
	}, nil
}

func (f *fakeAssistant) Chat(_ context.Context, history []models.ChatTurn, message string) (string, error) {
	f.histories = append(f.histories, history)
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return "javob: " + message, nil
}

func run(t *testing.T, fake *fakeAssistant, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("OPENWEATHERMAP_API_KEY", "")

	a := &app{
		logger:       zap.NewNop(),
		newAssistant: func(context.Context) (assistant, error) { return fake, nil },
	}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecommendCommand(t *testing.T) {
	fake := &fakeAssistant{}
	out, err := run(t, fake, "", "recommend",
		"--land", "2.5",
		"--soil", "Qumloq (Sandy)",
		"--season", "Yoz (Iyun-Avgust)",
		"--goal", "Eksport (Export potential)",
		"-o", "json")
	require.NoError(t, err)

	assert.Equal(t, models.RecommendationRequest{
		LandSize: 2.5,
		SoilType: "Qumloq (Sandy)",
		Season:   "Yoz (Iyun-Avgust)",
		Goal:     "Eksport (Export potential)",
	}, fake.req)

	var recs []models.CropRecommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "Tarvuz", recs[0].CropName)
}

func TestRecommendCommandRejectsUnknownSoil(t *testing.T) {
	fake := &fakeAssistant{}
	_, err := run(t, fake, "", "recommend", "--soil", "Mars")
	assert.ErrorIs(t, err, models.ErrInvalidRecommendationRequest)
	assert.Zero(t, fake.req.LandSize)
}

func TestDiagnoseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(path, []byte("ABC"), 0o644))

	fake := &fakeAssistant{}
	out, err := run(t, fake, "", "diagnose", path)
	require.NoError(t, err)
	assert.Equal(t, "QUJD", fake.image)
	assert.Contains(t, out, "Zang")

	_, err = run(t, fake, "", "diagnose", filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestChatCommand(t *testing.T) {
	fake := &fakeAssistant{}
	out, err := run(t, fake, "salom\n\n   \nrahmat\nexit\nignored\n", "chat")
	require.NoError(t, err)

	assert.Contains(t, out, models.ChatGreeting)
	assert.Contains(t, out, "AgroAI: javob: salom")
	assert.Contains(t, out, "AgroAI: javob: rahmat")
	assert.NotContains(t, out, "ignored")

	require.Len(t, fake.histories, 2)
	assert.Len(t, fake.histories[0], 1)
	assert.Len(t, fake.histories[1], 3)
}

func TestChatCommandApology(t *testing.T) {
	fake := &fakeAssistant{chatErr: errors.New("boom")}
	out, err := run(t, fake, "salom\nquit\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, models.ChatApology)
}

func TestWeatherAndOptionsCommands(t *testing.T) {
	out, err := run(t, &fakeAssistant{}, "", "weather", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "condition: Quyoshli")

	out, err = run(t, &fakeAssistant{}, "", "options")
	require.NoError(t, err)
	assert.Contains(t, out, "Qora tuproq (Chernozem)")
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := run(t, &fakeAssistant{}, "", "options", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, &fakeAssistant{}, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "agroai version "+version+"\n", out)
}
