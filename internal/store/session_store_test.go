package store

import (
	"sync"
	"testing"

	"agroai-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleRecs() []models.CropRecommendation {
	return []models.CropRecommendation{
		{CropName: "Paxta", Reason: "a", EstimatedCost: 1200, EstimatedProfit: 800, RiskFactor: 40, DurationMonths: 6},
		{CropName: "Bug'doy", Reason: "b", EstimatedCost: 600, EstimatedProfit: 400, RiskFactor: 20, DurationMonths: 8},
	}
}

func TestCreate(t *testing.T) {
	st := NewSessionStore(nil)
	s := st.Create()

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, models.TabCropRecommendation, s.ActiveTab)
	assert.Equal(t, models.DefaultRecommendationRequest(), s.Form)
	assert.Empty(t, s.Recommendations)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, models.RoleModel, s.Messages[0].Role)
	assert.Equal(t, models.ChatGreeting, s.Messages[0].Text)
	assert.Equal(t, 1, st.Len())

	other := st.Create()
	assert.NotEqual(t, s.ID, other.ID)
}

func TestUnknownSession(t *testing.T) {
	st := NewSessionStore(nil)
	_, err := st.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.SetActiveTab("missing", models.TabChat)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.BeginChat("missing", "salom")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.BeginDiseaseAnalysis("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	st := NewSessionStore(nil)
	s := st.Create()
	_, err := st.CompleteRecommendation(s.ID, sampleRecs())
	require.NoError(t, err)

	snap, err := st.Get(s.ID)
	require.NoError(t, err)
	snap.Recommendations[0].CropName = "changed"
	snap.Messages = append(snap.Messages, models.ChatMessage{Text: "x"})

	again, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paxta", again.Recommendations[0].CropName)
	assert.Len(t, again.Messages, 1)
}

func TestSetActiveTab(t *testing.T) {
	st := NewSessionStore(nil)
	s := st.Create()

	got, err := st.SetActiveTab(s.ID, models.TabChat)
	require.NoError(t, err)
	assert.Equal(t, models.TabChat, got.ActiveTab)

	_, err = st.SetActiveTab(s.ID, "SETTINGS")
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestRecommendationFlow(t *testing.T) {
	st := NewSessionStore(nil)
	s := st.Create()
	req := models.RecommendationRequest{LandSize: 2.5, SoilType: models.SoilTypes[1], Season: models.Seasons[1], Goal: models.Goals[3]}

	got, err := st.BeginRecommendation(s.ID, req)
	require.NoError(t, err)
	assert.True(t, got.RecommendationLoading)
	assert.Equal(t, req, got.Form)

	_, err = st.BeginRecommendation(s.ID, req)
	assert.ErrorIs(t, err, ErrBusy)

	got, err = st.CompleteRecommendation(s.ID, sampleRecs())
	require.NoError(t, err)
	assert.False(t, got.RecommendationLoading)
	assert.Equal(t, models.TabAnalytics, got.ActiveTab)
	assert.Equal(t, sampleRecs(), got.Recommendations)
}

func TestFailRecommendationKeepsResults(t *testing.T) {
	st := NewSessionStore(nil)
	s := st.Create()
	_, err := st.CompleteRecommendation(s.ID, sampleRecs())
	require.NoError(t, err)
	_, err = st.SetActiveTab(s.ID, models.TabCropRecommendation)
	require.NoError(t, err)

	_, err = st.BeginRecommendation(s.ID, models.DefaultRecommendationRequest())
	require.NoError(t, err)
	got, err := st.FailRecommendation(s.ID, models.RecommendationError)
	require.NoError(t, err)

	assert.False(t, got.RecommendationLoading)
	assert.Equal(t, models.RecommendationError, got.RecommendationError)
	assert.Equal(t, sampleRecs(), got.Recommendations)
	assert.Equal(t, models.TabCropRecommendation, got.ActiveTab)
}

func TestDiseaseFlow(t *testing.T) {
	st := NewSessionStore(nil)
	s := st.Create()

	_, err := st.BeginDiseaseAnalysis(s.ID)
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = st.SetImage(s.ID, "data:image/png;base64,QUJD")
	require.NoError(t, err)

	payload, err := st.BeginDiseaseAnalysis(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "QUJD", payload)

	_, err = st.BeginDiseaseAnalysis(s.ID)
	assert.ErrorIs(t, err, ErrBusy)

	got, err := st.CompleteDiseaseAnalysis(s.ID, models.DiseaseResult{DiseaseName: "Zang", Confidence: 90})
	require.NoError(t, err)
	assert.False(t, got.DiseaseLoading)
	require.NotNil(t, got.DiseaseResult)
	assert.Equal(t, "Zang", got.DiseaseResult.DiseaseName)

	got, err = st.SetImage(s.ID, "data:image/jpeg;base64,REVG")
	require.NoError(t, err)
	assert.Nil(t, got.DiseaseResult)
	assert.Empty(t, got.DiseaseError)
}

func TestSetImageRejectedDuringAnalysis(t *testing.T) {
	st := NewSessionStore(nil)
	s := st.Create()
	_, err := st.SetImage(s.ID, "data:image/png;base64,QUFBQQ==")
	require.NoError(t, err)
	_, err = st.BeginDiseaseAnalysis(s.ID)
	require.NoError(t, err)

	_, err = st.SetImage(s.ID, "data:image/png;base64,QkJCQg==")
	assert.ErrorIs(t, err, ErrBusy)

	got, err := st.CompleteDiseaseAnalysis(s.ID, models.DiseaseResult{DiseaseName: "Zang", Confidence: 90})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QUFBQQ==", got.Image)
	require.NotNil(t, got.DiseaseResult)

	// once the analysis is done a new photo replaces the diagnosis
	got, err = st.SetImage(s.ID, "data:image/png;base64,QkJCQg==")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QkJCQg==", got.Image)
	assert.Nil(t, got.DiseaseResult)
}

func TestFailDiseaseAnalysis(t *testing.T) {
	st := NewSessionStore(nil)
	s := st.Create()
	_, err := st.SetImage(s.ID, "data:image/png;base64,QUJD")
	require.NoError(t, err)
	_, err = st.BeginDiseaseAnalysis(s.ID)
	require.NoError(t, err)

	got, err := st.FailDiseaseAnalysis(s.ID, models.DiseaseErrorMessage)
	require.NoError(t, err)
	assert.False(t, got.DiseaseLoading)
	assert.Equal(t, models.DiseaseErrorMessage, got.DiseaseError)
	assert.Nil(t, got.DiseaseResult)

	// a retry clears the error
	_, err = st.BeginDiseaseAnalysis(s.ID)
	require.NoError(t, err)
	got, err = st.Get(s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.DiseaseError)
}

func TestChatFlow(t *testing.T) {
	st := NewSessionStore(nil)
	s := st.Create()

	_, err := st.BeginChat(s.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	history, err := st.BeginChat(s.ID, "Paxtaga qanday o'g'it kerak?")
	require.NoError(t, err)
	assert.Equal(t, []models.ChatTurn{{Role: models.RoleModel, Text: models.ChatGreeting}}, history)

	_, err = st.BeginChat(s.ID, "yana")
	assert.ErrorIs(t, err, ErrBusy)

	got, err := st.CompleteChat(s.ID, "Azotli o'g'it")
	require.NoError(t, err)
	assert.False(t, got.ChatLoading)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, models.RoleUser, got.Messages[1].Role)
	assert.Equal(t, "Azotli o'g'it", got.Messages[2].Text)

	history, err = st.BeginChat(s.ID, "rahmat")
	require.NoError(t, err)
	assert.Len(t, history, 3)
	got, err = st.FailChat(s.ID, models.ChatApology)
	require.NoError(t, err)
	require.Len(t, got.Messages, 5)
	assert.Equal(t, models.RoleModel, got.Messages[4].Role)
	assert.Equal(t, models.ChatApology, got.Messages[4].Text)
}

func TestConcurrentSessions(t *testing.T) {
	st := NewSessionStore(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := st.Create()
			_, err := st.SetActiveTab(s.ID, models.TabDashboard)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, st.Len())
}

func TestBase64Payload(t *testing.T) {
	assert.Equal(t, "QUJD", Base64Payload("data:image/png;base64,QUJD"))
	assert.Equal(t, "QUJD", Base64Payload("QUJD"))
	assert.Equal(t, "", Base64Payload("data:image/png;base64,"))
}
