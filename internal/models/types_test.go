package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecommendationRequestValidate(t *testing.T) {
	valid := DefaultRecommendationRequest()
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *RecommendationRequest)
	}{
		{"zero land", func(r *RecommendationRequest) { r.LandSize = 0 }},
		{"negative land", func(r *RecommendationRequest) { r.LandSize = -1 }},
		{"unknown soil", func(r *RecommendationRequest) { r.SoilType = "Sandy" }},
		{"unknown season", func(r *RecommendationRequest) { r.Season = "Summer" }},
		{"unknown goal", func(r *RecommendationRequest) { r.Goal = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRecommendationRequest()
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), ErrInvalidRecommendationRequest)
		})
	}
}

func TestDefaultRecommendationRequest(t *testing.T) {
	r := DefaultRecommendationRequest()
	assert.Equal(t, 1.0, r.LandSize)
	assert.Equal(t, "Qora tuproq (Chernozem)", r.SoilType)
	assert.Equal(t, "Bahor (Mart-May)", r.Season)
	assert.Equal(t, "Maksimal foyda (High Profit)", r.Goal)
}

func TestTabValid(t *testing.T) {
	for _, tab := range Tabs {
		assert.True(t, tab.Valid(), tab)
	}
	assert.False(t, Tab("SETTINGS").Valid())
	assert.False(t, Tab("").Valid())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleModel.Valid())
	assert.False(t, Role("system").Valid())
}

func TestTurns(t *testing.T) {
	now := time.Now()
	msgs := []ChatMessage{
		{Role: RoleModel, Text: ChatGreeting, Timestamp: now},
		{Role: RoleUser, Text: "Salom", Timestamp: now},
	}
	assert.Equal(t, []ChatTurn{
		{Role: RoleModel, Text: ChatGreeting},
		{Role: RoleUser, Text: "Salom"},
	}, Turns(msgs))
	assert.Empty(t, Turns(nil))
}
