package service

import (
	"context"
	"errors"
	"testing"

	"mentorship-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAnnotator_NoContentSkipsProvider(t *testing.T) {
	llm := positiveLLM()
	a := NewAnnotator(llm, zap.NewNop())

	got := a.Analyze(context.Background(), models.FeedbackInput{MeetingRating: 9, Experience: "  ", Comments: ""})

	assert.Equal(t, NoContentAnalysis, got.Analysis)
	assert.Equal(t, models.SentimentNeutral, got.Sentiment)
	assert.Equal(t, models.NeutralSentimentScore, got.SentimentScore)
	assert.False(t, got.Fallback)
	assert.Zero(t, llm.callCount())
}

func TestAnnotator_ProviderFailureFallsBack(t *testing.T) {
	llm := &fakeLLM{err: errors.New("all providers failed: 429")}
	a := NewAnnotator(llm, zap.NewNop())

	got := a.Analyze(context.Background(), models.FeedbackInput{Comments: "Faltou tempo"})

	assert.Equal(t, UnavailableAnalysis, got.Analysis)
	assert.Equal(t, models.SentimentNeutral, got.Sentiment)
	assert.Equal(t, models.NeutralSentimentScore, got.SentimentScore)
	assert.True(t, got.Fallback)
	assert.Equal(t, 1, llm.callCount())
}

func TestAnnotator_Normalizes(t *testing.T) {
	tests := []struct {
		name          string
		resp          models.AnalysisResponse
		wantSentiment models.Sentiment
		wantScore     int
	}{
		{"portuguese label", models.AnalysisResponse{Sentiment: "positivo", SentimentScore: 8.6}, models.SentimentPositive, 9},
		{"english label", models.AnalysisResponse{Sentiment: "Negative", SentimentScore: 2}, models.SentimentNegative, 2},
		{"unknown sentiment", models.AnalysisResponse{Sentiment: "mixed", SentimentScore: 6}, models.SentimentNeutral, 6},
		{"score too high", models.AnalysisResponse{Sentiment: "neutro", SentimentScore: 42}, models.SentimentNeutral, 5},
		{"score too low", models.AnalysisResponse{Sentiment: "positive", SentimentScore: 0.2}, models.SentimentPositive, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.resp.Analysis = " ok "
			a := NewAnnotator(&fakeLLM{resp: tt.resp}, zap.NewNop())

			got := a.Analyze(context.Background(), models.FeedbackInput{Experience: "Bom"})

			assert.Equal(t, "ok", got.Analysis)
			assert.Equal(t, tt.wantSentiment, got.Sentiment)
			assert.Equal(t, tt.wantScore, got.SentimentScore)
			assert.Equal(t, "fake", got.Provider)
			assert.Equal(t, "fake-1", got.ModelVersion)
		})
	}
}
