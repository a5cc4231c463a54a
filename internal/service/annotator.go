package service

import (
	"context"
	"math"
	"strings"

	"mentorship-dashboard/internal/models"

	"go.uber.org/zap"
)

// Fixed analyses used when no provider result is available.
const (
	NoContentAnalysis   = "Não foi possível gerar análise pois não há comentários ou descrição da experiência."
	UnavailableAnalysis = "Análise de IA temporariamente indisponível."
)

// LLMClient interface for any LLM provider
type LLMClient interface {
	Analyze(ctx context.Context, in models.FeedbackInput) (*models.AnalysisResponse, error)
	Close() error
	GetModelInfo() map[string]interface{}
}

// Annotator turns survey answers into sentiment analyses. It never fails:
// provider errors produce a neutral fallback.
type Annotator struct {
	llmClient LLMClient
	logger    *zap.Logger
}

// NewAnnotator creates a new annotator service
func NewAnnotator(llmClient LLMClient, logger *zap.Logger) *Annotator {
	return &Annotator{
		llmClient: llmClient,
		logger:    logger,
	}
}

// Analyze annotates one answer
func (a *Annotator) Analyze(ctx context.Context, in models.FeedbackInput) models.FeedbackAnalysis {
	if strings.TrimSpace(in.Experience) == "" && strings.TrimSpace(in.Comments) == "" {
		return models.FeedbackAnalysis{
			Analysis:       NoContentAnalysis,
			Sentiment:      models.SentimentNeutral,
			SentimentScore: models.NeutralSentimentScore,
		}
	}

	resp, err := a.llmClient.Analyze(ctx, in)
	if err != nil {
		a.logger.Error("AI analysis failed, using fallback", zap.Error(err))
		return models.FeedbackAnalysis{
			Analysis:       UnavailableAnalysis,
			Sentiment:      models.SentimentNeutral,
			SentimentScore: models.NeutralSentimentScore,
			Fallback:       true,
		}
	}

	return a.normalize(resp)
}

// normalize clamps a provider answer to the accepted value sets.
func (a *Annotator) normalize(resp *models.AnalysisResponse) models.FeedbackAnalysis {
	sentiment, ok := models.ParseSentiment(resp.Sentiment)
	if !ok {
		a.logger.Warn("Unknown sentiment from provider", zap.String("sentiment", resp.Sentiment))
		sentiment = models.SentimentNeutral
	}

	score := int(math.Round(resp.SentimentScore))
	if score < models.MinSentimentScore || score > models.MaxSentimentScore {
		a.logger.Warn("Sentiment score out of range", zap.Float64("score", resp.SentimentScore))
		score = models.NeutralSentimentScore
	}

	provider := resp.Provider
	modelVersion := resp.ModelVersion
	info := a.llmClient.GetModelInfo()
	if provider == "" {
		provider = "unknown"
		if p, ok := info["provider"].(string); ok {
			provider = p
		}
	}
	if modelVersion == "" {
		modelVersion = "unknown"
		if m, ok := info["model"].(string); ok {
			modelVersion = m
		}
	}

	return models.FeedbackAnalysis{
		Analysis:       strings.TrimSpace(resp.Analysis),
		Sentiment:      sentiment,
		SentimentScore: score,
		Provider:       provider,
		ModelVersion:   modelVersion,
	}
}

// ModelInfo describes the provider currently in use.
func (a *Annotator) ModelInfo() map[string]interface{} {
	return a.llmClient.GetModelInfo()
}

// Close releases the underlying provider
func (a *Annotator) Close() error {
	return a.llmClient.Close()
}
