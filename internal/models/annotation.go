package models

import (
	"fmt"
	"strings"
	"time"
)

// Sentiment is the overall tone of a survey answer.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// sentimentTags are the labels embedded in the sheet's AI feedback column.
var sentimentTags = map[Sentiment]string{
	SentimentPositive: "POSITIVO",
	SentimentNeutral:  "NEUTRO",
	SentimentNegative: "NEGATIVO",
}

// Tag returns the Portuguese label written to the sheet.
func (s Sentiment) Tag() string {
	if tag, ok := sentimentTags[s]; ok {
		return tag
	}
	return sentimentTags[SentimentNeutral]
}

// ParseSentiment accepts the English values and the Portuguese labels the
// model is asked to produce.
func ParseSentiment(s string) (Sentiment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "positivo":
		return SentimentPositive, true
	case "neutral", "neutro":
		return SentimentNeutral, true
	case "negative", "negativo":
		return SentimentNegative, true
	}
	return "", false
}

// SentimentFromFeedback reads the tag of an AI feedback cell. Untagged but
// non-empty feedback is neutral; empty feedback has no sentiment.
func SentimentFromFeedback(feedback string) (Sentiment, bool) {
	text := strings.ToLower(feedback)
	switch {
	case strings.Contains(text, "[positivo]"):
		return SentimentPositive, true
	case strings.Contains(text, "[negativo]"):
		return SentimentNegative, true
	case strings.TrimSpace(text) != "":
		return SentimentNeutral, true
	}
	return "", false
}

// Score bounds of an analysis.
const (
	MinSentimentScore     = 1
	MaxSentimentScore     = 10
	NeutralSentimentScore = 5
)

// FeedbackInput is what the annotation service sees of a survey row.
type FeedbackInput struct {
	MeetingRating    int
	EngagementRating int
	Experience       string
	Comments         string
}

// FeedbackInputFromRow builds the annotation input; unparseable ratings become 0.
func FeedbackInputFromRow(row SurveyRow) FeedbackInput {
	meeting, _ := ParseLenientInt(row.MeetingRating)
	engagement, _ := ParseLenientInt(row.EngagementRating)
	return FeedbackInput{
		MeetingRating:    meeting,
		EngagementRating: engagement,
		Experience:       row.Experience,
		Comments:         row.Comments,
	}
}

// AnalysisResponse is the raw structured answer of an LLM provider.
type AnalysisResponse struct {
	Analysis       string  `json:"analysis"`
	Sentiment      string  `json:"sentiment"`
	SentimentScore float64 `json:"sentimentScore"`
	Provider       string  `json:"provider,omitempty"`
	ModelVersion   string  `json:"model_version,omitempty"`
}

// FeedbackAnalysis is a validated annotation result.
type FeedbackAnalysis struct {
	Analysis       string    `json:"analysis"`
	Sentiment      Sentiment `json:"sentiment"`
	SentimentScore int       `json:"sentimentScore"`
	Provider       string    `json:"provider,omitempty"`
	ModelVersion   string    `json:"modelVersion,omitempty"`
	// Fallback marks a placeholder produced because no provider answered.
	Fallback bool `json:"fallback,omitempty"`
}

// FormatFeedback renders the text stored in the sheet's AI feedback column.
func (f FeedbackAnalysis) FormatFeedback() string {
	return fmt.Sprintf("[%s] [%d/10] %s", f.Sentiment.Tag(), f.SentimentScore, f.Analysis)
}

// Annotation is a stored analysis of a sheet row.
type Annotation struct {
	ID             int64     `json:"id" db:"id"`
	RowKey         string    `json:"row_key" db:"row_key"`
	SheetRow       int       `json:"sheet_row" db:"sheet_row"`
	RunID          string    `json:"run_id,omitempty" db:"run_id"`
	Analysis       string    `json:"analysis" db:"analysis"`
	Sentiment      Sentiment `json:"sentiment" db:"sentiment"`
	SentimentScore int       `json:"sentiment_score" db:"sentiment_score"`
	Provider       string    `json:"provider" db:"provider"`
	ModelVersion   string    `json:"model_version,omitempty" db:"model_version"`
	AnnotatedAt    time.Time `json:"annotated_at" db:"annotated_at"`
}

// Batch run statuses.
const (
	RunStatusProcessing = "processing"
	RunStatusCompleted  = "completed"
	RunStatusFailed     = "failed"
)

// BatchRun records one pass of the batch annotation loop.
type BatchRun struct {
	ID             string     `json:"id" db:"id"`
	Status         string     `json:"status" db:"status"`
	TotalCount     int        `json:"total_count" db:"total_count"`
	ProcessedCount int        `json:"processed_count" db:"processed_count"`
	FailedCount    int        `json:"failed_count" db:"failed_count"`
	SkippedCount   int        `json:"skipped_count" db:"skipped_count"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	ErrorMessage   string     `json:"error_message,omitempty" db:"error_message"`
}
