package dashboard

import (
	"math"
	"strings"

	"mentorship-dashboard/internal/models"

	"golang.org/x/text/cases"
)

// Rating tiers of the evaluation chart. Lower bounds are inclusive.
const (
	TierExcelente    = "Excelente"
	TierBom          = "Bom"
	TierRuim         = "Ruim"
	TierInsatisfeito = "Insatisfeito"
)

// Funnel stages keyed by the number of meetings held.
const (
	StageNotStarted = "Não iniciou"
	StageStart      = "Início"
	StageMiddle     = "Meio"
	StageEnd        = "Fim"
)

// User type buckets of the mentor vs mentee chart.
const (
	UserTypeMentors = "Mentores"
	UserTypeMentees = "Mentorados"
)

// attentionThreshold is the rating below which a pair needs follow-up.
const attentionThreshold = 7

// ComputeKPIs derives the KPI strip from the filtered rows.
func ComputeKPIs(rows []models.SurveyRow) models.KpiData {
	emails := make(map[string]struct{}, len(rows))
	attention := 0
	durationSum, durationCount := 0, 0

	for _, row := range rows {
		emails[row.Email] = struct{}{}

		meeting, meetingOK := models.ParseLenientInt(row.MeetingRating)
		engagement, engagementOK := models.ParseLenientInt(row.EngagementRating)
		if (meetingOK && meeting < attentionThreshold) || (engagementOK && engagement < attentionThreshold) {
			attention++
		}

		if d, ok := models.ParseLenientInt(row.MeetingDuration); ok && d > 0 {
			durationSum += d
			durationCount++
		}
	}

	avg := 0.0
	if durationCount > 0 {
		avg = round1(float64(durationSum) / float64(durationCount))
	}

	return models.KpiData{
		TotalRespostas: len(rows),
		DuplasAtivas:   len(emails),
		MediaEncontros: avg,
		DuplasAtencao:  attention,
	}
}

// RatingTier classifies a meeting rating.
func RatingTier(rating int) string {
	switch {
	case rating >= 9:
		return TierExcelente
	case rating >= 8:
		return TierBom
	case rating >= 6:
		return TierRuim
	default:
		return TierInsatisfeito
	}
}

// Evaluation counts rows per rating tier. Rows without a readable rating are left out.
func Evaluation(rows []models.SurveyRow) []models.EvaluationBucket {
	counts := make(map[string]int, 4)
	for _, row := range rows {
		if rating, ok := models.ParseLenientInt(row.MeetingRating); ok {
			counts[RatingTier(rating)]++
		}
	}

	tiers := []string{TierExcelente, TierBom, TierRuim, TierInsatisfeito}
	buckets := make([]models.EvaluationBucket, 0, len(tiers))
	for _, tier := range tiers {
		buckets = append(buckets, models.EvaluationBucket{Name: tier, Value: counts[tier]})
	}
	return buckets
}

// FunnelStageOf classifies a participant by meetings held.
func FunnelStageOf(meetings int) string {
	switch {
	case meetings == 0:
		return StageNotStarted
	case meetings <= 2:
		return StageStart
	case meetings <= 5:
		return StageMiddle
	default:
		return StageEnd
	}
}

// ProgramFunnel counts each participant once, using the first of their rows
// with a readable meeting count, and expresses stages as whole percentages.
func ProgramFunnel(rows []models.SurveyRow) []models.FunnelStage {
	seen := make(map[string]struct{})
	counts := make(map[string]int, 4)

	for _, row := range rows {
		if _, ok := seen[row.Email]; ok {
			continue
		}
		meetings, ok := models.ParseLenientInt(row.MeetingsCount)
		if !ok || meetings < 0 {
			continue
		}
		counts[FunnelStageOf(meetings)]++
		seen[row.Email] = struct{}{}
	}

	total := len(seen)
	stages := []string{StageNotStarted, StageStart, StageMiddle, StageEnd}
	funnel := make([]models.FunnelStage, 0, len(stages))
	for _, stage := range stages {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(counts[stage]) / float64(total) * 100))
		}
		funnel = append(funnel, models.FunnelStage{Stage: stage, Count: counts[stage], Percentage: pct})
	}
	return funnel
}

// UserTypeOf buckets a free-text user type. "mentorado" is checked first since
// it contains "mentor".
func UserTypeOf(userType string) (string, bool) {
	t := cases.Fold().String(userType)
	switch {
	case strings.Contains(t, "mentorado"):
		return UserTypeMentees, true
	case strings.Contains(t, "mentor"):
		return UserTypeMentors, true
	}
	return "", false
}

// MentorVsMentee counts participants per user type on their first row and
// averages the meeting rating of those rows.
func MentorVsMentee(rows []models.SurveyRow) []models.UserTypeBucket {
	type acc struct {
		count, ratingSum, rated int
	}
	buckets := map[string]*acc{UserTypeMentors: {}, UserTypeMentees: {}}
	seen := make(map[string]struct{})

	for _, row := range rows {
		if _, ok := seen[row.Email]; ok {
			continue
		}
		seen[row.Email] = struct{}{}

		kind, ok := UserTypeOf(row.UserType)
		if !ok {
			continue
		}
		b := buckets[kind]
		b.count++
		if rating, ok := models.ParseLenientInt(row.MeetingRating); ok {
			b.ratingSum += rating
			b.rated++
		}
	}

	out := make([]models.UserTypeBucket, 0, 2)
	for _, kind := range []string{UserTypeMentors, UserTypeMentees} {
		b := buckets[kind]
		avg := 0.0
		if b.rated > 0 {
			avg = round1(float64(b.ratingSum) / float64(b.rated))
		}
		out = append(out, models.UserTypeBucket{UserType: kind, AverageRating: avg, Count: b.count})
	}
	return out
}

// CommentsAnalysis counts rows per annotated sentiment. Rows with blank
// feedback are left out; otherwise a stored sentiment for the row key wins
// over the tag embedded in the feedback text.
func CommentsAnalysis(rows []models.SurveyRow, stored map[string]models.Sentiment) []models.CommentsBucket {
	counts := make(map[models.Sentiment]int, 3)
	for _, row := range rows {
		if strings.TrimSpace(row.AIFeedback) == "" {
			continue
		}
		if s, ok := stored[row.Key()]; ok {
			counts[s]++
			continue
		}
		if s, ok := models.SentimentFromFeedback(row.AIFeedback); ok {
			counts[s]++
		}
	}

	return []models.CommentsBucket{
		{Category: "Positivos", Count: counts[models.SentimentPositive], Sentiment: models.SentimentPositive},
		{Category: "Neutros", Count: counts[models.SentimentNeutral], Sentiment: models.SentimentNeutral},
		{Category: "Negativos", Count: counts[models.SentimentNegative], Sentiment: models.SentimentNegative},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
