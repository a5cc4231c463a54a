package dashboard

import (
	"sort"
	"time"

	"mentorship-dashboard/internal/models"
)

// RecentActivityLimit is how many submissions the activity feed shows.
const RecentActivityLimit = 5

// PendingFeedback is shown for rows the AI has not analyzed yet.
const PendingFeedback = "Análise IA pendente."

// RecentRows returns up to limit rows, newest first. Rows with equal
// timestamps keep their sheet order. rows is not modified.
func RecentRows(rows []models.SurveyRow, limit int) []models.SurveyRow {
	type dated struct {
		row models.SurveyRow
		at  time.Time
	}
	sorted := make([]dated, len(rows))
	for i, row := range rows {
		sorted[i] = dated{row: row, at: ParseDate(row.Timestamp)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].at.After(sorted[j].at)
	})

	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	out := make([]models.SurveyRow, len(sorted))
	for i, d := range sorted {
		out[i] = d.row
	}
	return out
}

// ToActivity reshapes a row for the activity feed.
func ToActivity(row models.SurveyRow) models.ActivityData {
	feedback := row.AIFeedback
	if feedback == "" {
		feedback = PendingFeedback
	}
	return models.ActivityData{
		ID:           row.Key(),
		Dupla:        row.FullName,
		Data:         FormatDisplayDate(ParseDate(row.Timestamp)),
		Destaque:     row.Experience,
		PontoAtencao: row.Comments,
		FeedbackIA:   feedback,
	}
}

// RecentActivities is the activity feed of the filtered rows.
func RecentActivities(rows []models.SurveyRow) []models.ActivityData {
	recent := RecentRows(rows, RecentActivityLimit)
	activities := make([]models.ActivityData, 0, len(recent))
	for _, row := range recent {
		activities = append(activities, ToActivity(row))
	}
	return activities
}
