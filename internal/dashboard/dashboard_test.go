package dashboard

import (
	"fmt"
	"testing"

	"mentorship-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentActivities_NewestFive(t *testing.T) {
	// Sheet order is deliberately shuffled.
	days := []int{3, 9, 1, 10, 5, 7, 2, 8, 4, 6}
	rows := make([]models.SurveyRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, models.SurveyRow{
			Timestamp: fmt.Sprintf("%02d/01/2024 08:00:00", d),
			Email:     fmt.Sprintf("p%d@x", d),
			FullName:  fmt.Sprintf("Dupla %d", d),
		})
	}
	original := append([]models.SurveyRow(nil), rows...)

	activities := RecentActivities(rows)
	require.Len(t, activities, RecentActivityLimit)

	for i, want := range []int{10, 9, 8, 7, 6} {
		assert.Equal(t, fmt.Sprintf("Dupla %d", want), activities[i].Dupla)
	}
	assert.Equal(t, original, rows, "input rows must not be reordered")
}

func TestRecentActivities_TiesAndMalformedLast(t *testing.T) {
	rows := []models.SurveyRow{
		{Timestamp: "garbage", Email: "bad"},
		{Timestamp: "01/02/2024 10:00:00", Email: "first"},
		{Timestamp: "01/02/2024 10:00:00", Email: "second"},
	}

	recent := RecentRows(rows, 5)
	require.Len(t, recent, 3)
	assert.Equal(t, "first", recent[0].Email)
	assert.Equal(t, "second", recent[1].Email)
	assert.Equal(t, "bad", recent[2].Email)
}

func TestToActivity(t *testing.T) {
	row := models.SurveyRow{
		Timestamp:  "31/12/2023 10:00:00",
		Email:      "ana@x",
		FullName:   "Ana e Bia",
		Experience: "Muito produtivo",
		Comments:   "Mais encontros",
	}

	a := ToActivity(row)
	assert.Equal(t, "31/12/2023 10:00:00-ana@x", a.ID)
	assert.Equal(t, "Ana e Bia", a.Dupla)
	assert.Equal(t, "31 de dezembro de 2023 às 10:00", a.Data)
	assert.Equal(t, "Muito produtivo", a.Destaque)
	assert.Equal(t, "Mais encontros", a.PontoAtencao)
	assert.Equal(t, PendingFeedback, a.FeedbackIA)
	assert.Empty(t, a.MentorAvatar)
	assert.Empty(t, a.MenteeAvatar)

	row.AIFeedback = "[POSITIVO] [9/10] Excelente"
	assert.Equal(t, row.AIFeedback, ToActivity(row).FeedbackIA)
}

func sampleRows() []models.SurveyRow {
	return []models.SurveyRow{
		{Timestamp: "02/01/2024 10:00:00", Email: "a", UserType: "Mentor", Program: "Tech", MeetingsCount: "3", MeetingDuration: "60", MeetingRating: "9", EngagementRating: "8", AIFeedback: "[POSITIVO] [9/10] ok"},
		{Timestamp: "01/01/2024 10:00:00", Email: "b", UserType: "Mentorado", Program: "Tech", MeetingsCount: "1", MeetingDuration: "45", MeetingRating: "5", EngagementRating: "6"},
		{Timestamp: "bad", Email: "c", UserType: "mentor", Program: "Arts", MeetingsCount: "x", MeetingDuration: "?", MeetingRating: "?", EngagementRating: "?"},
	}
}

func TestBuild_Idempotent(t *testing.T) {
	rows := sampleRows()

	first := Build(rows, nil)
	second := Build(rows, nil)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleRows(), rows)
	assert.Equal(t, len(rows), first.Kpis.TotalRespostas)
}

func TestBuild_TotalsMatchFilteredRows(t *testing.T) {
	rows := sampleRows()
	for _, f := range []models.DashboardFilters{
		{},
		{Programa: "tech"},
		{NotaEncontro: "0-5"},
		{Programa: "nothing"},
	} {
		c, err := ParseFilters(f)
		require.NoError(t, err)

		filtered := c.Apply(rows)
		data := Build(filtered, nil)
		assert.Equal(t, len(filtered), data.Kpis.TotalRespostas)
		assert.LessOrEqual(t, len(data.Activities), RecentActivityLimit)
	}
}

func TestFilterOptionsFor(t *testing.T) {
	rows := []models.SurveyRow{
		{Program: "Tech"},
		{Program: " Arts "},
		{Program: "Tech"},
		{Program: ""},
	}

	opts := FilterOptionsFor(rows)
	assert.Equal(t, []string{"Arts", "Tech"}, opts.Programas)
	assert.Equal(t, RatingOptions, opts.NotasEncontro)

	for _, opt := range opts.NotasEncontro {
		_, err := ParseRatingRange(opt.Value)
		assert.NoError(t, err)
	}
}
