package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mentorship-dashboard/internal/dashboard"
	"mentorship-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dashboardRows() []models.SurveyRow {
	rows := []models.SurveyRow{
		answer("01/02/2024 10:00:00", "a@x", "Ótimo", "[POSITIVO] [9/10] bom"),
		answer("02/02/2024 10:00:00", "b@x", "Bom", ""),
		answer("03/02/2024 10:00:00", "c@x", "Regular", "[NEGATIVO] [3/10] ruim"),
	}
	rows[2].Program = "Design"
	rows[2].MeetingRating = "5"
	return rows
}

func TestDashboardService_InvalidFilterSkipsFetch(t *testing.T) {
	sheet := newFakeSheet(dashboardRows()...)
	s := NewDashboardService(sheet, nil, nil, zap.NewNop())

	_, err := s.GetDashboardData(context.Background(), models.DashboardFilters{NotaEncontro: "9-a"})

	assert.ErrorIs(t, err, dashboard.ErrInvalidFilter)
	assert.Zero(t, sheet.fetches)
}

func TestDashboardService_FiltersRows(t *testing.T) {
	s := NewDashboardService(newFakeSheet(dashboardRows()...), nil, nil, zap.NewNop())

	data, err := s.GetDashboardData(context.Background(), models.DashboardFilters{Programa: "tech"})
	require.NoError(t, err)

	assert.Equal(t, 2, data.Kpis.TotalRespostas)
	require.Len(t, data.Activities, 2)
	assert.Equal(t, dashboard.PendingFeedback, data.Activities[0].FeedbackIA)

	data, err = s.GetDashboardData(context.Background(), models.DashboardFilters{NotaEncontro: "0-5"})
	require.NoError(t, err)
	assert.Equal(t, 1, data.Kpis.TotalRespostas)
	assert.Equal(t, 1, data.Kpis.DuplasAtencao)
}

func TestDashboardService_FetchFailure(t *testing.T) {
	sheet := newFakeSheet()
	sheet.fetchErr = errors.New("boom")
	s := NewDashboardService(sheet, nil, nil, zap.NewNop())

	_, err := s.GetDashboardData(context.Background(), models.DashboardFilters{})
	assert.Error(t, err)

	_, err = s.GetFilterOptions(context.Background())
	assert.Error(t, err)
}

func TestDashboardService_StoredSentimentWins(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveAnnotation(&models.Annotation{
		RowKey:         "03/02/2024 10:00:00-c@x",
		Analysis:       "reavaliado",
		Sentiment:      models.SentimentPositive,
		SentimentScore: 8,
		Provider:       "gemini",
		AnnotatedAt:    time.Now(),
	}))
	s := NewDashboardService(newFakeSheet(dashboardRows()...), store, nil, zap.NewNop())

	data, err := s.GetDashboardData(context.Background(), models.DashboardFilters{})
	require.NoError(t, err)

	counts := map[models.Sentiment]int{}
	for _, b := range data.Charts.CommentsAnalysis {
		counts[b.Sentiment] = b.Count
	}
	assert.Equal(t, 2, counts[models.SentimentPositive])
	assert.Zero(t, counts[models.SentimentNegative])
}

func TestDashboardService_AnnotatesPendingActivities(t *testing.T) {
	llm := positiveLLM()
	sheet := newFakeSheet(dashboardRows()...)
	s := NewDashboardService(sheet, nil, NewAnnotator(llm, zap.NewNop()), zap.NewNop())

	data, err := s.GetDashboardData(context.Background(), models.DashboardFilters{})
	require.NoError(t, err)

	assert.Equal(t, 1, llm.callCount())
	for _, a := range data.Activities {
		assert.NotEqual(t, dashboard.PendingFeedback, a.FeedbackIA)
		if a.ID == "02/02/2024 10:00:00-b@x" {
			assert.Equal(t, "[POSITIVO] [9/10] Dupla engajada", a.FeedbackIA)
		}
	}
	assert.Empty(t, sheet.writes)
}

func TestDashboardService_FilterOptions(t *testing.T) {
	s := NewDashboardService(newFakeSheet(dashboardRows()...), nil, nil, zap.NewNop())

	opts, err := s.GetFilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Design", "Tech"}, opts.Programas)
	assert.Len(t, opts.NotasEncontro, 4)
}
