package service

import (
	"context"
	"fmt"

	"mentorship-dashboard/internal/dashboard"
	"mentorship-dashboard/internal/models"

	"go.uber.org/zap"
)

// DashboardService serves the dashboard views from the row source.
type DashboardService struct {
	source RowSource
	store  SentimentStore
	// analyzer annotates displayed activities that have no feedback yet;
	// nil disables it.
	analyzer FeedbackAnalyzer
	logger   *zap.Logger
}

// NewDashboardService creates a dashboard service. store and analyzer may be nil.
func NewDashboardService(source RowSource, store SentimentStore, analyzer FeedbackAnalyzer, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		source:   source,
		store:    store,
		analyzer: analyzer,
		logger:   logger,
	}
}

// GetDashboardData builds the dashboard for the rows matching filters.
// Invalid filters fail with dashboard.ErrInvalidFilter before any fetch.
func (s *DashboardService) GetDashboardData(ctx context.Context, filters models.DashboardFilters) (*models.DashboardData, error) {
	criteria, err := dashboard.ParseFilters(filters)
	if err != nil {
		return nil, err
	}

	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}

	filtered := criteria.Apply(rows)
	data := dashboard.Build(filtered, s.storedSentiments())

	if s.analyzer != nil {
		s.annotateActivities(ctx, filtered, data.Activities)
	}

	s.logger.Debug("Dashboard built",
		zap.Int("rows", len(rows)),
		zap.Int("filtered", len(filtered)),
		zap.String("programa", filters.Programa),
		zap.String("nota_encontro", filters.NotaEncontro))

	return &data, nil
}

// GetFilterOptions lists the available filter choices.
func (s *DashboardService) GetFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}

	options := dashboard.FilterOptionsFor(rows)
	return &options, nil
}

func (s *DashboardService) storedSentiments() map[string]models.Sentiment {
	if s.store == nil {
		return nil
	}
	stored, err := s.store.SentimentsByRowKey()
	if err != nil {
		s.logger.Warn("Stored sentiments unavailable, using sheet feedback", zap.Error(err))
		return nil
	}
	return stored
}

// annotateActivities fills the feedback of pending activities in place.
// Results are only displayed, never written back.
func (s *DashboardService) annotateActivities(ctx context.Context, rows []models.SurveyRow, activities []models.ActivityData) {
	byKey := make(map[string]models.SurveyRow, len(rows))
	for _, row := range rows {
		if _, ok := byKey[row.Key()]; !ok {
			byKey[row.Key()] = row
		}
	}

	for i := range activities {
		if activities[i].FeedbackIA != dashboard.PendingFeedback {
			continue
		}
		row, ok := byKey[activities[i].ID]
		if !ok {
			continue
		}
		analysis := s.analyzer.Analyze(ctx, models.FeedbackInputFromRow(row))
		activities[i].FeedbackIA = analysis.FormatFeedback()
	}
}
