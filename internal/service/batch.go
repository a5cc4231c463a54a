package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"mentorship-dashboard/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrBatchInProgress is returned when a batch run is triggered while another
// one is still going.
var ErrBatchInProgress = errors.New("batch annotation already in progress")

// DefaultBatchDelay is the minimum spacing between two annotation calls.
const DefaultBatchDelay = 1500 * time.Millisecond

// defaultRunsLimit caps the run history listing.
const defaultRunsLimit = 20

// RowSource provides the survey rows.
type RowSource interface {
	FetchRows(ctx context.Context) ([]models.SurveyRow, error)
}

// SheetStore is a row source that also accepts AI feedback for a data row.
type SheetStore interface {
	RowSource
	UpdateAIFeedback(ctx context.Context, index int, feedback string) error
}

// FeedbackAnalyzer produces an analysis for a survey answer.
type FeedbackAnalyzer interface {
	Analyze(ctx context.Context, in models.FeedbackInput) models.FeedbackAnalysis
}

// SentimentStore exposes the stored sentiment of annotated rows.
type SentimentStore interface {
	SentimentsByRowKey() (map[string]models.Sentiment, error)
}

// AnnotationStore persists annotations and batch runs.
type AnnotationStore interface {
	SentimentStore
	SaveAnnotation(ann *models.Annotation) error
	CreateRun(run *models.BatchRun) error
	UpdateRun(run *models.BatchRun) error
	GetRun(runID string) (*models.BatchRun, error)
	ListRuns(limit int) ([]*models.BatchRun, error)
}

// BatchProcessor fills the AI feedback column of every row that lacks it.
type BatchProcessor struct {
	sheet    SheetStore
	analyzer FeedbackAnalyzer
	store    AnnotationStore
	limiter  *rate.Limiter
	logger   *zap.Logger
	mu       sync.Mutex
}

// NewBatchProcessor creates a batch processor that starts at most one
// annotation per delay. A non-positive delay disables throttling.
func NewBatchProcessor(
	sheet SheetStore,
	analyzer FeedbackAnalyzer,
	store AnnotationStore,
	delay time.Duration,
	logger *zap.Logger,
) *BatchProcessor {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &BatchProcessor{
		sheet:    sheet,
		analyzer: analyzer,
		store:    store,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger,
	}
}

// Run annotates pending rows one at a time and returns the run record.
// ProcessedCount is the number of rows whose feedback was written.
func (b *BatchProcessor) Run(ctx context.Context) (*models.BatchRun, error) {
	if !b.mu.TryLock() {
		return nil, ErrBatchInProgress
	}
	defer b.mu.Unlock()

	run := &models.BatchRun{
		ID:        uuid.New().String(),
		Status:    models.RunStatusProcessing,
		CreatedAt: time.Now(),
	}
	if err := b.store.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	b.logger.Info("Batch annotation started", zap.String("run_id", run.ID))

	rows, err := b.sheet.FetchRows(ctx)
	if err != nil {
		b.finish(run, models.RunStatusFailed, err)
		return run, fmt.Errorf("failed to fetch rows: %w", err)
	}

	pending := make([]int, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.AIFeedback) == "" {
			pending = append(pending, i)
		}
	}
	run.TotalCount = len(pending)
	run.SkippedCount = len(rows) - len(pending)
	b.saveProgress(run)

	for _, index := range pending {
		if err := b.limiter.Wait(ctx); err != nil {
			b.finish(run, models.RunStatusFailed, err)
			return run, fmt.Errorf("batch annotation interrupted: %w", err)
		}

		if b.processRow(ctx, run.ID, index, rows[index]) {
			run.ProcessedCount++
		} else {
			run.FailedCount++
		}
		b.saveProgress(run)
	}

	b.finish(run, models.RunStatusCompleted, nil)

	b.logger.Info("Batch annotation completed",
		zap.String("run_id", run.ID),
		zap.Int("processed", run.ProcessedCount),
		zap.Int("failed", run.FailedCount),
		zap.Int("skipped", run.SkippedCount))

	return run, nil
}

// processRow annotates one row and writes the result back. It reports whether
// the feedback was written.
func (b *BatchProcessor) processRow(ctx context.Context, runID string, index int, row models.SurveyRow) bool {
	analysis := b.analyzer.Analyze(ctx, models.FeedbackInputFromRow(row))
	if analysis.Fallback {
		b.logger.Warn("No AI result for row, leaving it pending", zap.Int("row", index+2))
		return false
	}

	if err := b.sheet.UpdateAIFeedback(ctx, index, analysis.FormatFeedback()); err != nil {
		b.logger.Error("Failed to write feedback",
			zap.Int("row", index+2),
			zap.Error(err))
		return false
	}

	ann := &models.Annotation{
		RowKey:         row.Key(),
		SheetRow:       index + 2,
		RunID:          runID,
		Analysis:       analysis.Analysis,
		Sentiment:      analysis.Sentiment,
		SentimentScore: analysis.SentimentScore,
		Provider:       analysis.Provider,
		ModelVersion:   analysis.ModelVersion,
		AnnotatedAt:    time.Now(),
	}
	if err := b.store.SaveAnnotation(ann); err != nil {
		// The sheet already holds the feedback; the store is secondary.
		b.logger.Error("Failed to save annotation", zap.Int("row", index+2), zap.Error(err))
	}

	b.logger.Debug("Row annotated",
		zap.Int("row", index+2),
		zap.String("sentiment", string(analysis.Sentiment)),
		zap.Int("score", analysis.SentimentScore))

	return true
}

func (b *BatchProcessor) saveProgress(run *models.BatchRun) {
	if err := b.store.UpdateRun(run); err != nil {
		b.logger.Error("Failed to update run", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func (b *BatchProcessor) finish(run *models.BatchRun, status string, cause error) {
	run.Status = status
	completedAt := time.Now()
	run.CompletedAt = &completedAt
	if cause != nil {
		run.ErrorMessage = cause.Error()
		b.logger.Error("Batch annotation failed", zap.String("run_id", run.ID), zap.Error(cause))
	}
	b.saveProgress(run)
}

// GetRun returns a batch run record
func (b *BatchProcessor) GetRun(runID string) (*models.BatchRun, error) {
	return b.store.GetRun(runID)
}

// ListRuns returns the latest batch runs, newest first
func (b *BatchProcessor) ListRuns(limit int) ([]*models.BatchRun, error) {
	if limit <= 0 || limit > defaultRunsLimit {
		limit = defaultRunsLimit
	}
	return b.store.ListRuns(limit)
}
