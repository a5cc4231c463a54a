package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"mentorship-dashboard/internal/models"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when a batch run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// AnnotationRepository stores structured annotations and batch runs
type AnnotationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAnnotationRepository opens (and migrates) the SQLite database at dbPath
func NewAnnotationRepository(dbPath string, logger *zap.Logger) (*AnnotationRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time keeps SQLite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	repo := &AnnotationRepository{
		db:     db,
		logger: logger,
	}

	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Annotation repository initialized", zap.String("db_path", dbPath))

	return repo, nil
}

// migrate creates tables
func (r *AnnotationRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS annotations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		row_key TEXT NOT NULL UNIQUE,
		sheet_row INTEGER NOT NULL,
		run_id TEXT,
		analysis TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		sentiment_score INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model_version TEXT,
		annotated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_annotations_sentiment ON annotations(sentiment);
	CREATE INDEX IF NOT EXISTS idx_annotations_run ON annotations(run_id);

	CREATE TABLE IF NOT EXISTS batch_runs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		total_count INTEGER NOT NULL,
		processed_count INTEGER DEFAULT 0,
		failed_count INTEGER DEFAULT 0,
		skipped_count INTEGER DEFAULT 0,
		created_at DATETIME NOT NULL,
		completed_at DATETIME,
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_batch_runs_created ON batch_runs(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveAnnotation inserts an annotation, replacing any earlier one for the same row
func (r *AnnotationRepository) SaveAnnotation(ann *models.Annotation) error {
	query := `
		INSERT INTO annotations (
			row_key, sheet_row, run_id, analysis, sentiment,
			sentiment_score, provider, model_version, annotated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(row_key) DO UPDATE SET
			sheet_row = excluded.sheet_row,
			run_id = excluded.run_id,
			analysis = excluded.analysis,
			sentiment = excluded.sentiment,
			sentiment_score = excluded.sentiment_score,
			provider = excluded.provider,
			model_version = excluded.model_version,
			annotated_at = excluded.annotated_at
	`

	_, err := r.db.Exec(query,
		ann.RowKey,
		ann.SheetRow,
		ann.RunID,
		ann.Analysis,
		string(ann.Sentiment),
		ann.SentimentScore,
		ann.Provider,
		ann.ModelVersion,
		ann.AnnotatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save annotation: %w", err)
	}

	err = r.db.QueryRow("SELECT id FROM annotations WHERE row_key = ?", ann.RowKey).Scan(&ann.ID)
	if err != nil {
		return fmt.Errorf("failed to read annotation id: %w", err)
	}

	return nil
}

// GetAnnotation returns the annotation stored for a row key
func (r *AnnotationRepository) GetAnnotation(rowKey string) (*models.Annotation, error) {
	query := `
		SELECT id, row_key, sheet_row, COALESCE(run_id, ''), analysis, sentiment,
		       sentiment_score, provider, COALESCE(model_version, ''), annotated_at
		FROM annotations
		WHERE row_key = ?
	`

	ann := &models.Annotation{}
	var sentiment string
	err := r.db.QueryRow(query, rowKey).Scan(
		&ann.ID,
		&ann.RowKey,
		&ann.SheetRow,
		&ann.RunID,
		&ann.Analysis,
		&sentiment,
		&ann.SentimentScore,
		&ann.Provider,
		&ann.ModelVersion,
		&ann.AnnotatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get annotation: %w", err)
	}
	ann.Sentiment = models.Sentiment(sentiment)

	return ann, nil
}

// SentimentsByRowKey returns the stored sentiment of every annotated row
func (r *AnnotationRepository) SentimentsByRowKey() (map[string]models.Sentiment, error) {
	rows, err := r.db.Query("SELECT row_key, sentiment FROM annotations")
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiments: %w", err)
	}
	defer rows.Close()

	sentiments := make(map[string]models.Sentiment)
	for rows.Next() {
		var key, sentiment string
		if err := rows.Scan(&key, &sentiment); err != nil {
			r.logger.Error("Failed to scan sentiment", zap.Error(err))
			continue
		}
		sentiments[key] = models.Sentiment(sentiment)
	}

	return sentiments, rows.Err()
}

// CreateRun records the start of a batch run
func (r *AnnotationRepository) CreateRun(run *models.BatchRun) error {
	query := `
		INSERT INTO batch_runs (id, status, total_count, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, run.ID, run.Status, run.TotalCount, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// UpdateRun updates run progress
func (r *AnnotationRepository) UpdateRun(run *models.BatchRun) error {
	query := `
		UPDATE batch_runs
		SET status = ?, total_count = ?, processed_count = ?, failed_count = ?, skipped_count = ?,
		    completed_at = ?, error_message = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		run.Status,
		run.TotalCount,
		run.ProcessedCount,
		run.FailedCount,
		run.SkippedCount,
		run.CompletedAt,
		run.ErrorMessage,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

const runColumns = `id, status, total_count, processed_count, failed_count, skipped_count,
	created_at, completed_at, COALESCE(error_message, '')`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*models.BatchRun, error) {
	run := &models.BatchRun{}
	var completedAt sql.NullTime
	err := s.Scan(
		&run.ID,
		&run.Status,
		&run.TotalCount,
		&run.ProcessedCount,
		&run.FailedCount,
		&run.SkippedCount,
		&run.CreatedAt,
		&completedAt,
		&run.ErrorMessage,
	)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return run, nil
}

// GetRun retrieves a run by ID
func (r *AnnotationRepository) GetRun(runID string) (*models.BatchRun, error) {
	row := r.db.QueryRow("SELECT "+runColumns+" FROM batch_runs WHERE id = ?", runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (r *AnnotationRepository) ListRuns(limit int) ([]*models.BatchRun, error) {
	rows, err := r.db.Query("SELECT "+runColumns+" FROM batch_runs ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*models.BatchRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			r.logger.Error("Failed to scan run", zap.Error(err))
			continue
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Close closes the database connection
func (r *AnnotationRepository) Close() error {
	return r.db.Close()
}
