package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mentorship-dashboard/internal/config"
	"mentorship-dashboard/internal/gemini"
	"mentorship-dashboard/internal/llm"
	"mentorship-dashboard/internal/repository"
	"mentorship-dashboard/internal/service"
	"mentorship-dashboard/internal/sheets"

	"go.uber.org/zap"
)

// app holds the wired dependencies shared by the commands.
type app struct {
	repo      *repository.AnnotationRepository
	annotator *service.Annotator
	dashboard *service.DashboardService
	batch     *service.BatchProcessor
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	llmClient, err := newLLMClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	sheetClient, err := sheets.NewClient(ctx, sheets.Config{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
		SheetName:       cfg.Sheets.SheetName,
	}, logger)
	if err != nil {
		llmClient.Close()
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		llmClient.Close()
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo, err := repository.NewAnnotationRepository(cfg.Database.Path, logger)
	if err != nil {
		llmClient.Close()
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	annotator := service.NewAnnotator(llmClient, logger)

	var activityAnnotator service.FeedbackAnalyzer
	if cfg.Dashboard.AnnotateActivities {
		activityAnnotator = annotator
	}

	return &app{
		repo:      repo,
		annotator: annotator,
		dashboard: service.NewDashboardService(sheetClient, repo, activityAnnotator, logger),
		batch:     service.NewBatchProcessor(sheetClient, annotator, repo, cfg.Batch.Delay, logger),
	}, nil
}

// newLLMClient prefers the configured provider list and falls back to the
// single Gemini section.
func newLLMClient(cfg *config.Config, logger *zap.Logger) (service.LLMClient, error) {
	if len(cfg.Providers) > 0 {
		multiClient, err := llm.NewMultiProviderClient(llm.MultiProviderConfig{
			Providers:   cfg.Providers,
			MaxFailures: cfg.MaxFailuresBeforeSwitch,
		}, logger)
		if err == nil {
			logger.Info("Multi-provider client initialized",
				zap.Int("provider_count", len(cfg.Providers)))
			return multiClient, nil
		}
		logger.Warn("Failed to initialize multi-provider client, falling back to single provider",
			zap.Error(err))
	}

	if cfg.Gemini.APIKey == "" || cfg.Gemini.APIKey == "YOUR_API_KEY_HERE" {
		return nil, fmt.Errorf("gemini API key not configured, set GEMINI_API_KEY or a providers list")
	}

	geminiClient, err := gemini.NewClient(gemini.Config{
		APIKey:     cfg.Gemini.APIKey,
		ModelName:  cfg.Gemini.ModelName,
		MaxRetries: cfg.Gemini.MaxRetries,
		RetryDelay: 2 * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	logger.Info("Single provider client initialized with rate limiting")
	return llm.NewRateLimitedProvider(geminiClient, 8, logger), nil
}

func (a *app) Close() {
	a.annotator.Close()
	a.repo.Close()
}
