package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"mentorship-dashboard/internal/models"
	"mentorship-dashboard/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLLM struct {
	mu    sync.Mutex
	calls int
	resp  models.AnalysisResponse
	err   error
}

func (f *fakeLLM) Analyze(ctx context.Context, in models.FeedbackInput) (*models.AnalysisResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	resp := f.resp
	return &resp, nil
}

func (f *fakeLLM) Close() error { return nil }

func (f *fakeLLM) GetModelInfo() map[string]interface{} {
	return map[string]interface{}{"provider": "fake", "model": "fake-1"}
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func positiveLLM() *fakeLLM {
	return &fakeLLM{resp: models.AnalysisResponse{
		Analysis:       "Dupla engajada",
		Sentiment:      "positivo",
		SentimentScore: 9,
	}}
}

type fakeSheet struct {
	mu        sync.Mutex
	rows      []models.SurveyRow
	fetchErr  error
	failWrite map[int]bool
	writes    map[int]string
	fetches   int
}

func newFakeSheet(rows ...models.SurveyRow) *fakeSheet {
	return &fakeSheet{rows: rows, failWrite: map[int]bool{}, writes: map[int]string{}}
}

func (f *fakeSheet) FetchRows(ctx context.Context) ([]models.SurveyRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]models.SurveyRow(nil), f.rows...), nil
}

func (f *fakeSheet) UpdateAIFeedback(ctx context.Context, index int, feedback string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite[index] {
		return errors.New("sheets: permission denied")
	}
	f.writes[index] = feedback
	return nil
}

func newTestStore(t *testing.T) *repository.AnnotationRepository {
	t.Helper()
	repo, err := repository.NewAnnotationRepository(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func answer(ts, email, experience, feedback string) models.SurveyRow {
	return models.SurveyRow{
		Timestamp:     ts,
		Email:         email,
		FullName:      "Dupla " + email,
		UserType:      "Mentorado",
		Program:       "Tech",
		MeetingsCount: "3",
		MeetingRating: "9",
		Experience:    experience,
		AIFeedback:    feedback,
	}
}
