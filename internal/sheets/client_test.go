package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

func TestDataRangeAndFeedbackCell(t *testing.T) {
	assert.Equal(t, "'Respostas'!A:O", DataRange("Respostas"))
	assert.Equal(t, "'Respostas'!O2", FeedbackCell("Respostas", 0))
	assert.Equal(t, "'Respostas'!O11", FeedbackCell("Respostas", 9))
	assert.Equal(t, "'Mentor''s sheet'!O3", FeedbackCell("Mentor's sheet", 1))
}

func TestRowsFromValues(t *testing.T) {
	values := [][]interface{}{
		{"Carimbo", "Email"},
		{"01/02/2024 10:00:00", "a@x", "Ana", "", "Mentor", "Tech", "3", "", "60", float64(9)},
		{"02/02/2024 10:00:00", "b@x"},
	}

	rows := RowsFromValues(values)
	require.Len(t, rows, 2)
	assert.Equal(t, "a@x", rows[0].Email)
	assert.Equal(t, "9", rows[0].MeetingRating)
	assert.Equal(t, "b@x", rows[1].Email)
	assert.Empty(t, rows[1].AIFeedback)

	assert.Empty(t, RowsFromValues(nil))
	assert.Empty(t, RowsFromValues([][]interface{}{{"header"}}))
}

type fakeSheetsAPI struct {
	mu      sync.Mutex
	updates map[string]string
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.Contains(r.URL.Path, "/values/") && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(map[string]interface{}{
			"range": "'Respostas'!A1:O3",
			"values": [][]string{
				{"Carimbo", "Email"},
				{"01/02/2024 10:00:00", "a@x", "Ana"},
				{"02/02/2024 10:00:00", "b@x", "Bia"},
			},
		})
	case strings.Contains(r.URL.Path, "/values/") && r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.updates[r.URL.Path+"?"+r.URL.Query().Get("valueInputOption")] = string(body)
		f.mu.Unlock()
		w.Write([]byte(`{}`))
	default:
		w.Write([]byte(`{"sheets": [{"properties": {"title": "Respostas"}}]}`))
	}
}

func TestClient_FetchAndUpdate(t *testing.T) {
	api := &fakeSheetsAPI{updates: make(map[string]string)}
	srv := httptest.NewServer(api)
	defer srv.Close()

	ctx := context.Background()
	c, err := NewClient(ctx, Config{SpreadsheetID: "sheet-id"}, zap.NewNop(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	rows, err := c.FetchRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bia", rows[1].FullName)

	require.NoError(t, c.UpdateAIFeedback(ctx, 1, "[POSITIVO] [9/10] ok"))

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.updates, 1)
	for key, body := range api.updates {
		assert.Contains(t, key, "'Respostas'!O3")
		assert.True(t, strings.HasSuffix(key, "?RAW"))
		assert.Contains(t, body, "[POSITIVO] [9/10] ok")
	}
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(context.Background(), Config{}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewClient(context.Background(), Config{SpreadsheetID: "x"}, zap.NewNop())
	assert.Error(t, err)
}
