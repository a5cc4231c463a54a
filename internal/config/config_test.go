package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mentorship-dashboard/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeFile(t, "config.yml", "server: {}\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.ModelName)
	assert.Equal(t, 3, cfg.Gemini.MaxRetries)
	assert.Equal(t, "./data/dashboard.db", cfg.Database.Path)
	assert.Equal(t, 1500*time.Millisecond, cfg.Batch.Delay)
	assert.Equal(t, 3, cfg.MaxFailuresBeforeSwitch)
	assert.False(t, cfg.Dashboard.AnnotateActivities)
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "g-key")
	t.Setenv("TEST_GROQ_KEY", "q-key")
	t.Setenv("TEST_SHEET_ID", "sheet-123")

	path := writeFile(t, "config.yml", `
server:
  port: "8080"
sheets:
  spreadsheet_id: ${TEST_SHEET_ID}
  sheet_name: Respostas
providers:
  - type: gemini
    api_key: ${TEST_GEMINI_KEY}
    requests_per_minute: 10
  - type: groq
    api_key: ${TEST_GROQ_KEY}
    model_name: llama-3.1-8b-instant
batch:
  delay: 2s
dashboard:
  annotate_activities: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sheet-123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "Respostas", cfg.Sheets.SheetName)
	require.Len(t, cfg.Providers, 2)
	assert.Equal(t, llm.ProviderGemini, cfg.Providers[0].Type)
	assert.Equal(t, "g-key", cfg.Providers[0].APIKey)
	assert.Equal(t, 10, cfg.Providers[0].RequestsPerMinute)
	assert.Equal(t, "q-key", cfg.Providers[1].APIKey)
	assert.Equal(t, 2*time.Second, cfg.Batch.Delay)
	assert.True(t, cfg.Dashboard.AnnotateActivities)
}

func TestLoadConfig_CredentialsFile(t *testing.T) {
	keyPath := writeFile(t, "key.json", `{"type":"service_account"}`)
	path := writeFile(t, "config.yml", "sheets:\n  credentials_file: "+keyPath+"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, cfg.Sheets.CredentialsJSON)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yml", "server: [unclosed"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))

	envPath := writeFile(t, ".env", "TEST_DOTENV_VALUE=from-file\n")
	t.Setenv("TEST_DOTENV_VALUE", "")
	os.Unsetenv("TEST_DOTENV_VALUE")

	require.NoError(t, LoadEnv(envPath))
	assert.Equal(t, "from-file", os.Getenv("TEST_DOTENV_VALUE"))
}
