package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"mentorship-dashboard/internal/llm"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Sheets struct {
		SpreadsheetID string `yaml:"spreadsheet_id"`
		// Service account key JSON, usually ${GOOGLE_SHEETS_SERVICE_ACCOUNT_KEY}
		CredentialsJSON string `yaml:"credentials_json"`
		// Optional path to the key file, read when CredentialsJSON is empty
		CredentialsFile string `yaml:"credentials_file"`
		SheetName       string `yaml:"sheet_name"`
	} `yaml:"sheets"`

	// Multiple providers configuration
	Providers []llm.ProviderConfig `yaml:"providers"`

	// Legacy single provider config (fallback)
	Gemini struct {
		APIKey     string `yaml:"api_key"`
		ModelName  string `yaml:"model_name"`
		MaxRetries int    `yaml:"max_retries"`
	} `yaml:"gemini"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Batch struct {
		// Minimum spacing between two annotation calls
		Delay time.Duration `yaml:"delay"`
	} `yaml:"batch"`

	Dashboard struct {
		// Annotate displayed activities that have no AI feedback yet
		AnnotateActivities bool `yaml:"annotate_activities"`
	} `yaml:"dashboard"`

	MaxFailuresBeforeSwitch int `yaml:"max_failures_before_switch"`
}

// LoadEnv reads a .env file into the process environment. A missing file is
// not an error.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from YAML file
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Expand environment variables in secrets and ids
	for i := range config.Providers {
		config.Providers[i].APIKey = os.ExpandEnv(config.Providers[i].APIKey)
	}
	config.Gemini.APIKey = os.ExpandEnv(config.Gemini.APIKey)
	config.Sheets.SpreadsheetID = os.ExpandEnv(config.Sheets.SpreadsheetID)
	config.Sheets.CredentialsJSON = os.ExpandEnv(config.Sheets.CredentialsJSON)
	config.Sheets.CredentialsFile = os.ExpandEnv(config.Sheets.CredentialsFile)

	// Set defaults
	if config.Server.Port == "" {
		config.Server.Port = "3001"
	}

	if config.Gemini.ModelName == "" {
		config.Gemini.ModelName = "gemini-1.5-flash"
	}

	if config.Gemini.MaxRetries == 0 {
		config.Gemini.MaxRetries = 3
	}

	if config.Database.Path == "" {
		config.Database.Path = "./data/dashboard.db"
	}

	if config.Batch.Delay == 0 {
		config.Batch.Delay = 1500 * time.Millisecond
	}

	if config.MaxFailuresBeforeSwitch == 0 {
		config.MaxFailuresBeforeSwitch = 3
	}

	if config.Sheets.CredentialsJSON == "" && config.Sheets.CredentialsFile != "" {
		data, err := os.ReadFile(config.Sheets.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		config.Sheets.CredentialsJSON = string(data)
	}

	return config, nil
}
