// Package sheets reads survey rows from a Google spreadsheet and writes AI
// feedback back into it.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mentorship-dashboard/internal/models"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// headerRows is the number of rows above the first answer.
const headerRows = 1

// Config for the Sheets client
type Config struct {
	SpreadsheetID   string
	CredentialsJSON string // service account key
	SheetName       string // defaults to the first sheet of the spreadsheet
}

// Client is the spreadsheet-backed row source.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *zap.Logger
}

// NewClient creates a Sheets client. Extra options are appended after the
// credentials, which lets callers point the client at another endpoint.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet ID is required")
	}

	clientOpts := make([]option.ClientOption, 0, len(opts)+2)
	if cfg.CredentialsJSON != "" {
		clientOpts = append(clientOpts,
			option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
			option.WithScopes(sheets.SpreadsheetsScope))
	} else if len(opts) == 0 {
		return nil, errors.New("service account credentials are required")
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	logger.Info("Sheets client initialized",
		zap.String("spreadsheet_id", cfg.SpreadsheetID),
		zap.String("sheet", cfg.SheetName))

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger,
	}, nil
}

// resolveSheet returns the configured sheet name or the title of the first sheet.
func (c *Client) resolveSheet(ctx context.Context) (string, error) {
	if c.sheetName != "" {
		return c.sheetName, nil
	}

	meta, err := c.service.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}
	if len(meta.Sheets) > 0 && meta.Sheets[0].Properties != nil && meta.Sheets[0].Properties.Title != "" {
		return meta.Sheets[0].Properties.Title, nil
	}
	return "Sheet1", nil
}

// FetchRows reads every answer of the sheet, skipping the header row.
func (c *Client) FetchRows(ctx context.Context) ([]models.SurveyRow, error) {
	sheet, err := c.resolveSheet(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, DataRange(sheet)).Context(ctx).Do()
	if err != nil {
		c.logger.Error("Failed to fetch sheet data", zap.String("sheet", sheet), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch data from Google Sheets: %w", err)
	}

	rows := RowsFromValues(resp.Values)
	c.logger.Debug("Fetched sheet rows", zap.String("sheet", sheet), zap.Int("rows", len(rows)))
	return rows, nil
}

// UpdateAIFeedback writes feedback into the AI column of the data row at index
// (0 is the first row below the header).
func (c *Client) UpdateAIFeedback(ctx context.Context, index int, feedback string) error {
	sheet, err := c.resolveSheet(ctx)
	if err != nil {
		return err
	}

	cell := FeedbackCell(sheet, index)
	_, err = c.service.Spreadsheets.Values.Update(c.spreadsheetID, cell, &sheets.ValueRange{
		Values: [][]interface{}{{feedback}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", cell, err)
	}

	c.logger.Debug("Feedback written", zap.String("cell", cell))
	return nil
}

// DataRange is the A1 range holding the survey columns.
func DataRange(sheet string) string {
	return fmt.Sprintf("%s!A:%s", quoteSheet(sheet), models.AIFeedbackColumn)
}

// FeedbackCell is the A1 address of the AI column for data row index.
func FeedbackCell(sheet string, index int) string {
	return fmt.Sprintf("%s!%s%d", quoteSheet(sheet), models.AIFeedbackColumn, index+headerRows+1)
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// RowsFromValues maps the raw range values to survey rows, dropping the header.
func RowsFromValues(values [][]interface{}) []models.SurveyRow {
	if len(values) <= headerRows {
		return []models.SurveyRow{}
	}

	rows := make([]models.SurveyRow, 0, len(values)-headerRows)
	for _, raw := range values[headerRows:] {
		cells := make([]string, len(raw))
		for i, v := range raw {
			cells[i] = cellString(v)
		}
		rows = append(rows, models.RowFromCells(cells))
	}
	return rows
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
