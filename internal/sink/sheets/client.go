package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/ahl-official/ahl-utm-tracking/internal/config"
)

// Client implements sink.TabularSink for a Google Sheets spreadsheet
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	log           *zap.Logger
}

// NewClient creates a Sheets client authenticated with the given
// service-account credentials
func NewClient(ctx context.Context, cfg *config.Sheets, credentialsJSON []byte, log *zap.Logger) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	log.Info("Sheets client created",
		zap.String("spreadsheet_id", cfg.SpreadsheetID),
		zap.String("sheet", cfg.SheetName))

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		log:           log,
	}, nil
}

// EnsureSchema creates the target tab and header row when absent. An
// existing header that differs from the expected one is logged, not
// rewritten.
func (c *Client) EnsureSchema(ctx context.Context, header []interface{}) error {
	spreadsheet, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	tabExists := false
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == c.sheetName {
			tabExists = true
			break
		}
	}

	if !tabExists {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: c.sheetName},
				},
			}},
		}
		if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to create sheet tab %s: %w", c.sheetName, err)
		}
		c.log.Info("Created sheet tab", zap.String("sheet", c.sheetName))
	}

	headerRange := fmt.Sprintf("'%s'!1:1", c.sheetName)
	existing, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}

	if len(existing.Values) == 0 || len(existing.Values[0]) == 0 {
		vr := &sheets.ValueRange{Values: [][]interface{}{header}}
		_, err := c.svc.Spreadsheets.Values.
			Update(c.spreadsheetID, headerRange, vr).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}
		c.log.Info("Wrote header row", zap.String("sheet", c.sheetName))
		return nil
	}

	if !headerMatches(existing.Values[0], header) {
		c.log.Warn("Sheet header differs from expected schema, leaving as-is",
			zap.String("sheet", c.sheetName))
	}

	return nil
}

// AppendRows appends all rows below the current data in one call
func (c *Client) AppendRows(ctx context.Context, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	vr := &sheets.ValueRange{Values: rows}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, fmt.Sprintf("'%s'!A1", c.sheetName), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append %d rows: %w", len(rows), err)
	}

	return nil
}

func headerMatches(got, want []interface{}) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if fmt.Sprint(got[i]) != fmt.Sprint(want[i]) {
			return false
		}
	}
	return true
}
