package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/terrazza/bizplanner/internal/config"
)

// Repository is the spreadsheet surface used by the projection export.
type Repository interface {
	// ReplaceRange clears sheetRange and writes rows starting at its top-left cell.
	ReplaceRange(ctx context.Context, sheetRange string, rows [][]interface{}) error
	// AppendRow adds one row below the last populated row of sheetRange.
	AppendRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// ColumnRange returns the A1 range covering the first n columns of tab,
// e.g. ColumnRange("Projection", 15) == "Projection!A:O".
func ColumnRange(tab string, n int) string {
	if n < 1 {
		n = 1
	}
	last := columnName(n)
	return fmt.Sprintf("%s!A:%s", tab, last)
}

func columnName(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func tabOf(sheetRange string) (string, error) {
	tab, _, ok := strings.Cut(sheetRange, "!")
	if !ok || tab == "" {
		return "", fmt.Errorf("range %q has no sheet name", sheetRange)
	}
	return strings.Trim(tab, "'"), nil
}

// GoogleSheetRepository writes export tables through the Google Sheets API.
// Tabs referenced by a range are created on first use.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger

	mu    sync.Mutex
	known map[string]bool
}

// NewGoogleSheetRepository authenticates with the service account file in cfg.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger.Named("repo.sheets"),
	}, nil
}

// ReplaceRange overwrites a block of cells with rows.
func (r *GoogleSheetRepository) ReplaceRange(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if err := r.ensureTab(ctx, sheetRange); err != nil {
		return err
	}

	if _, err := r.service.Spreadsheets.Values.Clear(r.spreadsheetID, sheetRange, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear range %s: %w", sheetRange, err)
	}

	_, err := r.service.Spreadsheets.Values.Update(r.spreadsheetID, sheetRange, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write range %s: %w", sheetRange, err)
	}

	r.logger.Debug("range replaced", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}

// AppendRow adds values as a new row at the end of sheetRange.
func (r *GoogleSheetRepository) AppendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if err := r.ensureTab(ctx, sheetRange); err != nil {
		return err
	}

	_, err := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, &sheetsapi.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended", zap.String("range", sheetRange))
	return nil
}

func (r *GoogleSheetRepository) ensureTab(ctx context.Context, sheetRange string) error {
	tab, err := tabOf(sheetRange)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.known == nil {
		if err := r.loadTabs(ctx); err != nil {
			return err
		}
	}
	if r.known[tab] {
		return nil
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{Properties: &sheetsapi.SheetProperties{Title: tab}},
		}},
	}
	if _, err := r.service.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", tab, err)
	}
	r.known[tab] = true
	r.logger.Info("sheet tab created", zap.String("tab", tab))
	return nil
}

func (r *GoogleSheetRepository) loadTabs(ctx context.Context) error {
	doc, err := r.service.Spreadsheets.Get(r.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet %s: %w", r.spreadsheetID, err)
	}
	if doc == nil {
		return errors.New("empty spreadsheet metadata")
	}

	r.known = make(map[string]bool, len(doc.Sheets))
	for _, sh := range doc.Sheets {
		if sh.Properties != nil {
			r.known[sh.Properties.Title] = true
		}
	}
	return nil
}
