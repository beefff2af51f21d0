package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/restocked/stocklog/internal/config"
	"github.com/restocked/stocklog/internal/domain/models"
)

const (
	spendReportRange = "Spend!A:D"
	dateLayout       = "2006-01-02"
)

// Exporter mirrors finalized figures into the bookkeeping spreadsheet the
// owner already works in.
type Exporter interface {
	AppendSpendReport(ctx context.Context, report models.DailySpendReport) error
	AppendLog(ctx context.Context, log models.DailyLog) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSpendReport appends one nightly snapshot row.
func (e *GoogleSheetExporter) AppendSpendReport(ctx context.Context, report models.DailySpendReport) error {
	values := []interface{}{
		report.Date.Format(dateLayout),
		report.LogCount,
		report.SupplierCount,
		report.TotalSpend,
	}
	return e.appendRow(ctx, spendReportRange, values)
}

// AppendLog appends one confirmed procurement log to the category's sheet.
func (e *GoogleSheetExporter) AppendLog(ctx context.Context, log models.DailyLog) error {
	sheetRange := fmt.Sprintf("%s!A:E", log.Category)
	values := []interface{}{
		log.Date.Format(dateLayout),
		log.Supplier,
		len(log.Items),
		log.TotalCost,
		log.Notes,
	}
	return e.appendRow(ctx, sheetRange, values)
}

func (e *GoogleSheetExporter) appendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	e.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}
