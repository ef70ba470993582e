// Package backend resolves a transaction-source location reference to
// the ledger.Source implementation that can load it.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"spendsight/internal/ledger"
	"spendsight/internal/ledger/csvfile"
	"spendsight/internal/ledger/google"
	"spendsight/internal/ledger/sqlite"
)

// Factory builds ledger sources from location references.
type Factory struct {
	logger *slog.Logger
	creds  google.Credentials
}

// NewFactory creates a source factory.
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// WithCredentials returns the factory configured with explicit Sheets
// credentials, taking precedence over process env.
func (f *Factory) WithCredentials(creds google.Credentials) *Factory {
	f.creds = creds
	return f
}

// Open resolves the location reference to a source. The source itself
// does no I/O until Load.
func (f *Factory) Open(ctx context.Context, location string) (ledger.Source, error) {
	sourceType := DetectType(location)
	switch sourceType {
	case SheetsSource:
		spreadsheetID, sheetName, err := splitSheetLocation(location)
		if err != nil {
			return nil, err
		}
		src, err := google.New(ctx, spreadsheetID, sheetName, f.creds)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets source: %w", err)
		}
		f.logger.Debug("Resolved ledger source", "type", sourceType, "spreadsheet_id", spreadsheetID)
		return src, nil
	case SQLiteSource:
		f.logger.Debug("Resolved ledger source", "type", sourceType, "path", location)
		return sqlite.New(location), nil
	default:
		f.logger.Debug("Resolved ledger source", "type", sourceType, "path", location)
		return csvfile.New(location), nil
	}
}

// splitSheetLocation parses gsheet://<spreadsheet-id>/<sheet-name>.
// The sheet name defaults when omitted.
func splitSheetLocation(location string) (spreadsheetID, sheetName string, err error) {
	rest := strings.TrimPrefix(location, gsheetScheme)
	if rest == "" {
		return "", "", fmt.Errorf("invalid sheet location %q: missing spreadsheet id", location)
	}
	parts := strings.SplitN(rest, "/", 2)
	spreadsheetID = parts[0]
	if len(parts) == 2 {
		sheetName = parts[1]
	}
	if spreadsheetID == "" {
		return "", "", fmt.Errorf("invalid sheet location %q: missing spreadsheet id", location)
	}
	return spreadsheetID, sheetName, nil
}
