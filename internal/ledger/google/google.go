// Package google loads transactions from a Google Sheets tab via the
// Sheets API, using service-account credentials from the environment.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"spendsight/internal/core"
	"spendsight/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Source reads one sheet tab. The first row must be a header naming at
// least Date, Amount and Category.
type Source struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ledger.Source = (*Source)(nil)

// Credentials holds explicit service-account material. Zero-value
// fields fall back to the environment during resolution.
type Credentials struct {
	JSON string // raw service-account JSON
	File string // path to a service-account JSON file
}

// New creates a Sheets-backed source for the given spreadsheet and tab
// using the supplied credentials.
func New(ctx context.Context, spreadsheetID, sheetName string, creds Credentials) (*Source, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if sheetName == "" {
		sheetName = "Transactions"
	}

	credentialsJSON, err := resolveCredentials(creds)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Source{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// resolveCredentials picks the service-account JSON: explicit material
// wins over the environment, and inline JSON wins over a file path.
func resolveCredentials(creds Credentials) ([]byte, error) {
	inlineJSON := strings.TrimSpace(creds.JSON)
	if inlineJSON == "" {
		inlineJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	}
	if inlineJSON != "" {
		return []byte(inlineJSON), nil
	}

	file := strings.TrimSpace(creds.File)
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	}
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	credentialsJSON, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return credentialsJSON, nil
}

// Load fetches the whole tab and normalizes it through the shared
// table parser.
func (s *Source) Load(ctx context.Context) ([]core.Transaction, error) {
	name := fmt.Sprintf("gsheet://%s/%s", s.spreadsheetID, s.sheetName)
	rng := fmt.Sprintf("%s!A:Z", s.sheetName)

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, ledger.NewLoadError(name, "fetch sheet values", err)
	}
	if len(resp.Values) == 0 {
		return nil, ledger.NewLoadError(name, "empty sheet: no header row", nil)
	}

	header := toStrings(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := toStrings(raw)
		if blank(row) {
			continue
		}
		rows = append(rows, row)
	}

	return ledger.ParseTable(name, header, rows)
}

func toStrings(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return out
}

func blank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
