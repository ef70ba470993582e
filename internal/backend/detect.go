package backend

import (
	"path/filepath"
	"strings"
)

// SourceType identifies which ledger-source implementation serves a
// location reference.
type SourceType string

const (
	CSVSource    SourceType = "csv"
	SQLiteSource SourceType = "sqlite"
	SheetsSource SourceType = "sheets"
)

// IsValid reports whether the source type is one we can construct.
func (t SourceType) IsValid() bool {
	switch t {
	case CSVSource, SQLiteSource, SheetsSource:
		return true
	}
	return false
}

// gsheetScheme marks a Google Sheets location reference:
// gsheet://<spreadsheet-id>/<sheet-name>.
const gsheetScheme = "gsheet://"

// DetectType classifies a location reference. SQLite ledger files are
// recognized by extension; everything else on disk is treated as CSV.
func DetectType(location string) SourceType {
	if strings.HasPrefix(location, gsheetScheme) {
		return SheetsSource
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return SQLiteSource
	}
	return CSVSource
}
