// Package csvfile loads transactions from a CSV ledger file with a
// header row naming at least Date, Amount and Category.
package csvfile

import (
	"context"
	"encoding/csv"
	"os"

	"spendsight/internal/core"
	"spendsight/internal/ledger"
)

// Source reads one CSV file per Load call; nothing is kept open
// between calls.
type Source struct {
	path string
}

var _ ledger.Source = (*Source)(nil)

// New returns a source for the file at path. The file is not touched
// until Load.
func New(path string) *Source {
	return &Source{path: path}
}

// Load parses the whole file. Rows with unparseable amounts keep their
// place with a missing amount; a single malformed date fails the load.
func (s *Source) Load(ctx context.Context) ([]core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, ledger.NewLoadError(s.path, "open csv", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, ledger.NewLoadError(s.path, "parse csv", err)
	}
	if len(rows) == 0 {
		return nil, ledger.NewLoadError(s.path, "empty csv: no header row", nil)
	}

	return ledger.ParseTable(s.path, rows[0], rows[1:])
}
