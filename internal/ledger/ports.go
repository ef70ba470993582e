// Package ledger defines the port for tabular transaction sources and
// the shared load-failure type. Implementations live in subpackages;
// wiring happens in the backend factory.
package ledger

import (
	"context"
	"fmt"

	"spendsight/internal/core"
)

// Required source columns. ID and Description are optional.
const (
	ColumnDate     = "Date"
	ColumnAmount   = "Amount"
	ColumnCategory = "Category"
)

// Source loads a complete normalized record set from one tabular
// transaction source. Loading is all-or-nothing: a source that cannot
// be opened, parsed, or that contains a malformed date yields a
// *LoadError and no records.
type Source interface {
	Load(ctx context.Context) ([]core.Transaction, error)
}

// LoadError is the fatal load failure: missing source, unparseable
// content, or missing required columns.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Source, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError builds a LoadError for the named source.
func NewLoadError(source, reason string, err error) *LoadError {
	return &LoadError{Source: source, Reason: reason, Err: err}
}
