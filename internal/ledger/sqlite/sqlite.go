// Package sqlite loads transactions from a SQLite ledger file and
// provides the import path that creates one from scratch.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"spendsight/internal/core"
	"spendsight/internal/ledger"

	_ "modernc.org/sqlite"
)

// Source reads the transactions table of a SQLite ledger file.
type Source struct {
	path string
}

var _ ledger.Source = (*Source)(nil)

// New returns a source for the ledger file at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Load reads every row of the transactions table in date order. A NULL
// amount maps to the missing-value marker.
func (s *Source) Load(ctx context.Context) ([]core.Transaction, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, ledger.NewLoadError(s.path, "open ledger file", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, ledger.NewLoadError(s.path, "open sqlite database", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT id, date, amount, category, description
		FROM transactions
		ORDER BY date, id
	`)
	if err != nil {
		return nil, ledger.NewLoadError(s.path, "query transactions", err)
	}
	defer rows.Close()

	var records []core.Transaction
	for rows.Next() {
		var (
			id          int64
			dateRaw     string
			amount      sql.NullFloat64
			category    string
			description sql.NullString
		)
		if err := rows.Scan(&id, &dateRaw, &amount, &category, &description); err != nil {
			return nil, ledger.NewLoadError(s.path, "scan transaction row", err)
		}
		date, err := core.ParseDate(dateRaw)
		if err != nil {
			return nil, ledger.NewLoadError(s.path, fmt.Sprintf("transaction %d", id), err)
		}
		tx := core.Transaction{
			ID:          id,
			Date:        date,
			Category:    category,
			Description: description.String,
		}
		if amount.Valid {
			tx.Amount = core.NewAmount(amount.Float64)
		}
		records = append(records, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, ledger.NewLoadError(s.path, "iterate transactions", err)
	}
	return records, nil
}
