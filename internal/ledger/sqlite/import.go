package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"spendsight/internal/core"
)

// Import writes a record set into the ledger file at dbPath, creating
// the schema first when needed. All rows go in one transaction so a
// partial import rolls back on error. Returns the number of rows
// inserted.
func Import(ctx context.Context, dbPath string, records []core.Transaction) (int, error) {
	if err := RunMigrations(dbPath); err != nil {
		return 0, fmt.Errorf("prepare ledger schema: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("open ledger file: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback is a no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (date, amount, category, description)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		amount := sql.NullFloat64{Float64: rec.Amount.Value, Valid: rec.Amount.Valid}
		if _, err := stmt.ExecContext(ctx, rec.Date.Key(), amount, rec.Category, rec.Description); err != nil {
			return inserted, fmt.Errorf("insert transaction: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit tx: %w", err)
	}
	return inserted, nil
}
