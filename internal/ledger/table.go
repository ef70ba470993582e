package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"spendsight/internal/core"
)

// ParseTable normalizes a header row plus data rows into the record
// set. Column names match case-insensitively. Unparseable amounts
// become missing values; a single malformed date fails the whole table
// with a *LoadError naming the offending row.
func ParseTable(source string, header []string, rows [][]string) ([]core.Transaction, error) {
	cols, err := mapColumns(header)
	if err != nil {
		return nil, NewLoadError(source, err.Error(), nil)
	}

	var records []core.Transaction
	for i, row := range rows {
		date, err := core.ParseDate(strings.TrimSpace(field(row, cols.date)))
		if err != nil {
			return nil, NewLoadError(source, fmt.Sprintf("row %d", i+2), err)
		}

		tx := core.Transaction{
			Date:     date,
			Amount:   core.ParseAmount(field(row, cols.amount)),
			Category: strings.TrimSpace(field(row, cols.category)),
		}
		if cols.id >= 0 {
			if id, err := strconv.ParseInt(strings.TrimSpace(field(row, cols.id)), 10, 64); err == nil {
				tx.ID = id
			}
		}
		if cols.description >= 0 {
			tx.Description = strings.TrimSpace(field(row, cols.description))
		}
		records = append(records, tx)
	}
	return records, nil
}

type columnIndex struct {
	date, amount, category, id, description int
}

func mapColumns(header []string) (columnIndex, error) {
	cols := columnIndex{date: -1, amount: -1, category: -1, id: -1, description: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case strings.ToLower(ColumnDate):
			cols.date = i
		case strings.ToLower(ColumnAmount):
			cols.amount = i
		case strings.ToLower(ColumnCategory):
			cols.category = i
		case "id":
			cols.id = i
		case "description":
			cols.description = i
		}
	}
	var missing []string
	if cols.date < 0 {
		missing = append(missing, ColumnDate)
	}
	if cols.amount < 0 {
		missing = append(missing, ColumnAmount)
	}
	if cols.category < 0 {
		missing = append(missing, ColumnCategory)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
