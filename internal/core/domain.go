package core

import (
	"errors"
	"time"
)

type (
	// Date is a calendar date with day precision, always in UTC.
	Date struct {
		time.Time
	}

	// Transaction is a single ledger row after normalization.
	// Amount carries a missing-value marker for rows whose amount
	// could not be parsed; such rows survive the load but are
	// excluded from numeric aggregation.
	Transaction struct {
		ID          int64
		Date        Date
		Amount      Amount
		Category    string
		Description string
	}

	// DailySeries is a densified date-indexed amount series: one value
	// per calendar day from Start onward, gaps filled with zero. Every
	// rolling-window computation depends on this contiguity.
	DailySeries struct {
		Start   Date
		Amounts []float64
	}
)

var ErrInsufficientData = errors.New("insufficient data")

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// dateLayouts are the accepted input formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate resolves a string to a calendar date. The time component,
// if any, is truncated.
func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, errors.New("unrecognized date: " + s)
}

// Key returns the ISO calendar date, the serialization used everywhere
// at the boundary.
func (d Date) Key() string {
	return d.Format("2006-01-02")
}

// MonthKey returns the year-month grouping key (e.g. "2024-01").
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// AddDays returns the date n calendar days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

// Len returns the number of days in the series.
func (s DailySeries) Len() int {
	return len(s.Amounts)
}

// DateAt returns the calendar date of position i.
func (s DailySeries) DateAt(i int) Date {
	return s.Start.AddDays(i)
}

// End returns the last observed date. Callers must check Len first.
func (s DailySeries) End() Date {
	return s.Start.AddDays(len(s.Amounts) - 1)
}

// Tail returns the last n values, or all of them when fewer exist.
func (s DailySeries) Tail(n int) []float64 {
	if n >= len(s.Amounts) {
		return s.Amounts
	}
	return s.Amounts[len(s.Amounts)-n:]
}
