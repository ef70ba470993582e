// Package analytics computes descriptive spending statistics over a
// normalized transaction set: grouped aggregates, rolling trends and
// per-transaction anomaly scores. Every function recomputes from its
// input on each call; nothing is cached between invocations.
package analytics

import (
	"sort"

	"spendsight/internal/core"
)

// CategoryStat describes one category's share of overall spending.
type CategoryStat struct {
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Average    float64 `json:"average"`
	Percentage float64 `json:"percentage"`
}

// DateRange is the observed calendar span, nil-ended when no data exists.
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Summary is the headline spending summary.
type Summary struct {
	TotalSpending      float64   `json:"total_spending"`
	TotalTransactions  int       `json:"total_transactions"`
	AverageTransaction float64   `json:"average_transaction"`
	MaxTransaction     float64   `json:"max_transaction"`
	MinTransaction     float64   `json:"min_transaction"`
	DateRange          DateRange `json:"date_range"`
}

// MonthlySpending groups amounts by calendar year+month, keyed "2006-01".
// Missing amounts are excluded from the sums.
func MonthlySpending(records []core.Transaction) map[string]float64 {
	monthly := make(map[string]float64)
	for _, tx := range records {
		if !tx.Amount.Valid {
			continue
		}
		monthly[tx.Date.MonthKey()] += tx.Amount.Value
	}
	for k, v := range monthly {
		monthly[k] = core.Round2(v)
	}
	return monthly
}

// CategoryBreakdown groups spending by category. Count covers only rows
// with a present amount, so average stays total/count. Percentage is
// relative to the grand total and defaults to 0 when that total is 0.
func CategoryBreakdown(records []core.Transaction) map[string]CategoryStat {
	type agg struct {
		total float64
		count int
	}
	byCat := make(map[string]*agg)
	var grandTotal float64
	for _, tx := range records {
		if !tx.Amount.Valid {
			continue
		}
		a := byCat[tx.Category]
		if a == nil {
			a = &agg{}
			byCat[tx.Category] = a
		}
		a.total += tx.Amount.Value
		a.count++
		grandTotal += tx.Amount.Value
	}

	breakdown := make(map[string]CategoryStat, len(byCat))
	for cat, a := range byCat {
		stat := CategoryStat{
			Total:   core.Round2(a.total),
			Count:   a.count,
			Average: core.Round2(a.total / float64(a.count)),
		}
		if grandTotal > 0 {
			stat.Percentage = core.Round2(a.total / grandTotal * 100)
		}
		breakdown[cat] = stat
	}
	return breakdown
}

// SpendingSummary computes the overall summary. With zero records every
// numeric field degenerates to 0 and the date range to nulls.
func SpendingSummary(records []core.Transaction) Summary {
	s := Summary{TotalTransactions: len(records)}
	if len(records) == 0 {
		return s
	}

	first := true
	var total float64
	minDate, maxDate := records[0].Date, records[0].Date
	for _, tx := range records {
		if tx.Date.Before(minDate.Time) {
			minDate = tx.Date
		}
		if tx.Date.After(maxDate.Time) {
			maxDate = tx.Date
		}
		if !tx.Amount.Valid {
			continue
		}
		total += tx.Amount.Value
		if first {
			s.MaxTransaction = tx.Amount.Value
			s.MinTransaction = tx.Amount.Value
			first = false
			continue
		}
		if tx.Amount.Value > s.MaxTransaction {
			s.MaxTransaction = tx.Amount.Value
		}
		if tx.Amount.Value < s.MinTransaction {
			s.MinTransaction = tx.Amount.Value
		}
	}

	s.TotalSpending = core.Round2(total)
	s.AverageTransaction = core.Round2(total / float64(len(records)))
	start, end := minDate.Key(), maxDate.Key()
	s.DateRange = DateRange{Start: &start, End: &end}
	return s
}

// BuildDailySeries groups amounts by calendar date and materializes every
// day in [min, max] with 0 where nothing was observed. Downstream window
// math depends on this densification.
func BuildDailySeries(records []core.Transaction) (core.DailySeries, error) {
	if len(records) == 0 {
		return core.DailySeries{}, core.ErrInsufficientData
	}

	byDay := make(map[string]float64)
	minDate, maxDate := records[0].Date, records[0].Date
	for _, tx := range records {
		if tx.Date.Before(minDate.Time) {
			minDate = tx.Date
		}
		if tx.Date.After(maxDate.Time) {
			maxDate = tx.Date
		}
		if tx.Amount.Valid {
			byDay[tx.Date.Key()] += tx.Amount.Value
		} else {
			byDay[tx.Date.Key()] += 0
		}
	}

	days := minDate.DaysUntil(maxDate) + 1
	series := core.DailySeries{Start: minDate, Amounts: make([]float64, days)}
	for i := 0; i < days; i++ {
		series.Amounts[i] = byDay[series.DateAt(i).Key()]
	}
	return series, nil
}

// SortedMonthKeys returns the month keys in chronological order. The
// "2006-01" key format makes lexical order chronological.
func SortedMonthKeys(monthly map[string]float64) []string {
	keys := make([]string, 0, len(monthly))
	for k := range monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validAmounts extracts the present amount values in record order.
func validAmounts(records []core.Transaction) []float64 {
	out := make([]float64, 0, len(records))
	for _, tx := range records {
		if tx.Amount.Valid {
			out = append(out, tx.Amount.Value)
		}
	}
	return out
}
