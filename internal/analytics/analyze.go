package analytics

import (
	"fmt"

	"spendsight/internal/core"
)

// Analysis is the complete descriptive-analysis document returned by
// Analyze. SpendingTrend is either a Trend or an InsufficientTrend,
// depending on how much history exists.
type Analysis struct {
	Success           bool                    `json:"success"`
	Summary           Summary                 `json:"summary"`
	MonthlySpending   map[string]float64      `json:"monthly_spending"`
	CategoryBreakdown map[string]CategoryStat `json:"category_breakdown"`
	SpendingTrend     any                     `json:"spending_trend"`
	Anomalies         []Anomaly               `json:"anomalies"`
}

// InsufficientTrend is the trend section emitted when the daily series
// is shorter than the rolling window.
type InsufficientTrend struct {
	Trend   string `json:"trend"`
	Message string `json:"message"`
}

// Failure is the uniform failure payload shared by every boundary
// operation.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewFailure builds a failure payload from an error.
func NewFailure(err error) Failure {
	return Failure{Error: err.Error()}
}

// Analyze runs the full descriptive pipeline over the record set. Trend
// analysis degrades to an insufficient_data section on short histories
// instead of failing the sibling sections.
func Analyze(records []core.Transaction) Analysis {
	result := Analysis{
		Success:           true,
		Summary:           SpendingSummary(records),
		MonthlySpending:   MonthlySpending(records),
		CategoryBreakdown: CategoryBreakdown(records),
		Anomalies:         DetectAnomalies(records, DefaultAnomalyThreshold),
	}

	series, err := BuildDailySeries(records)
	if err == nil {
		var trend Trend
		trend, err = SpendingTrend(series, DefaultTrendWindow)
		if err == nil {
			result.SpendingTrend = trend
		}
	}
	if err != nil {
		result.SpendingTrend = InsufficientTrend{
			Trend:   "insufficient_data",
			Message: fmt.Sprintf("Need at least %d days of data for trend analysis", DefaultTrendWindow),
		}
	}

	return result
}
