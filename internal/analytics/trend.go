package analytics

import (
	"fmt"

	"spendsight/internal/core"
)

// DefaultTrendWindow is the rolling window used when the caller does not
// override it.
const DefaultTrendWindow = 7

// Trend direction classifications.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// recentDays is how much of the daily series the trend result carries
// verbatim for display.
const recentDays = 30

// Trend is the rolling-average trend over the daily series.
type Trend struct {
	Direction            string             `json:"trend"`
	ChangePercentage     float64            `json:"change_percentage"`
	CurrentDailyAverage  float64            `json:"current_daily_average"`
	PreviousDailyAverage float64            `json:"previous_daily_average"`
	DailySpending        map[string]float64 `json:"daily_spending"`
}

// SpendingTrend classifies the direction of spending using trailing
// rolling averages over the densified daily series. It returns
// core.ErrInsufficientData when the series is shorter than the window.
//
// The "older" reference point is the rolling average window positions
// back from the end. For series shorter than 2*window-1 that position
// has no defined rolling value, and the recent average is reused,
// which pins the computed change to 0.
func SpendingTrend(series core.DailySeries, window int) (Trend, error) {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	n := series.Len()
	if n < window {
		return Trend{}, fmt.Errorf("need at least %d days of data for trend analysis: %w",
			window, core.ErrInsufficientData)
	}

	rolling := rollingMean(series.Amounts, window)

	recent := rolling[n-1]
	older := recent
	if n > window && n-window >= window-1 {
		older = rolling[n-window]
	}

	var change float64
	if older > 0 {
		change = (recent - older) / older * 100
	}

	direction := TrendStable
	switch {
	case change > 5:
		direction = TrendIncreasing
	case change < -5:
		direction = TrendDecreasing
	}

	tail := series.Tail(recentDays)
	daily := make(map[string]float64, len(tail))
	for i, v := range tail {
		daily[series.DateAt(n-len(tail)+i).Key()] = v
	}

	return Trend{
		Direction:            direction,
		ChangePercentage:     core.Round2(change),
		CurrentDailyAverage:  core.Round2(recent),
		PreviousDailyAverage: core.Round2(older),
		DailySpending:        daily,
	}, nil
}

// rollingMean computes the trailing mean of width window at every
// position where a full window exists; earlier positions hold 0 and are
// never read by callers.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}
