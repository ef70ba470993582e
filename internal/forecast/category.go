package forecast

import (
	"spendsight/internal/core"
)

// minCategoryRecords is the minimum raw record count for the category
// strategy; it groups by category, not by date, so the gate is on
// records rather than series length.
const minCategoryRecords = 7

// CategoryAverage extrapolates each category's average daily spend
// linearly across the horizon. A deterministic projection: no bounds.
type CategoryAverage struct{}

func (CategoryAverage) Name() string { return "category_forecast" }

func (s CategoryAverage) Forecast(in Input, horizon int) Result {
	if len(in.Records) < minCategoryRecords {
		return failure("Insufficient data for category forecast.")
	}

	minDate, maxDate := in.Records[0].Date, in.Records[0].Date
	totals := make(map[string]float64)
	for _, tx := range in.Records {
		if tx.Date.Before(minDate.Time) {
			minDate = tx.Date
		}
		if tx.Date.After(maxDate.Time) {
			maxDate = tx.Date
		}
		if tx.Amount.Valid {
			totals[tx.Category] += tx.Amount.Value
		}
	}

	// All transactions on one day still span one day.
	span := minDate.DaysUntil(maxDate)
	if span == 0 {
		span = 1
	}

	projections := make(map[string]CategoryProjection, len(totals))
	var total float64
	for cat, sum := range totals {
		dailyAvg := sum / float64(span)
		monthly := core.Round2(dailyAvg * float64(horizon))
		projections[cat] = CategoryProjection{
			DailyAverage:    core.Round2(dailyAvg),
			MonthlyForecast: monthly,
		}
		total += monthly
	}

	return Result{
		Success:           true,
		Method:            "category_average",
		ForecastDays:      horizon,
		CategoryForecasts: projections,
		TotalForecast:     core.Round2(total),
	}
}
