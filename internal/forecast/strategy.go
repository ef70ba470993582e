// Package forecast projects future daily spending with a set of
// independent closed-form strategies. Each strategy is a variant of the
// Strategy interface with a uniform (input, horizon) contract, so the
// composite engine can iterate over a registered set instead of calling
// four free functions.
package forecast

import (
	"encoding/json"

	"spendsight/internal/core"
)

// DefaultHorizon is the forecast length in days when the caller does not
// specify one.
const DefaultHorizon = 30

// zBand is the multiplier for 95%-style confidence bounds.
const zBand = 1.96

// Input is the snapshot every strategy forecasts from. Series is the
// densified daily series; Records is the raw transaction set for
// strategies that group by something other than date.
type Input struct {
	Series  core.DailySeries
	Records []core.Transaction
}

// Strategy is one forecasting method. Name is the key the composite
// payload files the result under. Forecast never errors: unmet
// preconditions come back as a failure Result.
type Strategy interface {
	Name() string
	Forecast(in Input, horizon int) Result
}

// Point is a single forecast day. LowerBound is clamped to zero since
// spending cannot be negative; UpperBound is unclamped.
type Point struct {
	Predicted  float64 `json:"predicted"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
	DayOfWeek  string  `json:"day_of_week,omitempty"`
}

// CategoryProjection is the per-category linear extrapolation produced
// by the category strategy.
type CategoryProjection struct {
	DailyAverage    float64 `json:"daily_average"`
	MonthlyForecast float64 `json:"monthly_forecast"`
}

// Result is one strategy's payload: either a forecast with one entry per
// horizon day, or a failure naming the unmet precondition. Which fields
// are populated depends on the method; MarshalJSON emits only the keys
// that belong to it.
type Result struct {
	Success bool
	Method  string
	Err     string

	Alpha          float64
	Forecast       map[string]Point
	TotalPredicted float64

	WeeklyPatterns     map[string]float64
	HighestSpendingDay string
	LowestSpendingDay  string

	ForecastDays      int
	CategoryForecasts map[string]CategoryProjection
	TotalForecast     float64
}

func failure(msg string) Result {
	return Result{Err: msg}
}

// MarshalJSON shapes the payload per method, mirroring the boundary
// contract: common success/method keys, then only the fields the
// strategy actually produces.
func (r Result) MarshalJSON() ([]byte, error) {
	m := map[string]any{"success": r.Success}
	if !r.Success {
		m["error"] = r.Err
		return json.Marshal(m)
	}
	m["method"] = r.Method
	if r.Alpha != 0 {
		m["alpha"] = r.Alpha
	}
	if r.Forecast != nil {
		m["forecast"] = r.Forecast
		m["total_predicted"] = r.TotalPredicted
	}
	if r.WeeklyPatterns != nil {
		m["weekly_patterns"] = r.WeeklyPatterns
		m["highest_spending_day"] = r.HighestSpendingDay
		m["lowest_spending_day"] = r.LowestSpendingDay
	}
	if r.CategoryForecasts != nil {
		m["forecast_days"] = r.ForecastDays
		m["category_forecasts"] = r.CategoryForecasts
		m["total_forecast"] = r.TotalForecast
	}
	return json.Marshal(m)
}

// flatForecast projects a constant value with a constant band across the
// horizon, starting the day after the last observed date. Both the
// moving-average and smoothing strategies are flat-line projections.
func flatForecast(last core.Date, value, band float64, horizon int) (map[string]Point, float64) {
	points := make(map[string]Point, horizon)
	var total float64
	for i := 1; i <= horizon; i++ {
		lb := core.Round2(value - band)
		if lb < 0 {
			lb = 0
		}
		points[last.AddDays(i).Key()] = Point{
			Predicted:  core.Round2(value),
			LowerBound: lb,
			UpperBound: core.Round2(value + band),
		}
		total += value
	}
	return points, core.Round2(total)
}
