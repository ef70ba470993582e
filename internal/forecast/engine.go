package forecast

import (
	"encoding/json"

	"spendsight/internal/analytics"
	"spendsight/internal/core"
)

// Engine runs every registered strategy against one shared input
// snapshot. The zero value is unusable; construct with NewEngine.
type Engine struct {
	strategies []Strategy
}

// NewEngine returns an engine with the standard strategy set.
func NewEngine() *Engine {
	return &Engine{strategies: []Strategy{
		MovingAverage{Window: 7},
		ExponentialSmoothing{Alpha: 0.3},
		WeeklyPattern{},
		CategoryAverage{},
	}}
}

// Register appends a strategy to the set.
func (e *Engine) Register(s Strategy) {
	e.strategies = append(e.strategies, s)
}

// Response is the composite forecast document: observed-series metadata
// plus one payload per registered strategy, keyed by strategy name. A
// failure during series preparation collapses the whole response into a
// single failure payload instead of partial results.
type Response struct {
	Success    bool
	Err        string
	DataPoints int
	RangeStart string
	RangeEnd   string
	Results    map[string]Result
}

func (r Response) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(map[string]any{"success": false, "error": r.Err})
	}
	m := map[string]any{
		"success":     true,
		"data_points": r.DataPoints,
		"date_range":  map[string]string{"start": r.RangeStart, "end": r.RangeEnd},
	}
	for name, res := range r.Results {
		m[name] = res
	}
	return json.Marshal(m)
}

// ForecastExpenses builds the densified daily series once and runs the
// full strategy set against it. Individual strategies report their own
// per-method failures without affecting siblings.
func (e *Engine) ForecastExpenses(records []core.Transaction, horizon int) Response {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	series, err := analytics.BuildDailySeries(records)
	if err != nil {
		return Response{Err: "no transactions to forecast from"}
	}

	in := Input{Series: series, Records: records}
	results := make(map[string]Result, len(e.strategies))
	for _, s := range e.strategies {
		results[s.Name()] = s.Forecast(in, horizon)
	}

	return Response{
		Success:    true,
		DataPoints: series.Len(),
		RangeStart: series.Start.Key(),
		RangeEnd:   series.End().Key(),
		Results:    results,
	}
}
