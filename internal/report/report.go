// Package report assembles the combined analysis document served by the
// API and printed by the CLI.
package report

import (
	"spendsight/internal/analytics"
	"spendsight/internal/core"
	"spendsight/internal/forecast"
	"spendsight/internal/insights"
)

// Report is the full pipeline output: descriptive analysis, derived
// insights and forecasts in one document.
type Report struct {
	Success  bool               `json:"success"`
	Analysis analytics.Analysis `json:"analysis"`
	Insights insights.Document  `json:"insights"`
	Forecast forecast.Response  `json:"forecast"`
}

// Build runs the complete pipeline over a record set.
func Build(records []core.Transaction, engine *forecast.Engine, horizon int) Report {
	analysis := analytics.Analyze(records)
	doc, _ := insights.Complete(analysis)

	return Report{
		Success:  true,
		Analysis: analysis,
		Insights: doc,
		Forecast: engine.ForecastExpenses(records, horizon),
	}
}
