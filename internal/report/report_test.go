package report

import (
	"encoding/json"
	"testing"

	"spendsight/internal/core"
	"spendsight/internal/forecast"
)

func sampleRecords(t *testing.T) []core.Transaction {
	t.Helper()
	start, err := core.ParseDate("2024-01-01")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	records := make([]core.Transaction, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, core.Transaction{
			ID:       int64(i + 1),
			Date:     start.AddDays(i),
			Amount:   core.NewAmount(10 + float64(i%3)),
			Category: "FOOD",
		})
	}
	return records
}

func TestBuild(t *testing.T) {
	rep := Build(sampleRecords(t), forecast.NewEngine(), 7)

	if !rep.Success {
		t.Fatal("Success = false")
	}
	if !rep.Analysis.Success {
		t.Error("analysis should succeed on a valid record set")
	}
	if rep.Analysis.Summary.TotalTransactions != 20 {
		t.Errorf("TotalTransactions = %d, want 20", rep.Analysis.Summary.TotalTransactions)
	}
	if !rep.Forecast.Success {
		t.Error("forecast should succeed with 20 days of history")
	}
	if rep.Insights.Insights == nil {
		t.Error("insights list must be non-nil so it serializes as an array")
	}

	body, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"success", "analysis", "insights", "forecast"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("missing document key %q", key)
		}
	}
}

func TestBuild_EmptyRecords(t *testing.T) {
	rep := Build(nil, forecast.NewEngine(), 7)

	if rep.Analysis.Summary.TotalTransactions != 0 {
		t.Errorf("TotalTransactions = %d, want 0", rep.Analysis.Summary.TotalTransactions)
	}
	if rep.Forecast.Success {
		t.Error("forecast over no records must fail")
	}
}
