package analytics

import (
	"testing"

	"spendsight/internal/core"
)

// tenWithOutlier is nine ordinary transactions plus one large outlier.
func tenWithOutlier() []core.Transaction {
	records := make([]core.Transaction, 0, 10)
	for i := 0; i < 9; i++ {
		records = append(records, core.Transaction{
			ID:       int64(i + 1),
			Date:     core.NewDate(2024, 1, i+1),
			Amount:   core.NewAmount(10),
			Category: "FOOD",
		})
	}
	records = append(records, core.Transaction{
		ID:          10,
		Date:        core.NewDate(2024, 1, 10),
		Amount:      core.NewAmount(500),
		Category:    "SHOPPING",
		Description: "new laptop",
	})
	return records
}

func TestDetectAnomalies_FlagsOutlier(t *testing.T) {
	anomalies := DetectAnomalies(tenWithOutlier(), DefaultAnomalyThreshold)

	if len(anomalies) != 1 {
		t.Fatalf("anomalies = %d, want 1", len(anomalies))
	}

	a := anomalies[0]
	if a.ID != 10 {
		t.Errorf("ID = %d, want 10", a.ID)
	}
	if a.Amount != 500 {
		t.Errorf("Amount = %v, want 500", a.Amount)
	}
	if a.AnomalyType != "high" {
		t.Errorf("AnomalyType = %q, want high", a.AnomalyType)
	}
	if a.Date != "2024-01-10" {
		t.Errorf("Date = %q, want 2024-01-10", a.Date)
	}
	if a.ZScore <= DefaultAnomalyThreshold {
		t.Errorf("ZScore = %v, want > %v", a.ZScore, DefaultAnomalyThreshold)
	}
}

func TestDetectAnomalies_TooFewRecords(t *testing.T) {
	records := tenWithOutlier()[:9]
	if got := DetectAnomalies(records, DefaultAnomalyThreshold); len(got) != 0 {
		t.Errorf("anomalies on 9 records = %d, want 0", len(got))
	}
}

func TestDetectAnomalies_ConstantAmounts(t *testing.T) {
	records := make([]core.Transaction, 12)
	for i := range records {
		records[i] = tx(core.NewDate(2024, 1, i+1), 25, "FOOD")
	}
	if got := DetectAnomalies(records, DefaultAnomalyThreshold); len(got) != 0 {
		t.Errorf("anomalies on zero-spread data = %d, want 0", len(got))
	}
}

func TestDetectAnomalies_MissingAmountsNeverScore(t *testing.T) {
	records := tenWithOutlier()
	records = append(records, missingTx(core.NewDate(2024, 1, 11), "FOOD"))

	anomalies := DetectAnomalies(records, DefaultAnomalyThreshold)
	for _, a := range anomalies {
		if a.Date == "2024-01-11" {
			t.Errorf("missing-amount transaction was flagged: %+v", a)
		}
	}
}

func TestDetectAnomalies_Deterministic(t *testing.T) {
	records := tenWithOutlier()
	first := DetectAnomalies(records, DefaultAnomalyThreshold)
	second := DetectAnomalies(records, DefaultAnomalyThreshold)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("anomaly %d differs between runs", i)
		}
	}
}

func TestAnalyze_ShortHistoryDegradesTrendOnly(t *testing.T) {
	records := []core.Transaction{
		tx(core.NewDate(2024, 1, 1), 10, "FOOD"),
		tx(core.NewDate(2024, 1, 2), 20, "RENT"),
	}

	analysis := Analyze(records)

	if !analysis.Success {
		t.Fatal("Analyze should succeed on short history")
	}
	trend, ok := analysis.SpendingTrend.(InsufficientTrend)
	if !ok {
		t.Fatalf("SpendingTrend = %T, want InsufficientTrend", analysis.SpendingTrend)
	}
	if trend.Trend != "insufficient_data" {
		t.Errorf("Trend = %q, want insufficient_data", trend.Trend)
	}
	if trend.Message != "Need at least 7 days of data for trend analysis" {
		t.Errorf("Message = %q", trend.Message)
	}
	if len(analysis.CategoryBreakdown) != 2 {
		t.Errorf("sibling sections should still compute, got %d categories", len(analysis.CategoryBreakdown))
	}
}

func TestAnalyze_LongHistoryYieldsTrend(t *testing.T) {
	records := make([]core.Transaction, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, tx(core.NewDate(2024, 1, i+1), 15, "FOOD"))
	}

	analysis := Analyze(records)

	if _, ok := analysis.SpendingTrend.(Trend); !ok {
		t.Fatalf("SpendingTrend = %T, want Trend", analysis.SpendingTrend)
	}
}
