package forecast

import (
	"encoding/json"
	"testing"

	"spendsight/internal/core"
)

func constantInput(start core.Date, days int, value float64) Input {
	amounts := make([]float64, days)
	records := make([]core.Transaction, days)
	for i := range amounts {
		amounts[i] = value
		records[i] = core.Transaction{
			Date:     start.AddDays(i),
			Amount:   core.NewAmount(value),
			Category: "FOOD",
		}
	}
	return Input{
		Series:  core.DailySeries{Start: start, Amounts: amounts},
		Records: records,
	}
}

func TestMovingAverage_ConstantSeries(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 10, 10)

	result := MovingAverage{Window: 7}.Forecast(in, 5)
	if !result.Success {
		t.Fatalf("forecast failed: %s", result.Err)
	}
	if result.Method != "simple_moving_average" {
		t.Errorf("Method = %q", result.Method)
	}
	if len(result.Forecast) != 5 {
		t.Fatalf("points = %d, want 5", len(result.Forecast))
	}

	// Constant history: prediction 10 with a collapsed band
	for day, p := range result.Forecast {
		if p.Predicted != 10 || p.LowerBound != 10 || p.UpperBound != 10 {
			t.Errorf("point %s = %+v, want 10/10/10", day, p)
		}
	}
	if result.TotalPredicted != 50 {
		t.Errorf("TotalPredicted = %v, want 50", result.TotalPredicted)
	}

	// Forecast days follow the last observed date
	if _, ok := result.Forecast["2024-01-11"]; !ok {
		t.Errorf("first forecast day should be 2024-01-11")
	}
	if _, ok := result.Forecast["2024-01-10"]; ok {
		t.Errorf("observed days must not appear in the forecast")
	}
}

func TestMovingAverage_TooShort(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 5, 10)
	result := MovingAverage{Window: 7}.Forecast(in, 5)

	if result.Success {
		t.Fatal("expected failure on short series")
	}
	if result.Err != "Insufficient data. Need at least 7 days." {
		t.Errorf("Err = %q", result.Err)
	}
}

func TestMovingAverage_BoundOrdering(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 30, 10)
	// Perturb the tail to get a real spread
	for i := 16; i < 30; i += 2 {
		in.Series.Amounts[i] = 40
	}

	result := MovingAverage{Window: 7}.Forecast(in, 10)
	if !result.Success {
		t.Fatalf("forecast failed: %s", result.Err)
	}
	for day, p := range result.Forecast {
		if p.LowerBound > p.Predicted || p.Predicted > p.UpperBound {
			t.Errorf("point %s violates bound ordering: %+v", day, p)
		}
		if p.LowerBound < 0 {
			t.Errorf("point %s has negative lower bound", day)
		}
	}
}

func TestExponentialSmoothing(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 14, 20)

	result := ExponentialSmoothing{Alpha: 0.3}.Forecast(in, 7)
	if !result.Success {
		t.Fatalf("forecast failed: %s", result.Err)
	}
	if result.Alpha != 0.3 {
		t.Errorf("Alpha = %v, want 0.3", result.Alpha)
	}
	// A constant series smooths to itself
	for day, p := range result.Forecast {
		if p.Predicted != 20 {
			t.Errorf("point %s predicted = %v, want 20", day, p.Predicted)
		}
	}
	if result.TotalPredicted != 140 {
		t.Errorf("TotalPredicted = %v, want 140", result.TotalPredicted)
	}
}

func TestExponentialSmoothing_DefaultsBadAlpha(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 14, 20)

	result := ExponentialSmoothing{Alpha: 1.7}.Forecast(in, 3)
	if !result.Success {
		t.Fatalf("forecast failed: %s", result.Err)
	}
	if result.Alpha != 0.3 {
		t.Errorf("Alpha = %v, want fallback 0.3", result.Alpha)
	}
}

func TestExponentialSmoothing_TooShort(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 6, 20)
	result := ExponentialSmoothing{Alpha: 0.3}.Forecast(in, 7)

	if result.Success {
		t.Fatal("expected failure on short series")
	}
	if result.Err != "Insufficient data for exponential smoothing." {
		t.Errorf("Err = %q", result.Err)
	}
}

func TestWeeklyPattern(t *testing.T) {
	// 2024-01-01 is a Monday. Mondays spend 50, everything else 10.
	start := core.NewDate(2024, 1, 1)
	amounts := make([]float64, 28)
	for i := range amounts {
		if i%7 == 0 {
			amounts[i] = 50
		} else {
			amounts[i] = 10
		}
	}
	in := Input{Series: core.DailySeries{Start: start, Amounts: amounts}}

	result := WeeklyPattern{}.Forecast(in, 7)
	if !result.Success {
		t.Fatalf("forecast failed: %s", result.Err)
	}
	if result.HighestSpendingDay != "Monday" {
		t.Errorf("HighestSpendingDay = %q, want Monday", result.HighestSpendingDay)
	}
	if result.WeeklyPatterns["Monday"] != 50 {
		t.Errorf("Monday pattern = %v, want 50", result.WeeklyPatterns["Monday"])
	}
	if result.WeeklyPatterns["Tuesday"] != 10 {
		t.Errorf("Tuesday pattern = %v, want 10", result.WeeklyPatterns["Tuesday"])
	}

	// Forecast for the next Monday carries its day label and pattern mean
	p, ok := result.Forecast["2024-01-29"]
	if !ok {
		t.Fatalf("expected forecast for 2024-01-29 (Monday)")
	}
	if p.DayOfWeek != "Monday" || p.Predicted != 50 {
		t.Errorf("Monday point = %+v, want predicted 50", p)
	}
}

func TestWeeklyPattern_TooShort(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 13, 10)
	result := WeeklyPattern{}.Forecast(in, 7)

	if result.Success {
		t.Fatal("expected failure under two weeks of data")
	}
	if result.Err != "Need at least 2 weeks of data for pattern analysis." {
		t.Errorf("Err = %q", result.Err)
	}
}

func TestCategoryAverage(t *testing.T) {
	// 10 days of data: FOOD 10/day, RENT 300 once
	start := core.NewDate(2024, 1, 1)
	records := make([]core.Transaction, 0, 11)
	for i := 0; i < 10; i++ {
		records = append(records, core.Transaction{
			Date: start.AddDays(i), Amount: core.NewAmount(10), Category: "FOOD",
		})
	}
	records = append(records, core.Transaction{
		Date: start, Amount: core.NewAmount(300), Category: "RENT",
	})
	in := Input{Records: records}

	result := CategoryAverage{}.Forecast(in, 30)
	if !result.Success {
		t.Fatalf("forecast failed: %s", result.Err)
	}
	if result.Method != "category_average" {
		t.Errorf("Method = %q, want category_average", result.Method)
	}
	if result.ForecastDays != 30 {
		t.Errorf("ForecastDays = %d, want 30", result.ForecastDays)
	}

	// Span is 9 days (first to last observed date)
	food := result.CategoryForecasts["FOOD"]
	if food.DailyAverage != core.Round2(100.0/9) {
		t.Errorf("FOOD daily average = %v, want %v", food.DailyAverage, core.Round2(100.0/9))
	}
	if food.MonthlyForecast != core.Round2(100.0/9*30) {
		t.Errorf("FOOD monthly forecast = %v", food.MonthlyForecast)
	}

	wantTotal := core.Round2(core.Round2(100.0/9*30) + core.Round2(300.0/9*30))
	if result.TotalForecast != wantTotal {
		t.Errorf("TotalForecast = %v, want %v", result.TotalForecast, wantTotal)
	}
}

func TestCategoryAverage_SingleDaySpansOne(t *testing.T) {
	start := core.NewDate(2024, 1, 1)
	records := make([]core.Transaction, 8)
	for i := range records {
		records[i] = core.Transaction{Date: start, Amount: core.NewAmount(5), Category: "FOOD"}
	}

	result := CategoryAverage{}.Forecast(Input{Records: records}, 30)
	if !result.Success {
		t.Fatalf("forecast failed: %s", result.Err)
	}
	// All on one day: span floors to 1, daily average is the full total
	if got := result.CategoryForecasts["FOOD"].DailyAverage; got != 40 {
		t.Errorf("DailyAverage = %v, want 40", got)
	}
}

func TestCategoryAverage_TooFewRecords(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 6, 10)
	result := CategoryAverage{}.Forecast(in, 30)

	if result.Success {
		t.Fatal("expected failure under seven records")
	}
	if result.Err != "Insufficient data for category forecast." {
		t.Errorf("Err = %q", result.Err)
	}
}

func TestEngine_ForecastExpenses(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 28, 10)

	resp := NewEngine().ForecastExpenses(in.Records, 0)
	if !resp.Success {
		t.Fatalf("engine failed: %s", resp.Err)
	}
	if resp.DataPoints != 28 {
		t.Errorf("DataPoints = %d, want 28", resp.DataPoints)
	}
	if resp.RangeStart != "2024-01-01" || resp.RangeEnd != "2024-01-28" {
		t.Errorf("range = %s..%s", resp.RangeStart, resp.RangeEnd)
	}

	for _, name := range []string{"simple_moving_average", "exponential_smoothing", "weekly_pattern", "category_forecast"} {
		res, ok := resp.Results[name]
		if !ok {
			t.Errorf("missing strategy result %q", name)
			continue
		}
		if !res.Success {
			t.Errorf("strategy %q failed: %s", name, res.Err)
		}
	}

	// Horizon 0 falls back to the default
	sma := resp.Results["simple_moving_average"]
	if len(sma.Forecast) != DefaultHorizon {
		t.Errorf("default horizon points = %d, want %d", len(sma.Forecast), DefaultHorizon)
	}
}

func TestEngine_EmptyRecords(t *testing.T) {
	resp := NewEngine().ForecastExpenses(nil, 30)
	if resp.Success {
		t.Fatal("expected failure on empty records")
	}
	if resp.Err != "no transactions to forecast from" {
		t.Errorf("Err = %q", resp.Err)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	in := constantInput(core.NewDate(2024, 1, 1), 28, 12.5)

	first, err := json.Marshal(NewEngine().ForecastExpenses(in.Records, 14))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(NewEngine().ForecastExpenses(in.Records, 14))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Error("identical inputs produced different serialized forecasts")
	}
}

func TestResult_MarshalShapes(t *testing.T) {
	failureJSON, err := json.Marshal(failure("nope"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var failed map[string]any
	if err := json.Unmarshal(failureJSON, &failed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if failed["success"] != false || failed["error"] != "nope" {
		t.Errorf("failure payload = %v", failed)
	}
	if _, ok := failed["method"]; ok {
		t.Error("failure payload must not carry a method key")
	}

	in := constantInput(core.NewDate(2024, 1, 1), 14, 10)
	okJSON, err := json.Marshal(ExponentialSmoothing{Alpha: 0.3}.Forecast(in, 3))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var smoothed map[string]any
	if err := json.Unmarshal(okJSON, &smoothed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"success", "method", "alpha", "forecast", "total_predicted"} {
		if _, ok := smoothed[key]; !ok {
			t.Errorf("smoothing payload missing %q", key)
		}
	}
	if _, ok := smoothed["weekly_patterns"]; ok {
		t.Error("smoothing payload must not carry weekly keys")
	}
}
