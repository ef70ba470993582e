package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single value", []float64{5}, 5},
		{"uniform values", []float64{10, 10, 10}, 10},
		{"mixed values", []float64{1, 2, 3, 4}, 2.5},
		{"negative values", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.data); !almostEqual(got, tt.expected) {
				t.Errorf("Mean(%v) = %v, want %v", tt.data, got, tt.expected)
			}
		})
	}
}

func TestVariance_PopulationVsSample(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	if got := Variance(data); !almostEqual(got, 4) {
		t.Errorf("Variance = %v, want 4", got)
	}
	if got := StdDev(data); !almostEqual(got, 2) {
		t.Errorf("StdDev = %v, want 2", got)
	}

	// Sample variance divides by n-1
	want := 32.0 / 7.0
	if got := SampleVariance(data); !almostEqual(got, want) {
		t.Errorf("SampleVariance = %v, want %v", got, want)
	}
}

func TestSampleVariance_Degenerate(t *testing.T) {
	if got := SampleVariance([]float64{5}); got != 0 {
		t.Errorf("SampleVariance(single) = %v, want 0", got)
	}
	if got := SampleVariance(nil); got != 0 {
		t.Errorf("SampleVariance(nil) = %v, want 0", got)
	}
	if got := SampleStdDev([]float64{3}); got != 0 {
		t.Errorf("SampleStdDev(single) = %v, want 0", got)
	}
}

func TestStdDev_ConstantSeries(t *testing.T) {
	if got := StdDev([]float64{7, 7, 7, 7}); got != 0 {
		t.Errorf("StdDev(constant) = %v, want 0", got)
	}
}

func TestRMSE(t *testing.T) {
	tests := []struct {
		name      string
		actual    []float64
		predicted []float64
		expected  float64
	}{
		{"perfect fit", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"constant offset", []float64{1, 2, 3}, []float64{2, 3, 4}, 1},
		{"empty", nil, nil, 0},
		{"length mismatch", []float64{1, 2}, []float64{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMSE(tt.actual, tt.predicted); !almostEqual(got, tt.expected) {
				t.Errorf("RMSE = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSum(t *testing.T) {
	if got := Sum([]float64{1.5, 2.5, -1}); !almostEqual(got, 3) {
		t.Errorf("Sum = %v, want 3", got)
	}
	if got := Sum(nil); got != 0 {
		t.Errorf("Sum(nil) = %v, want 0", got)
	}
}
