// Package stats provides the closed-form statistical primitives used by
// the analytics and forecast engines. Degenerate inputs (empty slices,
// single observations) return zero rather than erroring; callers encode
// their own minimum-length preconditions.
package stats

import "math"

// Sum returns the total of the values.
func Sum(data []float64) float64 {
	var total float64
	for _, v := range data {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return Sum(data) / float64(len(data))
}

// Variance returns the population variance.
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	m := Mean(data)
	var ss float64
	for _, v := range data {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(data))
}

// SampleVariance returns the variance with Bessel's correction (n-1).
// Fewer than two observations yield 0.
func SampleVariance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	m := Mean(data)
	var ss float64
	for _, v := range data {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(data)-1)
}

// StdDev returns the population standard deviation.
func StdDev(data []float64) float64 {
	return math.Sqrt(Variance(data))
}

// SampleStdDev returns the sample standard deviation.
func SampleStdDev(data []float64) float64 {
	return math.Sqrt(SampleVariance(data))
}

// RMSE returns the root mean squared error between actual and predicted.
// The slices must be the same length.
func RMSE(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}
	var ss float64
	for i := range actual {
		d := actual[i] - predicted[i]
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(actual)))
}
