package forecast

import (
	"spendsight/internal/stats"
)

// minSmoothingDays is the shortest history exponential smoothing accepts.
const minSmoothingDays = 7

// ExponentialSmoothing projects the final smoothed value flat across the
// horizon. The band is ±1.96 times the RMSE of the full in-sample
// residuals, so a history the smoother tracked poorly widens the bounds.
type ExponentialSmoothing struct {
	Alpha float64
}

func (ExponentialSmoothing) Name() string { return "exponential_smoothing" }

func (s ExponentialSmoothing) Forecast(in Input, horizon int) Result {
	alpha := s.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = 0.3
	}
	if in.Series.Len() < minSmoothingDays {
		return failure("Insufficient data for exponential smoothing.")
	}

	actual := in.Series.Amounts
	smoothed := make([]float64, len(actual))
	smoothed[0] = actual[0]
	for i := 1; i < len(actual); i++ {
		smoothed[i] = alpha*actual[i] + (1-alpha)*smoothed[i-1]
	}

	band := zBand * stats.RMSE(actual, smoothed)
	points, total := flatForecast(in.Series.End(), smoothed[len(smoothed)-1], band, horizon)
	return Result{
		Success:        true,
		Method:         s.Name(),
		Alpha:          alpha,
		Forecast:       points,
		TotalPredicted: total,
	}
}
