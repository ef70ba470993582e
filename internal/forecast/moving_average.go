package forecast

import (
	"fmt"

	"spendsight/internal/stats"
)

// MovingAverage projects the trailing mean of the last Window days flat
// across the horizon. The confidence band is static: ±1.96 times the
// sample standard deviation of the last 2×Window days.
type MovingAverage struct {
	Window int
}

func (MovingAverage) Name() string { return "simple_moving_average" }

func (s MovingAverage) Forecast(in Input, horizon int) Result {
	window := s.Window
	if window <= 0 {
		window = 7
	}
	if in.Series.Len() < window {
		return failure(fmt.Sprintf("Insufficient data. Need at least %d days.", window))
	}

	lastMA := stats.Mean(in.Series.Tail(window))
	band := zBand * stats.SampleStdDev(in.Series.Tail(window*2))

	points, total := flatForecast(in.Series.End(), lastMA, band, horizon)
	return Result{
		Success:        true,
		Method:         s.Name(),
		Forecast:       points,
		TotalPredicted: total,
	}
}
