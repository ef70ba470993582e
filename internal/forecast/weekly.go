package forecast

import (
	"time"

	"spendsight/internal/core"
	"spendsight/internal/stats"
)

// minWeeklyDays is two full weeks, the shortest span that observes every
// day of the week twice.
const minWeeklyDays = 14

// dayNames indexes Monday-first, matching the reporting order of the
// weekly pattern summary.
var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeeklyPattern forecasts each future date from the historical mean and
// spread of its day of the week.
type WeeklyPattern struct{}

func (WeeklyPattern) Name() string { return "weekly_pattern" }

func (s WeeklyPattern) Forecast(in Input, horizon int) Result {
	if in.Series.Len() < minWeeklyDays {
		return failure("Need at least 2 weeks of data for pattern analysis.")
	}

	// Bucket the daily series by day of week, Monday-first.
	buckets := make([][]float64, 7)
	for i, v := range in.Series.Amounts {
		dow := mondayIndex(in.Series.DateAt(i).Weekday())
		buckets[dow] = append(buckets[dow], v)
	}

	means := make([]float64, 7)
	stds := make([]float64, 7)
	for i, b := range buckets {
		means[i] = stats.Mean(b)
		stds[i] = stats.SampleStdDev(b)
	}

	last := in.Series.End()
	points := make(map[string]Point, horizon)
	var total float64
	for i := 1; i <= horizon; i++ {
		date := last.AddDays(i)
		dow := mondayIndex(date.Weekday())
		predicted := core.Round2(means[dow])
		lb := core.Round2(means[dow] - zBand*stds[dow])
		if lb < 0 {
			lb = 0
		}
		points[date.Key()] = Point{
			Predicted:  predicted,
			LowerBound: lb,
			UpperBound: core.Round2(means[dow] + zBand*stds[dow]),
			DayOfWeek:  dayNames[dow],
		}
		total += predicted
	}

	patterns := make(map[string]float64, 7)
	highest, lowest := 0, 0
	for i := range dayNames {
		patterns[dayNames[i]] = core.Round2(means[i])
		if means[i] > means[highest] {
			highest = i
		}
		if means[i] < means[lowest] {
			lowest = i
		}
	}

	return Result{
		Success:            true,
		Method:             s.Name(),
		Forecast:           points,
		TotalPredicted:     core.Round2(total),
		WeeklyPatterns:     patterns,
		HighestSpendingDay: dayNames[highest],
		LowestSpendingDay:  dayNames[lowest],
	}
}

// mondayIndex converts time.Weekday (Sunday=0) to a Monday-first index.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
