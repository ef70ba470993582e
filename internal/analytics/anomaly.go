package analytics

import (
	"spendsight/internal/core"
	"spendsight/internal/stats"
)

// DefaultAnomalyThreshold is the z-score magnitude above which a
// transaction is flagged.
const DefaultAnomalyThreshold = 2.0

// minAnomalyRecords is the minimum dataset size for the outlier test to
// be meaningful.
const minAnomalyRecords = 10

// Anomaly is a transaction flagged as a statistical outlier.
type Anomaly struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	ZScore      float64 `json:"z_score"`
	AnomalyType string  `json:"anomaly_type"`
}

// DetectAnomalies flags transactions whose amount deviates from the
// dataset mean by more than threshold standard deviations. It is a pure
// per-transaction outlier test, independent of date ordering. Fewer than
// ten records, or a degenerate zero-spread distribution, yields an empty
// list rather than an error. Missing amounts never score.
func DetectAnomalies(records []core.Transaction, threshold float64) []Anomaly {
	if threshold <= 0 {
		threshold = DefaultAnomalyThreshold
	}
	if len(records) < minAnomalyRecords {
		return []Anomaly{}
	}

	amounts := validAmounts(records)
	mean := stats.Mean(amounts)
	std := stats.StdDev(amounts)
	if std == 0 {
		return []Anomaly{}
	}

	anomalies := []Anomaly{}
	for _, tx := range records {
		if !tx.Amount.Valid {
			continue
		}
		z := (tx.Amount.Value - mean) / std
		if z <= threshold && z >= -threshold {
			continue
		}
		kind := "high"
		if z < 0 {
			kind = "low"
		}
		anomalies = append(anomalies, Anomaly{
			ID:          tx.ID,
			Amount:      tx.Amount.Value,
			Category:    tx.Category,
			Date:        tx.Date.Key(),
			Description: tx.Description,
			ZScore:      core.Round2(z),
			AnomalyType: kind,
		})
	}
	return anomalies
}
