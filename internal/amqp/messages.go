package amqp

import (
	"encoding/json"
	"time"
)

// AnalysisCompletedMessage notifies downstream consumers that a full
// analysis of a ledger source finished. It carries only headline
// figures; consumers re-request details over HTTP if they need them.
type AnalysisCompletedMessage struct {
	Source        string    `json:"source"`
	Transactions  int       `json:"transactions"`
	TotalSpending float64   `json:"total_spending"`
	Anomalies     int       `json:"anomalies"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewAnalysisCompletedMessage creates a completion message stamped now.
func NewAnalysisCompletedMessage(source string, transactions int, totalSpending float64, anomalies int) *AnalysisCompletedMessage {
	return &AnalysisCompletedMessage{
		Source:        source,
		Transactions:  transactions,
		TotalSpending: totalSpending,
		Anomalies:     anomalies,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *AnalysisCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AnalysisCompletedMessageFromJSON creates a message from JSON bytes.
func AnalysisCompletedMessageFromJSON(data []byte) (*AnalysisCompletedMessage, error) {
	var msg AnalysisCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
