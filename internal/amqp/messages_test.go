package amqp

import (
	"testing"
	"time"
)

func TestAnalysisCompletedMessageRoundTrip(t *testing.T) {
	msg := NewAnalysisCompletedMessage("/data/expenses.csv", 120, 3456.78, 2)

	if msg.Timestamp.IsZero() {
		t.Fatal("NewAnalysisCompletedMessage must stamp the message")
	}
	if time.Since(msg.Timestamp) > time.Minute {
		t.Errorf("timestamp %v is not recent", msg.Timestamp)
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := AnalysisCompletedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Source != "/data/expenses.csv" {
		t.Errorf("Source = %q", got.Source)
	}
	if got.Transactions != 120 {
		t.Errorf("Transactions = %d", got.Transactions)
	}
	if got.TotalSpending != 3456.78 {
		t.Errorf("TotalSpending = %v", got.TotalSpending)
	}
	if got.Anomalies != 2 {
		t.Errorf("Anomalies = %d", got.Anomalies)
	}
	if !got.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

func TestAnalysisCompletedMessageFromJSON_Invalid(t *testing.T) {
	if _, err := AnalysisCompletedMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
