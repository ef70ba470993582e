package core

import (
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
		wantErr bool
	}{
		{"ISO date", "2024-03-15", "2024-03-15", false},
		{"RFC3339", "2024-03-15T14:30:00Z", "2024-03-15", false},
		{"datetime", "2024-03-15 14:30:00", "2024-03-15", false},
		{"slash separated", "2024/03/15", "2024-03-15", false},
		{"garbage", "not-a-date", "", true},
		{"empty", "", "", true},
		{"day first", "15-03-2024", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tt.input, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if d.Key() != tt.wantKey {
				t.Errorf("ParseDate(%q).Key() = %q, want %q", tt.input, d.Key(), tt.wantKey)
			}
		})
	}
}

func TestDate_Keys(t *testing.T) {
	d := NewDate(2024, 1, 5)
	if d.Key() != "2024-01-05" {
		t.Errorf("Key() = %q, want 2024-01-05", d.Key())
	}
	if d.MonthKey() != "2024-01" {
		t.Errorf("MonthKey() = %q, want 2024-01", d.MonthKey())
	}
}

func TestDate_AddDaysAndDaysUntil(t *testing.T) {
	d := NewDate(2024, 2, 27)

	// Leap year rollover
	if got := d.AddDays(3).Key(); got != "2024-03-01" {
		t.Errorf("AddDays(3) = %q, want 2024-03-01", got)
	}
	if got := d.DaysUntil(NewDate(2024, 3, 1)); got != 3 {
		t.Errorf("DaysUntil = %d, want 3", got)
	}
	if got := d.DaysUntil(d); got != 0 {
		t.Errorf("DaysUntil(self) = %d, want 0", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue float64
		wantValid bool
	}{
		{"plain", "42.50", 42.50, true},
		{"integer", "100", 100, true},
		{"dollar sign", "$19.99", 19.99, true},
		{"euro sign", "€5", 5, true},
		{"thousands separator", "1,234.56", 1234.56, true},
		{"decimal comma", "12,34", 12.34, true},
		{"negative", "-3.25", -3.25, true},
		{"whitespace", "  7.5  ", 7.5, true},
		{"empty", "", 0, false},
		{"garbage", "abc", 0, false},
		{"mixed garbage", "12abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ParseAmount(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if got.Valid && got.Value != tt.wantValue {
				t.Errorf("ParseAmount(%q).Value = %v, want %v", tt.input, got.Value, tt.wantValue)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{1.234, 1.23},
		{1.235, 1.24},
		{-1.235, -1.24},
		{0, 0},
		{99.999, 100},
	}

	for _, tt := range tests {
		if got := Round2(tt.input); got != tt.expected {
			t.Errorf("Round2(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDailySeries_Tail(t *testing.T) {
	s := DailySeries{Start: NewDate(2024, 1, 1), Amounts: []float64{1, 2, 3, 4, 5}}

	if got := s.Tail(2); len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Errorf("Tail(2) = %v, want [4 5]", got)
	}
	if got := s.Tail(10); len(got) != 5 {
		t.Errorf("Tail(10) length = %d, want 5", len(got))
	}
	if got := s.End().Key(); got != "2024-01-05" {
		t.Errorf("End() = %q, want 2024-01-05", got)
	}
	if got := s.DateAt(2).Key(); got != "2024-01-03" {
		t.Errorf("DateAt(2) = %q, want 2024-01-03", got)
	}
}
