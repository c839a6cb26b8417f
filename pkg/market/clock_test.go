package market

import (
	"testing"
	"time"
)

func TestIsOpen(t *testing.T) {
	ict := time.FixedZone("ICT", 7*60*60)

	// 2024-06-04 is a Tuesday, 2024-06-01/02 a weekend
	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{"Saturday midday", time.Date(2024, 6, 1, 11, 0, 0, 0, ict), false},
		{"Sunday afternoon", time.Date(2024, 6, 2, 15, 0, 0, 0, ict), false},
		{"Tuesday before morning open", time.Date(2024, 6, 4, 9, 59, 0, 0, ict), false},
		{"Tuesday morning open boundary", time.Date(2024, 6, 4, 10, 0, 0, 0, ict), true},
		{"Tuesday 10:15", time.Date(2024, 6, 4, 10, 15, 0, 0, ict), true},
		{"Tuesday morning close boundary", time.Date(2024, 6, 4, 12, 30, 0, 0, ict), true},
		{"Tuesday lunch break", time.Date(2024, 6, 4, 12, 31, 0, 0, ict), false},
		{"Tuesday 13:00", time.Date(2024, 6, 4, 13, 0, 0, 0, ict), false},
		{"Tuesday afternoon open boundary", time.Date(2024, 6, 4, 14, 0, 0, 0, ict), true},
		{"Tuesday afternoon close boundary", time.Date(2024, 6, 4, 16, 30, 0, 0, ict), true},
		{"Tuesday after close", time.Date(2024, 6, 4, 16, 31, 0, 0, ict), false},
		{"UTC input converted to Bangkok", time.Date(2024, 6, 4, 3, 15, 0, 0, time.UTC), true},   // 10:15 ICT
		{"UTC evening is Bangkok night", time.Date(2024, 6, 4, 16, 0, 0, 0, time.UTC), false},    // 23:00 ICT
		{"Friday UTC late is Saturday in Bangkok", time.Date(2024, 6, 7, 20, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOpen(tt.now); got != tt.expected {
				t.Errorf("IsOpen(%v) = %v, want %v", tt.now, got, tt.expected)
			}
		})
	}
}
