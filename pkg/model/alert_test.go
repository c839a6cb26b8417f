package model

import "testing"

func TestAlertShouldTrigger(t *testing.T) {
	tests := []struct {
		name         string
		condition    AlertCondition
		targetPrice  float64
		currentPrice float64
		expected     bool
	}{
		{"GT - above target", ConditionGT, 35.00, 36.00, true},
		{"GT - exact match", ConditionGT, 35.00, 35.00, true},
		{"GT - below target", ConditionGT, 35.00, 34.99, false},
		{"LT - below target", ConditionLT, 35.00, 34.00, true},
		{"LT - exact match", ConditionLT, 35.00, 35.00, true},
		{"LT - above target", ConditionLT, 35.00, 35.01, false},
		{"unknown condition", AlertCondition("EQ"), 35.00, 35.00, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert := Alert{Condition: tt.condition, TargetPrice: tt.targetPrice}
			if got := alert.ShouldTrigger(tt.currentPrice); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAlertConditionValid(t *testing.T) {
	if !ConditionGT.Valid() || !ConditionLT.Valid() {
		t.Error("GT and LT should be valid conditions")
	}
	if AlertCondition("EQ").Valid() {
		t.Error("EQ should not be a valid condition")
	}
}
