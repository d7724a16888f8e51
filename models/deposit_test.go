package models

import (
	"testing"
	"time"
)

func TestMaturityCategory(t *testing.T) {
	today := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		maturity time.Time
		want     string
	}{
		{"matured three days ago", today.AddDate(0, 0, -3), DepositOverdue},
		{"matured yesterday", today.AddDate(0, 0, -1), DepositOverdue},
		{"matures today", today, DepositApproaching},
		{"matures in five days", today.AddDate(0, 0, 5), DepositApproaching},
		{"matures in exactly seven days", today.AddDate(0, 0, 7), DepositApproaching},
		{"matures in eight days", today.AddDate(0, 0, 8), DepositActive},
		{"matures in thirty days", today.AddDate(0, 0, 30), DepositActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaturityCategory(tt.maturity, today)
			if got != tt.want {
				t.Errorf("MaturityCategory(%s) = %q, expected %q",
					tt.maturity.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

// Clock time must not leak into the bucketing: a deposit maturing late
// tonight and one maturing early this morning are both "today".
func TestMaturityCategoryIgnoresClockTime(t *testing.T) {
	today := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
	maturity := time.Date(2025, 3, 15, 0, 1, 0, 0, time.UTC)
	if got := MaturityCategory(maturity, today); got != DepositApproaching {
		t.Errorf("same-day maturity = %q, expected %q", got, DepositApproaching)
	}
}
