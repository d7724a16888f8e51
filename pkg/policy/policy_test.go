package policy

import "testing"

func TestPercentageDeduction(t *testing.T) {
	tests := []struct {
		name     string
		gross    int64
		pct      float64
		expected int64
	}{
		{"income tax 1.5% of 200000", 200000, 1.5, 3000},
		{"2% of 100000", 100000, 2.0, 2000},
		{"rounds up at half", 100, 0.5, 1}, // 0.5 rounds away from zero
		{"rounds down below half", 1000, 0.04, 0},
		{"zero gross", 0, 10, 0},
		{"zero pct", 500000, 0, 0},
		{"uneven amount", 123457, 1.0, 1235},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentageDeduction(tt.gross, tt.pct)
			if got != tt.expected {
				t.Errorf("PercentageDeduction(%d, %v) = %d, expected %d",
					tt.gross, tt.pct, got, tt.expected)
			}
		})
	}
}

func TestSecurityDeposit(t *testing.T) {
	if got := SecurityDeposit(100000); got != 2000 {
		t.Errorf("SecurityDeposit(100000) = %d, expected 2000", got)
	}
	if got := SecurityDeposit(0); got != 0 {
		t.Errorf("SecurityDeposit(0) = %d, expected 0", got)
	}
}

func TestNetAmount(t *testing.T) {
	// Worked example: gross 100000, IT 1000, cess 500, CGST 900,
	// SGST 900, SD 2% of gross = 2000 -> net 94700.
	gross := int64(100000)
	sd := SecurityDeposit(gross)
	net := NetAmount(gross, 1000, 500, 900, 900, sd)
	if net != 94700 {
		t.Errorf("NetAmount = %d, expected 94700", net)
	}
	if net > gross {
		t.Errorf("net %d exceeds gross %d", net, gross)
	}
}

func TestEarnestMoney(t *testing.T) {
	if got := EarnestMoney(250000); got != 5000 {
		t.Errorf("EarnestMoney(250000) = %d, expected 5000", got)
	}
}

func TestBidPercent(t *testing.T) {
	tests := []struct {
		name     string
		estimate int64
		bid      int64
		expected float64
	}{
		{"below estimate", 100000, 95000, -5},
		{"above estimate", 100000, 110000, 10},
		{"at estimate", 100000, 100000, 0},
		{"zero estimate", 0, 5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BidPercent(tt.estimate, tt.bid)
			if got != tt.expected {
				t.Errorf("BidPercent(%d, %d) = %v, expected %v",
					tt.estimate, tt.bid, got, tt.expected)
			}
		})
	}
}
