package handlers

import (
	"errors"
	"testing"

	"github.com/surajit50/binshiragp-sub000/pkg/policy"
)

func TestRecordPaymentDeductions(t *testing.T) {
	pct := func(v float64) *float64 { return &v }

	t.Run("resolves each statutory head against gross", func(t *testing.T) {
		req := recordPaymentRequest{
			IncomeTax:         deductionInput{Percent: pct(2.0)},
			LabourWelfareCess: deductionInput{Percent: pct(1.0)},
			TdsCgst:           deductionInput{Amount: amount(900)},
			TdsSgst:           deductionInput{Amount: amount(900)},
		}
		incomeTax, cess, cgst, sgst, err := req.deductions(100000)
		if err != nil {
			t.Fatalf("deductions returned error: %v", err)
		}
		if incomeTax != 2000 || cess != 1000 || cgst != 900 || sgst != 900 {
			t.Errorf("deductions = %d/%d/%d/%d, expected 2000/1000/900/900",
				incomeTax, cess, cgst, sgst)
		}
	})

	t.Run("rejects a negative absolute amount", func(t *testing.T) {
		req := recordPaymentRequest{IncomeTax: deductionInput{Amount: amount(-50000)}}
		_, _, _, _, err := req.deductions(100000)
		if !errors.Is(err, ErrNegativeDeduction) {
			t.Errorf("deductions err = %v, expected ErrNegativeDeduction", err)
		}
	})

	t.Run("rejects a negative percentage", func(t *testing.T) {
		req := recordPaymentRequest{TdsSgst: deductionInput{Percent: pct(-1.5)}}
		_, _, _, _, err := req.deductions(100000)
		if !errors.Is(err, ErrNegativeDeduction) {
			t.Errorf("deductions err = %v, expected ErrNegativeDeduction", err)
		}
	})
}

// Valid deduction sets must leave net within [0, gross]; oversized
// ones must drive net negative so the handler can refuse the bill.
func TestNetAmountStaysWithinGross(t *testing.T) {
	pct := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		req     recordPaymentRequest
		gross   int64
		wantNet int64
	}{
		{
			name: "typical bill",
			req: recordPaymentRequest{
				IncomeTax:         deductionInput{Percent: pct(2.0)},
				LabourWelfareCess: deductionInput{Percent: pct(1.0)},
			},
			gross:   100000,
			wantNet: 95000, // 100000 - 2000 - 1000 - 2000 deposit
		},
		{
			name:    "no deductions keeps only the deposit retention",
			req:     recordPaymentRequest{},
			gross:   250000,
			wantNet: 245000,
		},
		{
			name: "oversized deductions drive net negative",
			req: recordPaymentRequest{
				IncomeTax: deductionInput{Amount: amount(60000)},
				TdsCgst:   deductionInput{Amount: amount(60000)},
			},
			gross:   100000,
			wantNet: -22000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incomeTax, cess, cgst, sgst, err := tt.req.deductions(tt.gross)
			if err != nil {
				t.Fatalf("deductions returned error: %v", err)
			}
			deposit := policy.SecurityDeposit(tt.gross)
			net := policy.NetAmount(tt.gross, incomeTax, cess, cgst, sgst, deposit)
			if net != tt.wantNet {
				t.Errorf("net = %d, expected %d", net, tt.wantNet)
			}
			if net >= 0 && net > tt.gross {
				t.Errorf("net %d exceeds gross %d", net, tt.gross)
			}
		})
	}
}
