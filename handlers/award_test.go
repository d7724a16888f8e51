package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/surajit50/binshiragp-sub000/models"
)

func amount(v int64) *int64 { return &v }

func bidAt(name string, biddingAmount *int64, createdAt time.Time) models.BidAgency {
	return models.BidAgency{
		ID:            uuid.New(),
		Agency:        &models.AgencyDetails{Name: name},
		BiddingAmount: biddingAmount,
		CreatedAt:     createdAt,
	}
}

func TestRankBids(t *testing.T) {
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	t.Run("lowest bid ranks first", func(t *testing.T) {
		bids := []models.BidAgency{
			bidAt("Maa Kali Construction", amount(195000), base),
			bidAt("S K Enterprise", amount(188000), base.Add(time.Hour)),
			bidAt("Bishnupur Traders", amount(201000), base.Add(2*time.Hour)),
		}
		ranked := rankBids(bids, 200000)
		if len(ranked) != 3 {
			t.Fatalf("got %d ranked bids, expected 3", len(ranked))
		}
		if ranked[0].AgencyName != "S K Enterprise" || ranked[0].Rank != 1 {
			t.Errorf("rank 1 = %q, expected S K Enterprise", ranked[0].AgencyName)
		}
		if ranked[2].AgencyName != "Bishnupur Traders" {
			t.Errorf("rank 3 = %q, expected Bishnupur Traders", ranked[2].AgencyName)
		}
	})

	t.Run("equal amounts keep registration order", func(t *testing.T) {
		bids := []models.BidAgency{
			bidAt("Registered Second", amount(150000), base.Add(time.Hour)),
			bidAt("Registered First", amount(150000), base),
		}
		ranked := rankBids(bids, 160000)
		if ranked[0].AgencyName != "Registered First" {
			t.Errorf("tie broke to %q, expected the earlier registration", ranked[0].AgencyName)
		}
	})

	t.Run("bids without an amount are excluded", func(t *testing.T) {
		bids := []models.BidAgency{
			bidAt("Quoted", amount(100000), base),
			bidAt("Never Quoted", nil, base),
		}
		ranked := rankBids(bids, 120000)
		if len(ranked) != 1 {
			t.Fatalf("got %d ranked bids, expected 1", len(ranked))
		}
		if ranked[0].AgencyName != "Quoted" {
			t.Errorf("rank 1 = %q, expected Quoted", ranked[0].AgencyName)
		}
	})

	t.Run("bid percent is relative to the estimate", func(t *testing.T) {
		ranked := rankBids([]models.BidAgency{bidAt("Below Estimate", amount(190000), base)}, 200000)
		if ranked[0].BidPercent != -5.0 {
			t.Errorf("bid percent = %v, expected -5.0", ranked[0].BidPercent)
		}
	})
}

func TestDeductionInputResolve(t *testing.T) {
	pct := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		input deductionInput
		gross int64
		want  int64
	}{
		{"absolute amount", deductionInput{Amount: amount(1500)}, 100000, 1500},
		{"percentage of gross", deductionInput{Percent: pct(1.5)}, 200000, 3000},
		{"percentage rounds half away from zero", deductionInput{Percent: pct(1.0)}, 150, 2},
		{"amount wins over percent", deductionInput{Amount: amount(999), Percent: pct(10)}, 100000, 999},
		{"empty means zero", deductionInput{}, 100000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.resolve(tt.gross)
			if got != tt.want {
				t.Errorf("resolve(%d) = %d, expected %d", tt.gross, got, tt.want)
			}
		})
	}
}
