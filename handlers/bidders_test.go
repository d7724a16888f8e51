package handlers

import (
	"testing"

	"github.com/surajit50/binshiragp-sub000/models"
)

func TestCanRemoveBidder(t *testing.T) {
	tests := []struct {
		status models.TenderStatus
		want   bool
	}{
		{models.StatusPublished, true},
		{models.StatusTechnicalBidOpening, true},
		{models.StatusTechnicalEvaluation, true},
		{models.StatusFinancialBidOpening, false},
		{models.StatusFinancialEvaluation, false},
		{models.StatusAOC, false},
		{models.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := canRemoveBidder(tt.status); got != tt.want {
				t.Errorf("canRemoveBidder(%s) = %v, expected %v", tt.status, got, tt.want)
			}
		})
	}
}
