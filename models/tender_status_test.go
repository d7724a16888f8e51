package models

import "testing"

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		current TenderStatus
		event   TenderEvent
		want    TenderStatus
		wantErr bool
	}{
		{"register bidders from published", StatusPublished, EventRegisterBidders, StatusTechnicalBidOpening, false},
		{"register more bidders while open", StatusTechnicalBidOpening, EventRegisterBidders, StatusTechnicalBidOpening, false},
		{"close bidder list", StatusTechnicalBidOpening, EventCloseBidderList, StatusTechnicalEvaluation, false},
		{"close bidder list is idempotent", StatusTechnicalEvaluation, EventCloseBidderList, StatusTechnicalEvaluation, false},
		{"open financial bids", StatusTechnicalEvaluation, EventOpenFinancialBids, StatusFinancialBidOpening, false},
		{"record first financial bid", StatusFinancialBidOpening, EventRecordFinancial, StatusFinancialEvaluation, false},
		{"re-record financial bid", StatusFinancialEvaluation, EventRecordFinancial, StatusFinancialEvaluation, false},
		{"issue award", StatusFinancialEvaluation, EventIssueAward, StatusAOC, false},

		{"cannot award before financial evaluation", StatusTechnicalEvaluation, EventIssueAward, "", true},
		{"cannot register bidders after close", StatusFinancialBidOpening, EventRegisterBidders, "", true},
		{"cannot record financial bid too early", StatusTechnicalBidOpening, EventRecordFinancial, "", true},
		{"cannot reopen an awarded work", StatusAOC, EventRegisterBidders, "", true},
		{"cannot award twice", StatusAOC, EventIssueAward, "", true},

		{"cancel from published", StatusPublished, EventCancel, StatusCancelled, false},
		{"cancel during financial evaluation", StatusFinancialEvaluation, EventCancel, StatusCancelled, false},
		{"cannot cancel after award", StatusAOC, EventCancel, "", true},
		{"cannot leave cancelled", StatusCancelled, EventRegisterBidders, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.current, tt.event)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Transition(%q, %q) = %q, expected error", tt.current, tt.event, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Transition(%q, %q) unexpected error: %v", tt.current, tt.event, err)
			}
			if got != tt.want {
				t.Errorf("Transition(%q, %q) = %q, expected %q", tt.current, tt.event, got, tt.want)
			}
		})
	}
}

// The forward chain never moves backwards: every legal non-cancel
// transition lands on a status with equal or higher order.
func TestTransitionMonotonic(t *testing.T) {
	for current, events := range transitions {
		for event, next := range events {
			if event == EventCancel {
				continue
			}
			if next.Order() < current.Order() {
				t.Errorf("transition %q --%q--> %q moves backwards", current, event, next)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []TenderStatus{StatusAOC, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%q should be terminal", s)
		}
		if len(transitions[s]) != 0 {
			t.Errorf("terminal status %q has outgoing transitions", s)
		}
	}
	for _, s := range []TenderStatus{StatusPublished, StatusTechnicalBidOpening, StatusTechnicalEvaluation, StatusFinancialBidOpening, StatusFinancialEvaluation} {
		if s.IsTerminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}

func TestValidTenderStatus(t *testing.T) {
	if !ValidTenderStatus(StatusFinancialBidOpening) {
		t.Error("FinancialBidOpening should be valid")
	}
	if ValidTenderStatus("underreview") {
		t.Error("unknown status accepted")
	}
}
