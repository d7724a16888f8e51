package models

import (
	"errors"
	"fmt"
)

// TenderStatus is the lifecycle state of a tendered work.
type TenderStatus string

const (
	StatusPublished           TenderStatus = "published"
	StatusTechnicalBidOpening TenderStatus = "TechnicalBidOpening"
	StatusTechnicalEvaluation TenderStatus = "TechnicalEvaluation"
	StatusFinancialBidOpening TenderStatus = "FinancialBidOpening"
	StatusFinancialEvaluation TenderStatus = "FinancialEvaluation"
	StatusAOC                 TenderStatus = "AOC"
	StatusCancelled           TenderStatus = "Cancelled"
)

// TenderEvent is an action that may move a work to its next status.
type TenderEvent string

const (
	EventRegisterBidders   TenderEvent = "register_bidders"
	EventCloseBidderList   TenderEvent = "close_bidder_list"
	EventOpenFinancialBids TenderEvent = "open_financial_bids"
	EventRecordFinancial   TenderEvent = "record_financial_bid"
	EventIssueAward        TenderEvent = "issue_award"
	EventCancel            TenderEvent = "cancel"
)

var ErrInvalidTransition = errors.New("invalid tender status transition")

// transitions maps (current status, event) to the next status. Every
// handler goes through Transition so no handler can apply an illegal move.
var transitions = map[TenderStatus]map[TenderEvent]TenderStatus{
	StatusPublished: {
		EventRegisterBidders: StatusTechnicalBidOpening,
		EventCancel:          StatusCancelled,
	},
	StatusTechnicalBidOpening: {
		EventRegisterBidders: StatusTechnicalBidOpening,
		EventCloseBidderList: StatusTechnicalEvaluation,
		EventCancel:          StatusCancelled,
	},
	StatusTechnicalEvaluation: {
		// close_bidder_list stays legal so the action is idempotent.
		EventCloseBidderList:   StatusTechnicalEvaluation,
		EventOpenFinancialBids: StatusFinancialBidOpening,
		EventCancel:            StatusCancelled,
	},
	StatusFinancialBidOpening: {
		EventRecordFinancial: StatusFinancialEvaluation,
		EventCancel:          StatusCancelled,
	},
	StatusFinancialEvaluation: {
		// Re-entrant: recording another bidder's amount keeps the status.
		EventRecordFinancial: StatusFinancialEvaluation,
		EventIssueAward:      StatusAOC,
		EventCancel:          StatusCancelled,
	},
}

// Transition returns the status resulting from applying event to current,
// or ErrInvalidTransition when the move is not in the table.
func Transition(current TenderStatus, event TenderEvent) (TenderStatus, error) {
	if next, ok := transitions[current][event]; ok {
		return next, nil
	}
	return current, fmt.Errorf("%w: %s is not allowed from %q", ErrInvalidTransition, event, current)
}

// CanApply reports whether event is legal from current without applying it.
func CanApply(current TenderStatus, event TenderEvent) bool {
	_, ok := transitions[current][event]
	return ok
}

// IsTerminal reports whether no further transitions exist from s.
func (s TenderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// statusOrder fixes the forward chain so monotonicity can be checked;
// Cancelled sits outside the chain.
var statusOrder = map[TenderStatus]int{
	StatusPublished:           0,
	StatusTechnicalBidOpening: 1,
	StatusTechnicalEvaluation: 2,
	StatusFinancialBidOpening: 3,
	StatusFinancialEvaluation: 4,
	StatusAOC:                 5,
}

// Order returns the position of s along the forward chain, or -1 for
// Cancelled and unknown values.
func (s TenderStatus) Order() int {
	if o, ok := statusOrder[s]; ok {
		return o
	}
	return -1
}

// ValidTenderStatus reports whether s is one of the defined statuses.
func ValidTenderStatus(s TenderStatus) bool {
	switch s {
	case StatusPublished, StatusTechnicalBidOpening, StatusTechnicalEvaluation,
		StatusFinancialBidOpening, StatusFinancialEvaluation, StatusAOC, StatusCancelled:
		return true
	default:
		return false
	}
}
