package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// OpenFinancialBids moves a work to the financial bid stage once every
// registered bidder carries a technical evaluation.
func OpenFinancialBids(w http.ResponseWriter, r *http.Request) {
	workID, err := uuid.Parse(mux.Vars(r)["workId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid work id")
		return
	}
	if err := NewTenderEngine().OpenFinancialBids(workID); err != nil {
		switch {
		case errors.Is(err, ErrWorkNotFound):
			respondError(w, http.StatusNotFound, "work not found")
		case errors.Is(err, ErrBiddersUnfinished):
			respondError(w, http.StatusConflict, "all bidders must be technically evaluated before financial bids open")
		case errors.Is(err, ErrInvalidState):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "could not open financial bids")
		}
		return
	}
	respondSuccess(w, "financial bids opened")
}

type financialBidRequest struct {
	AgencyID      uuid.UUID `json:"agencyId"`
	BiddingAmount int64     `json:"biddingAmount"`
}

// RecordFinancialBid stores one agency's quoted amount for a work.
// Re-recording while the work sits in financial evaluation overwrites
// the earlier figure.
func RecordFinancialBid(w http.ResponseWriter, r *http.Request) {
	workID, err := uuid.Parse(mux.Vars(r)["workId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid work id")
		return
	}
	var req financialBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.BiddingAmount <= 0 {
		respondError(w, http.StatusBadRequest, "bidding amount must be positive")
		return
	}

	bid, err := NewTenderEngine().RecordFinancialBid(workID, req.AgencyID, req.BiddingAmount)
	if err != nil {
		switch {
		case errors.Is(err, ErrWorkNotFound):
			respondError(w, http.StatusNotFound, "work not found")
		case errors.Is(err, ErrBidAgencyInvalid):
			respondError(w, http.StatusNotFound, "agency is not a bidder on this work")
		case errors.Is(err, ErrInvalidState):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "could not record financial bid")
		}
		return
	}
	respondSuccessData(w, "financial bid recorded", bid)
}

// CancelTender aborts a work's tender before award, releasing earnest
// money entries.
func CancelTender(w http.ResponseWriter, r *http.Request) {
	workID, err := uuid.Parse(mux.Vars(r)["workId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid work id")
		return
	}
	if err := NewTenderEngine().Cancel(workID); err != nil {
		switch {
		case errors.Is(err, ErrWorkNotFound):
			respondError(w, http.StatusNotFound, "work not found")
		case errors.Is(err, ErrInvalidState):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "could not cancel tender")
		}
		return
	}
	respondSuccess(w, "tender cancelled")
}
