package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
)

type addBiddersRequest struct {
	WorkID    uuid.UUID   `json:"workId"`
	AgencyIDs []uuid.UUID `json:"agencyIds"`
}

// AddBidders registers one or more agencies as bidders on a work,
// opening the technical bid stage on first registration.
func AddBidders(w http.ResponseWriter, r *http.Request) {
	var req addBiddersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.AgencyIDs) == 0 {
		respondError(w, http.StatusBadRequest, "at least one agency id is required")
		return
	}

	added, err := NewTenderEngine().RegisterBidders(req.WorkID, req.AgencyIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrWorkNotFound):
			respondError(w, http.StatusNotFound, "work not found")
		case errors.Is(err, ErrAllBiddersExist):
			respondError(w, http.StatusConflict, "all given agencies are already registered on this work")
		case errors.Is(err, ErrInvalidState):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrBidAgencyInvalid):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "could not register bidders")
		}
		return
	}
	respondJSON(w, http.StatusOK, successResponse{
		Success: fmt.Sprintf("%d bidder(s) registered", added),
		Count:   added,
	})
}

// GetBidders lists the bid agencies on a work with evaluation state.
func GetBidders(w http.ResponseWriter, r *http.Request) {
	workID := mux.Vars(r)["workId"]
	var bids []models.BidAgency
	err := config.DB.
		Preload("Agency").
		Preload("TechnicalEvaluationDocument").
		Where("works_detail_id = ?", workID).
		Order("created_at ASC").
		Find(&bids).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not load bidders")
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: "ok", Count: len(bids), Data: bids})
}

// canRemoveBidder reports whether the work's status still allows a
// bidder to withdraw. Cancelled works keep their bidder history.
func canRemoveBidder(status models.TenderStatus) bool {
	return !status.IsTerminal() && status.Order() <= models.StatusTechnicalEvaluation.Order()
}

// RemoveBidder withdraws an agency from a work before bids open. The
// earnest money entry goes with it.
func RemoveBidder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workID, err := uuid.Parse(vars["workId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid work id")
		return
	}
	agencyID, err := uuid.Parse(vars["agencyId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid agency id")
		return
	}

	var work models.WorksDetail
	if err := config.DB.First(&work, "id = ?", workID).Error; err != nil {
		respondError(w, http.StatusNotFound, "work not found")
		return
	}
	if !canRemoveBidder(work.TenderStatus) {
		respondError(w, http.StatusConflict, "bidders cannot be removed after financial bids open")
		return
	}

	var bid models.BidAgency
	if err := config.DB.
		Where("works_detail_id = ? AND agency_details_id = ?", workID, agencyID).
		First(&bid).Error; err != nil {
		respondError(w, http.StatusNotFound, "agency is not a bidder on this work")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bid_agency_id = ?", bid.ID).
			Delete(&models.EarnestMoneyRegister{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bid).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not remove bidder")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CloseBidderList freezes the bidder list and moves the work into
// technical evaluation.
func CloseBidderList(w http.ResponseWriter, r *http.Request) {
	workID, err := uuid.Parse(mux.Vars(r)["workId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid work id")
		return
	}
	if err := NewTenderEngine().CloseBidderList(workID); err != nil {
		switch {
		case errors.Is(err, ErrWorkNotFound):
			respondError(w, http.StatusNotFound, "work not found")
		case errors.Is(err, ErrInvalidState):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "could not close bidder list")
		}
		return
	}
	respondSuccess(w, "bidder list closed, work moved to technical evaluation")
}
