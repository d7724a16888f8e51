package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
	"github.com/surajit50/binshiragp-sub000/pkg/policy"
)

type addWorkRequest struct {
	NitID               uuid.UUID `json:"nitId"`
	ActivityDescription string    `json:"activityDescription"`
	FinalEstimateAmount int64     `json:"finalEstimateAmount"`
	ParticipationFee    int64     `json:"participationFee"`
}

// AddWork attaches a work item to a NIT. Serial numbers run per NIT
// and earnest money defaults to the policy percentage of the estimate.
func AddWork(w http.ResponseWriter, r *http.Request) {
	var req addWorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ActivityDescription == "" {
		respondError(w, http.StatusBadRequest, "activity description is required")
		return
	}
	if req.FinalEstimateAmount <= 0 {
		respondError(w, http.StatusBadRequest, "estimate amount must be positive")
		return
	}

	var nit models.NitDetails
	if err := config.DB.First(&nit, "id = ?", req.NitID).Error; err != nil {
		respondError(w, http.StatusNotFound, "NIT not found")
		return
	}

	var work models.WorksDetail
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var maxSl int
		if err := tx.Model(&models.WorksDetail{}).
			Where("nit_id = ?", req.NitID).
			Select("COALESCE(MAX(work_sl_no), 0)").Scan(&maxSl).Error; err != nil {
			return err
		}
		work = models.WorksDetail{
			NitID:               req.NitID,
			WorkSlNo:            maxSl + 1,
			ActivityDescription: req.ActivityDescription,
			FinalEstimateAmount: req.FinalEstimateAmount,
			ParticipationFee:    req.ParticipationFee,
			EarnestMoneyAmount:  policy.EarnestMoney(req.FinalEstimateAmount),
			TenderStatus:        models.StatusPublished,
			WorkStatus:          models.WorkStatusTenderProcess,
		}
		return tx.Create(&work).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not add work")
		return
	}

	respondSuccessData(w, fmt.Sprintf("work sl. %d added to NIT %d", work.WorkSlNo, nit.MemoNumber), work)
}

func GetAllWorks(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Preload("BidAgencies.Agency").Order("created_at DESC")

	if nitID := r.URL.Query().Get("nitId"); nitID != "" {
		query = query.Where("nit_id = ?", nitID)
	}
	if status := r.URL.Query().Get("tenderStatus"); status != "" {
		if !models.ValidTenderStatus(models.TenderStatus(status)) {
			respondError(w, http.StatusBadRequest, "unknown tender status")
			return
		}
		query = query.Where("tender_status = ?", status)
	}
	if ws := r.URL.Query().Get("workStatus"); ws != "" {
		query = query.Where("work_status = ?", ws)
	}

	var works []models.WorksDetail
	if err := query.Find(&works).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not load works")
		return
	}
	respondJSON(w, http.StatusOK, works)
}

func GetWork(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var work models.WorksDetail
	err := config.DB.
		Preload("BidAgencies.Agency").
		Preload("BidAgencies.TechnicalEvaluationDocument").
		Preload("Payments").
		First(&work, "id = ?", id).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "work not found")
		return
	}
	respondJSON(w, http.StatusOK, work)
}

type updateWorkRequest struct {
	ActivityDescription string `json:"activityDescription"`
	FinalEstimateAmount int64  `json:"finalEstimateAmount"`
	ParticipationFee    *int64 `json:"participationFee"`
}

// UpdateWork edits descriptive fields. The estimate is frozen once
// bidders are registered; the derived earnest money tracks it.
func UpdateWork(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var work models.WorksDetail
	if err := config.DB.First(&work, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "work not found")
		return
	}

	var req updateWorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.FinalEstimateAmount > 0 && req.FinalEstimateAmount != work.FinalEstimateAmount {
		var bidders int64
		if err := config.DB.Model(&models.BidAgency{}).
			Where("works_detail_id = ?", work.ID).Count(&bidders).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "could not check bidders")
			return
		}
		if bidders > 0 {
			respondError(w, http.StatusConflict, "estimate cannot change after bidders are registered")
			return
		}
		work.FinalEstimateAmount = req.FinalEstimateAmount
		work.EarnestMoneyAmount = policy.EarnestMoney(req.FinalEstimateAmount)
	}
	if req.ActivityDescription != "" {
		work.ActivityDescription = req.ActivityDescription
	}
	if req.ParticipationFee != nil {
		work.ParticipationFee = *req.ParticipationFee
	}

	if err := config.DB.Save(&work).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not update work")
		return
	}
	respondSuccessData(w, "work updated", work)
}

// DeleteWork removes a work that has no bidders and no award.
func DeleteWork(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var work models.WorksDetail
	if err := config.DB.First(&work, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "work not found")
		return
	}
	if work.AwardOfContractID != nil {
		respondError(w, http.StatusConflict, "awarded work cannot be deleted")
		return
	}

	var bidders int64
	if err := config.DB.Model(&models.BidAgency{}).
		Where("works_detail_id = ?", work.ID).Count(&bidders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not check bidders")
		return
	}
	if bidders > 0 {
		respondError(w, http.StatusConflict, "work has registered bidders and cannot be deleted")
		return
	}

	if err := config.DB.Delete(&work).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not delete work")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
