package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
)

type technicalEvaluationRequest struct {
	BidAgencyID uuid.UUID `json:"bidAgencyId"`

	Credential struct {
		HasPan          bool `json:"hasPan"`
		HasGst          bool `json:"hasGst"`
		HasTradeLicence bool `json:"hasTradeLicence"`
		HasPTax         bool `json:"hasPTax"`
		HasIncomeTaxRet bool `json:"hasIncomeTaxReturn"`
		EmdPaid         bool `json:"emdPaid"`
	} `json:"credential"`

	Validity struct {
		ValidPan      bool `json:"validPan"`
		ValidGst      bool `json:"validGst"`
		ValidTradeLic bool `json:"validTradeLicence"`
		ValidPTax     bool `json:"validPTax"`
	} `json:"validityOfDocument"`

	Qualify bool   `json:"qualify"`
	Remarks string `json:"remarks"`
}

// AddTechnicalEvaluation records the credential checklist, document
// validity and qualify verdict for one bid. The three rows and the
// link on the bid are written in a single transaction, so a bid is
// either fully evaluated or not at all.
func AddTechnicalEvaluation(w http.ResponseWriter, r *http.Request) {
	var req technicalEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var bid models.BidAgency
	if err := config.DB.Preload("Work").First(&bid, "id = ?", req.BidAgencyID).Error; err != nil {
		respondError(w, http.StatusNotFound, "bid agency not found")
		return
	}
	if bid.Evaluated() {
		respondError(w, http.StatusConflict, "bid is already evaluated")
		return
	}
	if bid.Work != nil && bid.Work.TenderStatus != models.StatusTechnicalBidOpening &&
		bid.Work.TenderStatus != models.StatusTechnicalEvaluation {
		respondError(w, http.StatusConflict, "work is not in a technical evaluation stage")
		return
	}

	var doc models.TechnicalEvaluationDocument
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		cred := models.Credential{
			HasPan:          req.Credential.HasPan,
			HasGst:          req.Credential.HasGst,
			HasTradeLicence: req.Credential.HasTradeLicence,
			HasPTax:         req.Credential.HasPTax,
			HasIncomeTaxRet: req.Credential.HasIncomeTaxRet,
			EmdPaid:         req.Credential.EmdPaid,
		}
		if err := tx.Create(&cred).Error; err != nil {
			return err
		}
		validity := models.ValidityOfDocument{
			ValidPan:      req.Validity.ValidPan,
			ValidGst:      req.Validity.ValidGst,
			ValidTradeLic: req.Validity.ValidTradeLic,
			ValidPTax:     req.Validity.ValidPTax,
		}
		if err := tx.Create(&validity).Error; err != nil {
			return err
		}
		doc = models.TechnicalEvaluationDocument{
			CredentialID:         cred.ID,
			ValidityOfDocumentID: validity.ID,
			Qualify:              req.Qualify,
			Remarks:              req.Remarks,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		res := tx.Model(&models.BidAgency{}).
			Where("id = ? AND technical_evaluation_document_id IS NULL", bid.ID).
			Update("technical_evaluation_document_id", doc.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBidAgencyInvalid
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBidAgencyInvalid) || isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "bid is already evaluated")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not record technical evaluation")
		return
	}

	respondSuccessData(w, "technical evaluation recorded", doc)
}

// GetTechnicalEvaluation returns the evaluation document for one bid.
func GetTechnicalEvaluation(w http.ResponseWriter, r *http.Request) {
	bidID := mux.Vars(r)["bidAgencyId"]

	var bid models.BidAgency
	err := config.DB.
		Preload("TechnicalEvaluationDocument.Credential").
		Preload("TechnicalEvaluationDocument.ValidityOfDocument").
		First(&bid, "id = ?", bidID).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "bid agency not found")
		return
	}
	if !bid.Evaluated() {
		respondError(w, http.StatusNotFound, "bid has no technical evaluation yet")
		return
	}
	respondJSON(w, http.StatusOK, bid.TechnicalEvaluationDocument)
}
