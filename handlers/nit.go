package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/middleware"
	"github.com/surajit50/binshiragp-sub000/models"
)

type bookNitRequest struct {
	MemoNumber         int             `json:"memoNumber"`
	MemoDate           models.JSONTime `json:"memoDate"`
	PublishingDate     models.JSONTime `json:"publishingDate"`
	DocumentDownloadTo models.JSONTime `json:"documentDownloadTo"`
	BidSubmissionEnd   models.JSONTime `json:"bidSubmissionEnd"`
	TechnicalBidOpen   models.JSONTime `json:"technicalBidOpeningDate"`
	PublishingPlace    string          `json:"publishingPlace"`
	BidValidityDays    int             `json:"bidValidityDays"`
	IsSupply           bool            `json:"isSupply"`
}

// BookNit registers a new Notice Inviting Tender. Memo numbers are
// unique within the calendar year of the memo date.
func BookNit(w http.ResponseWriter, r *http.Request) {
	var req bookNitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MemoNumber <= 0 {
		respondError(w, http.StatusBadRequest, "memo number must be a positive integer")
		return
	}
	if req.MemoDate.IsZero() || req.PublishingDate.IsZero() {
		respondError(w, http.StatusBadRequest, "memo date and publishing date are required")
		return
	}
	if req.PublishingPlace == "" {
		respondError(w, http.StatusBadRequest, "publishing place is required")
		return
	}
	if req.BidValidityDays <= 0 {
		req.BidValidityDays = 90
	}

	memoDate := req.MemoDate.Time()
	var dupes int64
	if err := config.DB.Model(&models.NitDetails{}).
		Where("memo_number = ? AND date_part('year', memo_date) = ?", req.MemoNumber, memoDate.Year()).
		Count(&dupes).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not check memo number")
		return
	}
	if dupes > 0 {
		respondError(w, http.StatusConflict,
			fmt.Sprintf("NIT memo no. %d already exists for year %d", req.MemoNumber, memoDate.Year()))
		return
	}

	nit := models.NitDetails{
		MemoNumber:         req.MemoNumber,
		MemoDate:           memoDate,
		PublishingDate:     req.PublishingDate.Time(),
		DocumentDownloadTo: req.DocumentDownloadTo.Time(),
		BidSubmissionEnd:   req.BidSubmissionEnd.Time(),
		TechnicalBidOpen:   req.TechnicalBidOpen.Time(),
		PublishingPlace:    req.PublishingPlace,
		BidValidityDays:    req.BidValidityDays,
		IsSupply:           req.IsSupply,
	}
	if err := config.DB.Create(&nit).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict,
				fmt.Sprintf("NIT memo no. %d already exists for year %d", req.MemoNumber, memoDate.Year()))
			return
		}
		respondError(w, http.StatusInternalServerError, "could not book NIT")
		return
	}

	respondSuccessData(w, fmt.Sprintf("NIT memo no. %d/%d booked", nit.MemoNumber, nit.MemoYear()), nit)
}

func GetAllNits(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Preload("Works").Order("memo_date DESC")

	if year := r.URL.Query().Get("year"); year != "" {
		query = query.Where("date_part('year', memo_date) = ?", year)
	}
	if published := r.URL.Query().Get("published"); published != "" {
		query = query.Where("is_published = ?", published == "true")
	}

	var nits []models.NitDetails
	if err := query.Find(&nits).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not load NIT register")
		return
	}
	respondJSON(w, http.StatusOK, nits)
}

func GetNit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var nit models.NitDetails
	if err := config.DB.Preload("Works.BidAgencies").First(&nit, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "NIT not found")
		return
	}
	respondJSON(w, http.StatusOK, nit)
}

// UpdateNit edits NIT fields. Once published (works attached and
// announced) only an admin may amend it.
func UpdateNit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var nit models.NitDetails
	if err := config.DB.First(&nit, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "NIT not found")
		return
	}
	if nit.IsPublished && middleware.GetRole(r) != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "published NIT can only be amended by an admin")
		return
	}

	var req bookNitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.PublishingPlace != "" {
		nit.PublishingPlace = req.PublishingPlace
	}
	if !req.PublishingDate.IsZero() {
		nit.PublishingDate = req.PublishingDate.Time()
	}
	if !req.DocumentDownloadTo.IsZero() {
		nit.DocumentDownloadTo = req.DocumentDownloadTo.Time()
	}
	if !req.BidSubmissionEnd.IsZero() {
		nit.BidSubmissionEnd = req.BidSubmissionEnd.Time()
	}
	if !req.TechnicalBidOpen.IsZero() {
		nit.TechnicalBidOpen = req.TechnicalBidOpen.Time()
	}
	if req.BidValidityDays > 0 {
		nit.BidValidityDays = req.BidValidityDays
	}

	if err := config.DB.Save(&nit).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not update NIT")
		return
	}
	respondSuccessData(w, "NIT updated", nit)
}

// PublishNit marks the NIT as announced. Requires at least one work.
func PublishNit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid NIT id")
		return
	}

	var nit models.NitDetails
	if err := config.DB.First(&nit, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "NIT not found")
		return
	}
	if nit.IsPublished {
		respondSuccess(w, "NIT is already published")
		return
	}

	var workCount int64
	if err := config.DB.Model(&models.WorksDetail{}).
		Where("nit_id = ?", id).Count(&workCount).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not count works")
		return
	}
	if workCount == 0 {
		respondError(w, http.StatusConflict, "cannot publish a NIT with no works attached")
		return
	}

	if err := config.DB.Model(&nit).Update("is_published", true).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not publish NIT")
		return
	}
	respondSuccess(w, fmt.Sprintf("NIT memo no. %d/%d published", nit.MemoNumber, nit.MemoYear()))
}

// DeleteNit removes a NIT; allowed only while it owns zero works.
func DeleteNit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid NIT id")
		return
	}

	var workCount int64
	if err := config.DB.Model(&models.WorksDetail{}).
		Where("nit_id = ?", id).Count(&workCount).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not count works")
		return
	}
	if workCount > 0 {
		respondError(w, http.StatusConflict, "NIT has works attached and cannot be deleted")
		return
	}

	res := config.DB.Delete(&models.NitDetails{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "could not delete NIT")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "NIT not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
