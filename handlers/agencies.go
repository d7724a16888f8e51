package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
)

type agencyRequest struct {
	Name           string `json:"name"`
	AgencyType     string `json:"agencyType"`
	ProprietorName string `json:"proprietorName"`
	ContactDetails string `json:"contactDetails"`
	Mobile         string `json:"mobileNumber"`
	Email          string `json:"email"`
	Pan            string `json:"pan"`
	Gst            string `json:"gst"`
	Tin            string `json:"tin"`
}

func CreateAgency(w http.ResponseWriter, r *http.Request) {
	var req agencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "agency name is required")
		return
	}
	if req.AgencyType == "" {
		req.AgencyType = "INDIVIDUAL"
	}

	agency := models.AgencyDetails{
		Name:           req.Name,
		AgencyType:     req.AgencyType,
		ProprietorName: req.ProprietorName,
		ContactDetails: req.ContactDetails,
		Mobile:         req.Mobile,
		Email:          req.Email,
		Pan:            req.Pan,
		Gst:            req.Gst,
		Tin:            req.Tin,
	}
	if err := config.DB.Create(&agency).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "an agency with this name already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not create agency")
		return
	}
	respondSuccessData(w, "agency created", agency)
}

func GetAllAgencies(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Order("name ASC")
	if t := r.URL.Query().Get("type"); t != "" {
		query = query.Where("agency_type = ?", t)
	}

	var agencies []models.AgencyDetails
	if err := query.Find(&agencies).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not load agencies")
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: "ok", Count: len(agencies), Data: agencies})
}

func GetAgency(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var agency models.AgencyDetails
	if err := config.DB.First(&agency, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "agency not found")
		return
	}
	respondJSON(w, http.StatusOK, agency)
}

// UpdateAgency edits contact fields. Identity fields (name, PAN, GST)
// are frozen once the agency has bid on any work.
func UpdateAgency(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var agency models.AgencyDetails
	if err := config.DB.First(&agency, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "agency not found")
		return
	}

	var req agencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var bids int64
	if err := config.DB.Model(&models.BidAgency{}).
		Where("agency_details_id = ?", agency.ID).Count(&bids).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not check agency bids")
		return
	}
	identityChange := (req.Name != "" && req.Name != agency.Name) ||
		(req.Pan != "" && req.Pan != agency.Pan) ||
		(req.Gst != "" && req.Gst != agency.Gst)
	if bids > 0 && identityChange {
		respondError(w, http.StatusConflict, "identity fields are frozen once the agency has participated in a tender")
		return
	}

	if req.Name != "" {
		agency.Name = req.Name
	}
	if req.Pan != "" {
		agency.Pan = req.Pan
	}
	if req.Gst != "" {
		agency.Gst = req.Gst
	}
	if req.ProprietorName != "" {
		agency.ProprietorName = req.ProprietorName
	}
	if req.ContactDetails != "" {
		agency.ContactDetails = req.ContactDetails
	}
	if req.Mobile != "" {
		agency.Mobile = req.Mobile
	}
	if req.Email != "" {
		agency.Email = req.Email
	}
	if req.Tin != "" {
		agency.Tin = req.Tin
	}

	if err := config.DB.Save(&agency).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "an agency with this name already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not update agency")
		return
	}
	respondSuccessData(w, "agency updated", agency)
}

// DeleteAgency removes an agency that has never bid.
func DeleteAgency(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var agency models.AgencyDetails
	if err := config.DB.First(&agency, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "agency not found")
		return
	}

	var bids int64
	if err := config.DB.Model(&models.BidAgency{}).
		Where("agency_details_id = ?", agency.ID).Count(&bids).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not check agency bids")
		return
	}
	if bids > 0 {
		respondError(w, http.StatusConflict, "agency has tender participation and cannot be deleted")
		return
	}

	if err := config.DB.Delete(&agency).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not delete agency")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
