package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
)

type noticeRequest struct {
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	NoticeType  string          `json:"noticeType"`
	PublishedAt models.JSONTime `json:"publishedAt"`
}

func CreateNotice(w http.ResponseWriter, r *http.Request) {
	var req noticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" || req.Body == "" {
		respondError(w, http.StatusBadRequest, "title and body are required")
		return
	}
	if req.NoticeType == "" {
		req.NoticeType = "general"
	}
	publishedAt := time.Now()
	if !req.PublishedAt.IsZero() {
		publishedAt = req.PublishedAt.Time()
	}

	notice := models.Notice{
		Title:       req.Title,
		Body:        req.Body,
		NoticeType:  req.NoticeType,
		PublishedAt: publishedAt,
	}
	if err := config.DB.Create(&notice).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not create notice")
		return
	}
	respondSuccessData(w, "notice published", notice)
}

// GetNotices is public: citizens read the notice board without a login.
func GetNotices(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Order("published_at DESC")
	if t := r.URL.Query().Get("type"); t != "" {
		query = query.Where("notice_type = ?", t)
	}

	var notices []models.Notice
	if err := query.Find(&notices).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not load notices")
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: "ok", Count: len(notices), Data: notices})
}

func DeleteNotice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res := config.DB.Delete(&models.Notice{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "could not delete notice")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "notice not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type warishApplicationRequest struct {
	ApplicantName string          `json:"applicantName"`
	DeceasedName  string          `json:"deceasedName"`
	DateOfDeath   models.JSONTime `json:"dateOfDeath"`
	Relation      string          `json:"relation"`
	VillageName   string          `json:"villageName"`
}

// SubmitWarishApplication files a citizen application for an
// inheritance certificate.
func SubmitWarishApplication(w http.ResponseWriter, r *http.Request) {
	var req warishApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ApplicantName == "" || req.DeceasedName == "" || req.Relation == "" {
		respondError(w, http.StatusBadRequest, "applicant name, deceased name and relation are required")
		return
	}
	if req.DateOfDeath.IsZero() {
		respondError(w, http.StatusBadRequest, "date of death is required")
		return
	}

	app := models.WarishApplication{
		ApplicantName: req.ApplicantName,
		DeceasedName:  req.DeceasedName,
		DateOfDeath:   req.DateOfDeath.Time(),
		Relation:      req.Relation,
		VillageName:   req.VillageName,
		Status:        models.WarishPending,
	}
	if err := config.DB.Create(&app).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not submit application")
		return
	}
	respondSuccessData(w, "warish application submitted", app)
}

func GetWarishApplications(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Order("created_at DESC")
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var apps []models.WarishApplication
	if err := query.Find(&apps).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not load warish applications")
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: "ok", Count: len(apps), Data: apps})
}

type warishDecisionRequest struct {
	Approve bool   `json:"approve"`
	Remarks string `json:"remarks"`
}

// DecideWarishApplication approves or rejects a pending application.
// Approval assigns the next WAR-<year>-<seq> certificate number; the
// sequence restarts each calendar year.
func DecideWarishApplication(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req warishDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var app models.WarishApplication
	if err := config.DB.First(&app, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "warish application not found")
		return
	}
	if app.Status != models.WarishPending {
		respondError(w, http.StatusConflict, "application is already decided")
		return
	}

	if !req.Approve {
		app.Status = models.WarishRejected
		app.Remarks = req.Remarks
		if err := config.DB.Save(&app).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "could not reject application")
			return
		}
		respondSuccessData(w, "warish application rejected", app)
		return
	}

	year := time.Now().Year()
	// Retry on certificate-number collision with a concurrent approval.
	for attempt := 0; attempt < 3; attempt++ {
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			var issued int64
			if err := tx.Model(&models.WarishApplication{}).
				Where("certificate_no LIKE ?", fmt.Sprintf("WAR-%d-%%", year)).
				Count(&issued).Error; err != nil {
				return err
			}
			certNo := fmt.Sprintf("WAR-%d-%04d", year, issued+1)
			app.Status = models.WarishApproved
			app.Remarks = req.Remarks
			app.CertificateNo = &certNo
			return tx.Save(&app).Error
		})
		if err == nil {
			respondSuccessData(w, fmt.Sprintf("certificate %s issued", *app.CertificateNo), app)
			return
		}
		if !isUniqueViolation(err) {
			respondError(w, http.StatusInternalServerError, "could not approve application")
			return
		}
	}
	respondError(w, http.StatusConflict, "could not allocate a certificate number, try again")
}
