package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
)

// depositView decorates a deposit with its derived maturity category.
type depositView struct {
	models.SecurityDeposit
	MaturityCategory string `json:"maturityCategory"`
}

// GetSecurityDeposits lists deposits with maturity categories, newest
// maturity last so overdue entries surface first. Filterable by
// status, category and work.
func GetSecurityDeposits(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Preload("Work.Nit").Order("maturity_date ASC")

	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if workID := r.URL.Query().Get("workId"); workID != "" {
		query = query.Where("works_detail_id = ?", workID)
	}

	var deposits []models.SecurityDeposit
	if err := query.Find(&deposits).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not load security deposits")
		return
	}

	now := time.Now()
	category := r.URL.Query().Get("category")
	views := make([]depositView, 0, len(deposits))
	for _, d := range deposits {
		cat := models.MaturityCategory(d.MaturityDate, now)
		if category != "" && cat != category {
			continue
		}
		views = append(views, depositView{SecurityDeposit: d, MaturityCategory: cat})
	}

	respondJSON(w, http.StatusOK, successResponse{Success: "ok", Count: len(views), Data: views})
}

type markDepositPaidRequest struct {
	PaymentMethod string          `json:"paymentMethod"`
	ChequeNumber  string          `json:"chequeNumber"`
	ChequeDate    models.JSONTime `json:"chequeDate"`
	TransactionID string          `json:"transactionId"`
	PaymentDate   models.JSONTime `json:"paymentDate"`
}

// MarkDepositPaid records the return of a matured deposit to the
// contractor. Cheque payouts need a cheque number and date, online
// transfers a transaction id; the transition is one-way.
func MarkDepositPaid(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req markDepositPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	switch req.PaymentMethod {
	case models.PayMethodCheque:
		if req.ChequeNumber == "" || req.ChequeDate.IsZero() {
			respondError(w, http.StatusBadRequest, "cheque payout needs a cheque number and date")
			return
		}
	case models.PayMethodOnline:
		if req.TransactionID == "" {
			respondError(w, http.StatusBadRequest, "online transfer needs a transaction id")
			return
		}
	case models.PayMethodCash:
		// no reference required
	default:
		respondError(w, http.StatusBadRequest, "payment method must be CHEQUE, ONLINE_TRANSFER or CASH")
		return
	}

	var deposit models.SecurityDeposit
	if err := config.DB.First(&deposit, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "security deposit not found")
		return
	}
	if deposit.PaymentStatus == models.DepositPaid {
		respondError(w, http.StatusConflict, "security deposit is already paid")
		return
	}

	paidAt := time.Now()
	if !req.PaymentDate.IsZero() {
		paidAt = req.PaymentDate.Time()
	}

	updates := map[string]interface{}{
		"payment_status": models.DepositPaid,
		"payment_method": req.PaymentMethod,
		"paid_at":        paidAt,
	}
	switch req.PaymentMethod {
	case models.PayMethodCheque:
		updates["cheque_number"] = req.ChequeNumber
		chequeDate := req.ChequeDate.Time()
		updates["cheque_date"] = &chequeDate
	case models.PayMethodOnline:
		updates["transaction_id"] = req.TransactionID
	}

	res := config.DB.Model(&models.SecurityDeposit{}).
		Where("id = ? AND payment_status = ?", deposit.ID, models.DepositUnpaid).
		Updates(updates)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "could not mark deposit paid")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusConflict, "security deposit is already paid")
		return
	}

	respondSuccess(w, "security deposit marked paid")
}

// GetEarnestMoneyRegister lists EMD entries, filterable by work and
// release state.
func GetEarnestMoneyRegister(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Preload("BidAgency.Agency").Order("created_at DESC")

	if workID := r.URL.Query().Get("workId"); workID != "" {
		query = query.Where("works_detail_id = ?", workID)
	}
	if released := r.URL.Query().Get("released"); released != "" {
		query = query.Where("released = ?", released == "true")
	}
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}

	var entries []models.EarnestMoneyRegister
	if err := query.Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not load earnest money register")
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: "ok", Count: len(entries), Data: entries})
}

// MarkEmdPaid records that a bidder has actually deposited the EMD.
func MarkEmdPaid(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	res := config.DB.Model(&models.EarnestMoneyRegister{}).
		Where("id = ? AND payment_status = ?", id, models.DepositUnpaid).
		Update("payment_status", models.DepositPaid)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "could not update earnest money entry")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusConflict, "earnest money entry not found or already paid")
		return
	}
	respondSuccess(w, "earnest money marked paid")
}
