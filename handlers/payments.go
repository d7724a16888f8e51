package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
	"github.com/surajit50/binshiragp-sub000/pkg/policy"
)

// deductionInput carries one deduction either as an absolute rupee
// amount or as a percentage of the gross bill. Amount wins when both
// are given.
type deductionInput struct {
	Amount  *int64   `json:"amount,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
}

func (d deductionInput) resolve(gross int64) int64 {
	switch {
	case d.Amount != nil:
		return *d.Amount
	case d.Percent != nil:
		return policy.PercentageDeduction(gross, *d.Percent)
	default:
		return 0
	}
}

type recordPaymentRequest struct {
	WorkID          uuid.UUID       `json:"workId"`
	GrossBillAmount int64           `json:"grossBillAmount"`
	BillType        string          `json:"billType"`
	BillPaymentDate models.JSONTime `json:"billPaymentDate"`

	IncomeTax         deductionInput `json:"incomeTax"`
	LabourWelfareCess deductionInput `json:"labourWelfareCess"`
	TdsCgst           deductionInput `json:"tdsCgst"`
	TdsSgst           deductionInput `json:"tdsSgst"`

	MbRefNo        string `json:"mbrefno"`
	EGramVoucherNo string `json:"eGramVoucher"`
	GpmsVoucherNo  string `json:"gpmsVoucherNo"`
}

// deductions resolves the four statutory deductions against gross.
// Negative results are rejected outright: a negative amount or
// percentage would otherwise inflate the net above the gross bill.
func (req recordPaymentRequest) deductions(gross int64) (incomeTax, cess, cgst, sgst int64, err error) {
	incomeTax = req.IncomeTax.resolve(gross)
	cess = req.LabourWelfareCess.resolve(gross)
	cgst = req.TdsCgst.resolve(gross)
	sgst = req.TdsSgst.resolve(gross)
	for _, d := range []int64{incomeTax, cess, cgst, sgst} {
		if d < 0 {
			return 0, 0, 0, 0, ErrNegativeDeduction
		}
	}
	return incomeTax, cess, cgst, sgst, nil
}

// RecordPayment books one bill payment against an awarded work. The
// security deposit is retained at the policy percentage of gross, a
// matching deposit row is opened, and a Final Bill closes the work.
func RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.GrossBillAmount <= 0 {
		respondError(w, http.StatusBadRequest, "gross bill amount must be positive")
		return
	}
	if !models.ValidBillType(req.BillType) {
		respondError(w, http.StatusBadRequest, "unknown bill type")
		return
	}
	if req.BillPaymentDate.IsZero() {
		respondError(w, http.StatusBadRequest, "bill payment date is required")
		return
	}

	var work models.WorksDetail
	if err := config.DB.First(&work, "id = ?", req.WorkID).Error; err != nil {
		respondError(w, http.StatusNotFound, "work not found")
		return
	}
	if work.AwardOfContractID == nil {
		respondError(w, http.StatusConflict, "work has no award of contract")
		return
	}
	if work.WorkStatus == models.WorkStatusBillPaid {
		respondError(w, http.StatusConflict, "final bill is already paid for this work")
		return
	}
	if work.WorkStatus == models.WorkStatusCancelled {
		respondError(w, http.StatusConflict, "work is cancelled")
		return
	}

	gross := req.GrossBillAmount
	incomeTax, cess, cgst, sgst, err := req.deductions(gross)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	securityDeposit := policy.SecurityDeposit(gross)

	net := policy.NetAmount(gross, incomeTax, cess, cgst, sgst, securityDeposit)
	if net < 0 {
		respondError(w, http.StatusBadRequest, ErrNetExceedsGross.Error())
		return
	}

	payment := models.PaymentDetail{
		WorksDetailID:     work.ID,
		GrossBillAmount:   gross,
		IncomeTax:         incomeTax,
		LabourWelfareCess: cess,
		TdsCgst:           cgst,
		TdsSgst:           sgst,
		SecurityDeposit:   securityDeposit,
		NetAmount:         net,
		BillType:          req.BillType,
		BillPaymentDate:   req.BillPaymentDate.Time(),
		MbRefNo:           req.MbRefNo,
		EGramVoucherNo:    req.EGramVoucherNo,
		GpmsVoucherNo:     req.GpmsVoucherNo,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if req.BillType == models.BillTypeFinal {
			var finals int64
			if err := tx.Model(&models.PaymentDetail{}).
				Where("works_detail_id = ? AND bill_type = ?", work.ID, models.BillTypeFinal).
				Count(&finals).Error; err != nil {
				return err
			}
			if finals > 0 {
				return ErrFinalBillExists
			}
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if securityDeposit > 0 {
			deposit := models.SecurityDeposit{
				WorksDetailID: work.ID,
				PaymentID:     &payment.ID,
				Amount:        securityDeposit,
				MaturityDate:  payment.BillPaymentDate.AddDate(0, depositMaturityMonths, 0),
				PaymentStatus: models.DepositUnpaid,
			}
			if err := tx.Create(&deposit).Error; err != nil {
				return err
			}
		}
		if req.BillType == models.BillTypeFinal {
			return tx.Model(&models.WorksDetail{}).
				Where("id = ?", work.ID).
				Update("work_status", models.WorkStatusBillPaid).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrFinalBillExists) || isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "final bill already recorded for this work")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not record payment")
		return
	}

	respondSuccessData(w, fmt.Sprintf("%s recorded, net payable %d", payment.BillType, payment.NetAmount), payment)
}

// GetWorkPayments lists payments for a work with the running totals a
// bill clerk needs: total gross paid so far and the balance left
// against the accepted estimate.
func GetWorkPayments(w http.ResponseWriter, r *http.Request) {
	workID := mux.Vars(r)["workId"]

	var work models.WorksDetail
	if err := config.DB.Preload("Payments").First(&work, "id = ?", workID).Error; err != nil {
		respondError(w, http.StatusNotFound, "work not found")
		return
	}

	var totalGross, totalNet, totalDeposit int64
	for i := range work.Payments {
		p := &work.Payments[i]
		totalGross += p.GrossBillAmount
		totalNet += p.NetAmount
		totalDeposit += p.SecurityDeposit
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"workId":               work.ID,
		"finalEstimateAmount":  work.FinalEstimateAmount,
		"payments":             work.Payments,
		"totalGrossPaid":       totalGross,
		"totalNetPaid":         totalNet,
		"totalSecurityDeposit": totalDeposit,
		"pendingBalance":       work.FinalEstimateAmount - totalGross,
	})
}

// DeletePayment reverses a wrongly entered bill. Only the latest bill
// of a work may be removed, and its unpaid deposit row goes with it.
func DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payment models.PaymentDetail
	if err := config.DB.First(&payment, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "payment not found")
		return
	}

	var newer int64
	if err := config.DB.Model(&models.PaymentDetail{}).
		Where("works_detail_id = ? AND created_at > ?", payment.WorksDetailID, payment.CreatedAt).
		Count(&newer).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not check later bills")
		return
	}
	if newer > 0 {
		respondError(w, http.StatusConflict, "only the latest bill of a work can be deleted")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var deposit models.SecurityDeposit
		depErr := tx.Where("payment_id = ?", payment.ID).First(&deposit).Error
		if depErr == nil {
			if deposit.PaymentStatus == models.DepositPaid {
				return ErrDepositPaid
			}
			if err := tx.Delete(&deposit).Error; err != nil {
				return err
			}
		} else if !errors.Is(depErr, gorm.ErrRecordNotFound) {
			return depErr
		}
		if payment.BillType == models.BillTypeFinal {
			if err := tx.Model(&models.WorksDetail{}).
				Where("id = ?", payment.WorksDetailID).
				Update("work_status", models.WorkStatusWorkOrder).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&payment).Error
	})
	if err != nil {
		if errors.Is(err, ErrDepositPaid) {
			respondError(w, http.StatusConflict, "security deposit of this bill is already paid out")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not delete payment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// paymentDateRange parses optional from/to query params (YYYY-MM-DD).
func paymentDateRange(r *http.Request) (from, to time.Time, err error) {
	const layout = "2006-01-02"
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = time.Parse(layout, v); err != nil {
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = time.Parse(layout, v); err != nil {
			return
		}
	}
	return
}

// GetAllPayments lists payments across works, newest first, with
// optional from/to date filters on the bill payment date.
func GetAllPayments(w http.ResponseWriter, r *http.Request) {
	from, to, err := paymentDateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
		return
	}

	query := config.DB.Preload("Work.Nit").Order("bill_payment_date DESC")
	if !from.IsZero() {
		query = query.Where("bill_payment_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("bill_payment_date <= ?", to)
	}

	var payments []models.PaymentDetail
	if err := query.Find(&payments).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not load payments")
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: "ok", Count: len(payments), Data: payments})
}
