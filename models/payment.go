package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill types. A work receives at most one Final Bill (partial unique
// index, see config migrations).
const (
	BillTypeFirstRA  = "1st RA Bill"
	BillTypeSecondRA = "2nd RA Bill"
	BillTypeThirdRA  = "3rd RA Bill"
	BillTypeFinal    = "Final Bill"
)

// ValidBillType reports whether t is one of the accepted bill types.
func ValidBillType(t string) bool {
	switch t {
	case BillTypeFirstRA, BillTypeSecondRA, BillTypeThirdRA, BillTypeFinal:
		return true
	default:
		return false
	}
}

// PaymentDetail is one bill payment against a work. All amounts are
// whole rupees; deductions are rounded before persistence and
// net_amount is always gross minus deductions minus security deposit.
type PaymentDetail struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorksDetailID uuid.UUID    `gorm:"type:uuid;not null;index" json:"worksDetailId"`
	Work          *WorksDetail `gorm:"foreignKey:WorksDetailID" json:"worksDetail,omitempty"`

	GrossBillAmount   int64 `gorm:"column:gross_bill_amount;not null" json:"grossBillAmount"`
	IncomeTax         int64 `gorm:"column:income_tax;not null" json:"incomeTax"`
	LabourWelfareCess int64 `gorm:"column:labour_welfare_cess;not null" json:"labourWelfareCess"`
	TdsCgst           int64 `gorm:"column:tds_cgst;not null" json:"tdsCgst"`
	TdsSgst           int64 `gorm:"column:tds_sgst;not null" json:"tdsSgst"`
	SecurityDeposit   int64 `gorm:"column:security_deposit;not null" json:"securityDeposit"`
	NetAmount         int64 `gorm:"column:net_amount;not null" json:"netAmount"`

	BillType        string    `gorm:"column:bill_type;size:20;not null" json:"billType"`
	BillPaymentDate time.Time `gorm:"column:bill_payment_date;not null" json:"billPaymentDate"`
	MbRefNo         string    `gorm:"column:mb_ref_no;size:50" json:"mbrefno,omitempty"`
	EGramVoucherNo  string    `gorm:"column:egram_voucher_no;size:50" json:"eGramVoucher,omitempty"`
	GpmsVoucherNo   string    `gorm:"column:gpms_voucher_no;size:50" json:"gpmsVoucherNo,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentDetail) TableName() string { return "payment_details" }

// Deductions is the sum of itemized deductions excluding the security
// deposit.
func (p *PaymentDetail) Deductions() int64 {
	return p.IncomeTax + p.LabourWelfareCess + p.TdsCgst + p.TdsSgst
}
