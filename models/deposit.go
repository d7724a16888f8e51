package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deposit payment status and methods. The unpaid → paid transition is
// one-way and user-confirmed.
const (
	DepositUnpaid = "unpaid"
	DepositPaid   = "paid"

	PayMethodCheque = "CHEQUE"
	PayMethodOnline = "ONLINE_TRANSFER"
	PayMethodCash   = "CASH"
)

// Derived maturity categories, never stored.
const (
	DepositOverdue     = "overdue"
	DepositApproaching = "approaching"
	DepositActive      = "active"
)

// EarnestMoneyRegister tracks the EMD owed by a bidder for a work.
type EarnestMoneyRegister struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BidAgencyID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"bidAgencyId"`
	BidAgency     *BidAgency `gorm:"foreignKey:BidAgencyID" json:"bidAgency,omitempty"`
	WorksDetailID uuid.UUID  `gorm:"type:uuid;not null;index" json:"worksDetailId"`

	Amount        int64  `gorm:"not null" json:"amount"`
	PaymentStatus string `gorm:"column:payment_status;size:10;not null;default:'unpaid'" json:"paymentstatus"`
	// Set when the tender is cancelled or the EMD converts to a
	// security deposit on award.
	Released bool `gorm:"default:false" json:"released"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (EarnestMoneyRegister) TableName() string { return "earnest_money_registers" }

// SecurityDeposit is a retained deposit that must be returned to the
// contractor once its maturity date passes.
type SecurityDeposit struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorksDetailID uuid.UUID    `gorm:"type:uuid;not null;index" json:"worksDetailId"`
	Work          *WorksDetail `gorm:"foreignKey:WorksDetailID" json:"worksDetail,omitempty"`
	BidAgencyID   *uuid.UUID   `gorm:"type:uuid" json:"bidAgencyId,omitempty"`
	PaymentID     *uuid.UUID   `gorm:"type:uuid" json:"paymentDetailId,omitempty"`

	Amount       int64     `gorm:"not null" json:"amount"`
	MaturityDate time.Time `gorm:"column:maturity_date;not null;index" json:"maturityDate"`

	PaymentStatus string     `gorm:"column:payment_status;size:10;not null;default:'unpaid'" json:"paymentstatus"`
	PaymentMethod string     `gorm:"column:payment_method;size:20" json:"paymentMethod,omitempty"`
	ChequeNumber  string     `gorm:"column:cheque_number;size:30" json:"chequeNumber,omitempty"`
	ChequeDate    *time.Time `gorm:"column:cheque_date" json:"chequeDate,omitempty"`
	TransactionID string     `gorm:"column:transaction_id;size:50" json:"transactionId,omitempty"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paymentDate,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SecurityDeposit) TableName() string { return "security_deposits" }

// MaturityCategory buckets a deposit by how close its maturity date is
// to today: overdue when past, approaching within seven days, active
// otherwise. Day boundaries are evaluated in UTC.
func MaturityCategory(maturity, today time.Time) string {
	m := maturity.UTC().Truncate(24 * time.Hour)
	t := today.UTC().Truncate(24 * time.Hour)
	days := int(m.Sub(t).Hours() / 24)
	switch {
	case days < 0:
		return DepositOverdue
	case days <= 7:
		return DepositApproaching
	default:
		return DepositActive
	}
}
