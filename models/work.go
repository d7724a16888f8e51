package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Work progress status, distinct from the tender lifecycle. Set to
// "workorder" when the award of contract is issued and to "billpaid"
// when the final bill is recorded.
const (
	WorkStatusTenderProcess = "yettostart"
	WorkStatusWorkOrder     = "workorder"
	WorkStatusBillPaid      = "billpaid"
	WorkStatusCancelled     = "cancelled"
)

// WorksDetail is a single work item tendered under a NIT.
type WorksDetail struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NitID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"nitId"`
	Nit      *NitDetails `gorm:"foreignKey:NitID" json:"nit,omitempty"`
	WorkSlNo int        `gorm:"column:work_sl_no;not null" json:"workslno"`

	ActivityDescription string `gorm:"column:activity_description;type:text;not null" json:"activityDescription"`
	ActivityCode        string `gorm:"column:activity_code;size:50" json:"activityCode,omitempty"`
	SchemeName          string `gorm:"column:scheme_name;size:150" json:"schemeName,omitempty"`

	FinalEstimateAmount int64 `gorm:"column:final_estimate_amount;not null" json:"finalEstimateAmount"`
	ParticipationFee    int64 `gorm:"column:participation_fee;not null" json:"participationFee"`
	EarnestMoneyAmount  int64 `gorm:"column:earnest_money_amount;not null" json:"earnestMoneyAmount"`

	TenderStatus TenderStatus `gorm:"column:tender_status;size:32;not null;default:'published';index" json:"tenderStatus"`
	WorkStatus   string       `gorm:"column:work_status;size:32;not null;default:'yettostart'" json:"workStatus"`

	AwardOfContractID *uuid.UUID       `gorm:"type:uuid;uniqueIndex" json:"awardofContractId,omitempty"`
	AwardOfContract   *AwardOfContract `gorm:"foreignKey:AwardOfContractID" json:"awardOfContract,omitempty"`

	BidAgencies []BidAgency     `gorm:"foreignKey:WorksDetailID" json:"bidAgencies,omitempty"`
	Payments    []PaymentDetail `gorm:"foreignKey:WorksDetailID" json:"payments,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorksDetail) TableName() string { return "works_details" }
