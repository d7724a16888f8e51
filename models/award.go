package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AwardOfContract is the award record for a work. A work holds at most
// one (unique index on works_details.award_of_contract_id).
type AwardOfContract struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MemoNumber int       `gorm:"column:memo_number;not null" json:"memoNumber"`
	MemoDate   time.Time `gorm:"column:memo_date;not null" json:"memoDate"`

	WorkOrderDetails *WorkOrderDetails `gorm:"foreignKey:AwardOfContractID" json:"workOrderDetails,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AwardOfContract) TableName() string { return "award_of_contracts" }

// WorkOrderDetails links an award of contract to its winning bid.
type WorkOrderDetails struct {
	ID                uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AwardOfContractID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"awardOfContractId"`
	AwardOfContract   *AwardOfContract `gorm:"foreignKey:AwardOfContractID" json:"awardOfContract,omitempty"`
	BidAgencyID       uuid.UUID        `gorm:"type:uuid;not null" json:"bidAgencyId"`
	BidAgency         *BidAgency       `gorm:"foreignKey:BidAgencyID" json:"bidAgency,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (WorkOrderDetails) TableName() string { return "work_order_details" }

// AgreementCertificate is created as a best-effort follow-up once the
// award transaction has committed.
type AgreementCertificate struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AwardOfContractID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"awardOfContractId"`
	AgreementNumber   string    `gorm:"column:agreement_number;size:50;uniqueIndex;not null" json:"agreementNumber"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (AgreementCertificate) TableName() string { return "agreement_certificates" }

// AgreementNumber derives the agreement number for an award:
// AGR-<year>-<memo zero-padded to 4>/<work serial>.
func AgreementNumber(year, memoNumber, workSlNo int) string {
	return fmt.Sprintf("AGR-%d-%04d/%d", year, memoNumber, workSlNo)
}
