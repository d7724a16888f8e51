package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgencyDetails is a bidding entity (contractor or supplier). Identity
// fields are immutable once the agency has participated in a tender.
type AgencyDetails struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string    `gorm:"size:150;uniqueIndex;not null" json:"name"`
	AgencyType     string    `gorm:"column:agency_type;size:30;not null;default:'INDIVIDUAL'" json:"agencyType"`
	ProprietorName string    `gorm:"column:proprietor_name;size:150" json:"proprietorName,omitempty"`
	ContactDetails string    `gorm:"column:contact_details;size:200" json:"contactDetails,omitempty"`
	Mobile         string    `gorm:"size:15" json:"mobileNumber,omitempty"`
	Email          string    `gorm:"size:100" json:"email,omitempty"`
	Pan            string    `gorm:"size:20" json:"pan,omitempty"`
	Gst            string    `gorm:"size:20" json:"gst,omitempty"`
	Tin            string    `gorm:"size:20" json:"tin,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AgencyDetails) TableName() string { return "agency_details" }

// BidAgency joins an agency to a work it bids on. The (agency, work)
// pair is unique so two racing registrations cannot both insert.
type BidAgency struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AgencyDetailsID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_bid_agency_work" json:"agencyDetailsId"`
	Agency          *AgencyDetails `gorm:"foreignKey:AgencyDetailsID" json:"agencyDetails,omitempty"`
	WorksDetailID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_bid_agency_work;index" json:"worksDetailId"`
	Work            *WorksDetail   `gorm:"foreignKey:WorksDetailID" json:"worksDetail,omitempty"`

	// Nil until the financial bid is recorded.
	BiddingAmount *int64 `gorm:"column:bidding_amount" json:"biddingAmount,omitempty"`

	TechnicalEvaluationDocumentID *uuid.UUID                   `gorm:"type:uuid;uniqueIndex" json:"technicalEvelutiondocumentId,omitempty"`
	TechnicalEvaluationDocument   *TechnicalEvaluationDocument `gorm:"foreignKey:TechnicalEvaluationDocumentID" json:"technicalEvaluationDocument,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (BidAgency) TableName() string { return "bid_agencies" }

// Evaluated reports whether a technical evaluation document is linked.
func (b *BidAgency) Evaluated() bool {
	return b.TechnicalEvaluationDocumentID != nil
}
