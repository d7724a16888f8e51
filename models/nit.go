package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NitDetails is a Notice Inviting Tender. The memo number is unique
// within the calendar year of the memo date (enforced by an expression
// index, see config migrations).
type NitDetails struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MemoNumber         int       `gorm:"column:memo_number;not null" json:"memoNumber"`
	MemoDate           time.Time `gorm:"column:memo_date;not null" json:"memoDate"`
	PublishingDate     time.Time `gorm:"column:publishing_date;not null" json:"publishingDate"`
	DocumentDownloadTo time.Time `gorm:"column:document_download_to" json:"documentDownloadTo"`
	BidSubmissionEnd   time.Time `gorm:"column:bid_submission_end" json:"bidSubmissionEnd"`
	TechnicalBidOpen   time.Time `gorm:"column:technical_bid_open" json:"technicalBidOpeningDate"`
	PublishingPlace    string    `gorm:"column:publishing_place;size:150;not null" json:"publishingPlace"`
	BidValidityDays    int       `gorm:"column:bid_validity_days;not null;default:90" json:"bidValidityDays"`
	IsSupply           bool      `gorm:"column:is_supply;default:false" json:"isSupply"`
	IsPublished        bool      `gorm:"column:is_published;default:false" json:"isPublished"`

	Works []WorksDetail `gorm:"foreignKey:NitID" json:"works,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (NitDetails) TableName() string { return "nit_details" }

// MemoYear is the calendar year the memo number is scoped to.
func (n *NitDetails) MemoYear() int {
	return n.MemoDate.UTC().Year()
}
