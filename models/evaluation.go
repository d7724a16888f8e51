package models

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the contractor-credential half of a technical
// evaluation checklist.
type Credential struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HasPan          bool      `gorm:"column:has_pan" json:"hasPan"`
	HasGst          bool      `gorm:"column:has_gst" json:"hasGst"`
	HasTradeLicence bool      `gorm:"column:has_trade_licence" json:"hasTradeLicence"`
	HasPTax         bool      `gorm:"column:has_p_tax" json:"hasPTax"`
	HasIncomeTaxRet bool      `gorm:"column:has_income_tax_ret" json:"hasIncomeTaxReturn"`
	EmdPaid         bool      `gorm:"column:emd_paid" json:"emdPaid"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Credential) TableName() string { return "credentials" }

// ValidityOfDocument is the document-validity half of the checklist.
type ValidityOfDocument struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ValidPan      bool      `gorm:"column:valid_pan" json:"validPan"`
	ValidGst      bool      `gorm:"column:valid_gst" json:"validGst"`
	ValidTradeLic bool      `gorm:"column:valid_trade_lic" json:"validTradeLicence"`
	ValidPTax     bool      `gorm:"column:valid_p_tax" json:"validPTax"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ValidityOfDocument) TableName() string { return "validity_of_documents" }

// TechnicalEvaluationDocument links both checklist halves with the
// qualify verdict for one bid. One-to-one with BidAgency via the link
// column on bid_agencies.
type TechnicalEvaluationDocument struct {
	ID                   uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CredentialID         uuid.UUID           `gorm:"type:uuid;not null" json:"credentialId"`
	Credential           *Credential         `gorm:"foreignKey:CredentialID" json:"credential,omitempty"`
	ValidityOfDocumentID uuid.UUID           `gorm:"type:uuid;not null" json:"validityOfDocumentId"`
	ValidityOfDocument   *ValidityOfDocument `gorm:"foreignKey:ValidityOfDocumentID" json:"validityOfDocument,omitempty"`

	Qualify bool   `gorm:"not null" json:"qualify"`
	Remarks string `gorm:"type:text" json:"remarks,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (TechnicalEvaluationDocument) TableName() string { return "technical_evaluation_documents" }
