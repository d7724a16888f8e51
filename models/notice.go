package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Citizen-facing notice published by the Gram Panchayat office.
type Notice struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	NoticeType  string    `gorm:"column:notice_type;size:30;not null;default:'general'" json:"noticeType"`
	PublishedAt time.Time `gorm:"column:published_at;not null" json:"publishedAt"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notice) TableName() string { return "notices" }

// Warish (inheritance) certificate application statuses.
const (
	WarishPending  = "pending"
	WarishApproved = "approved"
	WarishRejected = "rejected"
)

// WarishApplication is a citizen application for an inheritance
// certificate. CertificateNo is assigned on approval.
type WarishApplication struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ApplicantName string    `gorm:"column:applicant_name;size:150;not null" json:"applicantName"`
	DeceasedName  string    `gorm:"column:deceased_name;size:150;not null" json:"deceasedName"`
	DateOfDeath   time.Time `gorm:"column:date_of_death;not null" json:"dateOfDeath"`
	Relation      string    `gorm:"size:50;not null" json:"relation"`
	VillageName   string    `gorm:"column:village_name;size:100" json:"villageName,omitempty"`

	Status        string  `gorm:"size:12;not null;default:'pending';index" json:"status"`
	Remarks       string  `gorm:"type:text" json:"remarks,omitempty"`
	CertificateNo *string `gorm:"column:certificate_no;size:40;uniqueIndex" json:"certificateNo,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WarishApplication) TableName() string { return "warish_applications" }
