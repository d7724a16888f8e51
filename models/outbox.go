package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Follow-up task types queued after the award transaction commits.
const (
	TaskAgreement     = "agreement_number"
	TaskEmdConversion = "emd_conversion"
	TaskAwardEmail    = "award_email"

	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// FollowUpTask is an outbox row for the best-effort steps of award
// issuance. Tasks are keyed by (award, type) so re-enqueueing is
// idempotent, and each is retried independently of the committed core
// transition.
type FollowUpTask struct {
	ID                uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AwardOfContractID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_task_award_type" json:"awardOfContractId"`
	AwardOfContract   *AwardOfContract `gorm:"foreignKey:AwardOfContractID" json:"-"`
	TaskType          string           `gorm:"column:task_type;size:30;not null;uniqueIndex:idx_task_award_type" json:"taskType"`

	Payload datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"payload"`

	Status    string    `gorm:"size:12;not null;default:'pending';index" json:"status"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
	LastError string    `gorm:"column:last_error;type:text" json:"lastError,omitempty"`
	RunAfter  time.Time `gorm:"column:run_after;not null" json:"runAfter"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (FollowUpTask) TableName() string { return "follow_up_tasks" }

// AwardTaskPayload is the JSONB payload shared by all follow-up tasks.
type AwardTaskPayload struct {
	WorksDetailID uuid.UUID `json:"worksDetailId"`
	BidAgencyID   uuid.UUID `json:"bidAgencyId"`
	MemoNumber    int       `json:"memoNumber"`
	MemoYear      int       `json:"memoYear"`
	WorkSlNo      int       `json:"workslno"`
}
