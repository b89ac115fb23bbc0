package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission outcomes
const (
	SubmissionSucceeded = "succeeded"
	SubmissionFailed    = "failed"
)

// SubmissionLog is the diagnostics record of one lead submission attempt.
// Lead field values are not stored; only the outcome and the failure reason.
type SubmissionLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	LeadType   string `gorm:"not null;index" json:"lead_type"`
	SessionID  string `gorm:"index" json:"session_id"`
	Outcome    string `gorm:"not null;index" json:"outcome"`
	Reason     string `gorm:"type:text" json:"reason,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// BeforeCreate hook to generate UUID
func (s *SubmissionLog) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for SubmissionLog model
func (SubmissionLog) TableName() string {
	return "submission_logs"
}
