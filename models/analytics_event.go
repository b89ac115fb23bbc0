package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsEvent is a locally recorded analytics event
type AnalyticsEvent struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Name     string `gorm:"not null;index" json:"name"`
	ClientID string `gorm:"index" json:"client_id"`
	Country  string `json:"country,omitempty"`
	Params   string `gorm:"type:text" json:"params"` // JSON-encoded parameter record
}

// BeforeCreate hook to generate UUID
func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for AnalyticsEvent model
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
