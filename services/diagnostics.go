package services

import (
	"log"
	"morningful_landing_go/models"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Diagnostics persists the outcome of every lead submission. A nil
// Diagnostics or one without a database only logs.
type Diagnostics struct {
	db *gorm.DB
	wg sync.WaitGroup
}

func NewDiagnostics(db *gorm.DB) *Diagnostics {
	return &Diagnostics{db: db}
}

// RecordSubmission logs the attempt and stores it asynchronously
func (d *Diagnostics) RecordSubmission(leadType models.LeadType, sessionID string, ok bool, reason string, duration time.Duration) {
	outcome := models.SubmissionSucceeded
	if !ok {
		outcome = models.SubmissionFailed
		log.Printf("[WARNING] %s submission failed (session %s): %s", leadType, sessionID, reason)
	} else {
		log.Printf("[INFO] %s submission succeeded (session %s) in %s", leadType, sessionID, duration.Round(time.Millisecond))
	}

	if d == nil || d.db == nil {
		return
	}

	entry := models.SubmissionLog{
		LeadType:   string(leadType),
		SessionID:  sessionID,
		Outcome:    outcome,
		Reason:     reason,
		DurationMS: duration.Milliseconds(),
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.db.Create(&entry).Error; err != nil {
			log.Printf("[DIAGNOSTICS] Failed to store submission log: %v", err)
		}
	}()
}

// Wait blocks until pending writes have finished
func (d *Diagnostics) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

// RecentFailures returns the latest failed submissions, newest first
func (d *Diagnostics) RecentFailures(limit int) ([]models.SubmissionLog, error) {
	var logs []models.SubmissionLog
	if d == nil || d.db == nil {
		return logs, nil
	}
	err := d.db.Where("outcome = ?", models.SubmissionFailed).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
