package partials

import (
	"time"

	"morningful_landing_go/models"
)

// submitErrorMessage is shown for every failed submission, whatever the cause
const submitErrorMessage = "There was an error submitting your request. Please try again."

func inputID(flow models.LeadType, field string) string {
	return string(flow) + "-" + field
}

// formatMessageTime formats a chat timestamp as hours and minutes
func formatMessageTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}
