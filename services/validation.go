package services

import (
	"math"
	"morningful_landing_go/models"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minNameLength    = 2
	minMessageLength = 10
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRequired returns "<label> is required" when the trimmed value is empty
func ValidateRequired(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return label + " is required"
	}
	return ""
}

// ValidateName requires a trimmed value of at least two characters
func ValidateName(label, value string) string {
	if msg := ValidateRequired(label, value); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(strings.TrimSpace(value)) < minNameLength {
		return label + " must be at least 2 characters"
	}
	return ""
}

// ValidateEmail requires a local-part@domain.tld address without whitespace
func ValidateEmail(value string) string {
	if msg := ValidateRequired("Email", value); msg != "" {
		return msg
	}
	if !IsValidEmail(value) {
		return "Please enter a valid email address"
	}
	return ""
}

// IsValidEmail checks the trimmed value against the email pattern
func IsValidEmail(value string) bool {
	return emailRegex.MatchString(strings.TrimSpace(value))
}

// ValidateMessage requires a trimmed message of at least ten characters
func ValidateMessage(value string) string {
	if msg := ValidateRequired("Message", value); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(strings.TrimSpace(value)) < minMessageLength {
		return "Message must be at least 10 characters"
	}
	return ""
}

// ValidateBusinessSize requires one of the offered business sizes
func ValidateBusinessSize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Business size is required"
	}
	if !models.IsValidBusinessSize(value) {
		return "Please select a valid business size"
	}
	return ""
}

// ValidateExpectedBanks requires a finite number greater than zero
func ValidateExpectedBanks(value string) string {
	if msg := ValidateRequired("Expected banks", value); msg != "" {
		return msg
	}
	if _, ok := ParseExpectedBanks(value); !ok {
		return "Please enter a valid number greater than 0"
	}
	return ""
}

// ParseExpectedBanks parses the expected number of banks
func ParseExpectedBanks(value string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return 0, false
	}
	return n, true
}

// fieldErrors collects non-empty messages keyed by field
type fieldErrors map[string]string

func (e fieldErrors) check(field, msg string) {
	if msg != "" {
		e[field] = msg
	}
}

// ValidateDemoRequest validates the demo request form
func ValidateDemoRequest(values map[string]string) map[string]string {
	errs := fieldErrors{}
	errs.check(models.FieldFirstName, ValidateName("First name", values[models.FieldFirstName]))
	errs.check(models.FieldLastName, ValidateName("Last name", values[models.FieldLastName]))
	errs.check(models.FieldPhoneNumber, ValidateRequired("Phone number", values[models.FieldPhoneNumber]))
	errs.check(models.FieldBusinessName, ValidateRequired("Business name", values[models.FieldBusinessName]))
	errs.check(models.FieldBusinessLocation, ValidateRequired("Business location", values[models.FieldBusinessLocation]))
	errs.check(models.FieldBusinessSize, ValidateBusinessSize(values[models.FieldBusinessSize]))
	return errs
}

// ValidateBetaWaitlist validates the beta waitlist form
func ValidateBetaWaitlist(values map[string]string) map[string]string {
	errs := fieldErrors{}
	errs.check(models.FieldFirstName, ValidateName("First name", values[models.FieldFirstName]))
	errs.check(models.FieldLastName, ValidateName("Last name", values[models.FieldLastName]))
	errs.check(models.FieldEmail, ValidateEmail(values[models.FieldEmail]))
	errs.check(models.FieldBusinessName, ValidateRequired("Business name", values[models.FieldBusinessName]))
	errs.check(models.FieldBusinessLocation, ValidateRequired("Business location", values[models.FieldBusinessLocation]))
	errs.check(models.FieldBusinessSize, ValidateBusinessSize(values[models.FieldBusinessSize]))
	errs.check(models.FieldExpectedBanks, ValidateExpectedBanks(values[models.FieldExpectedBanks]))
	return errs
}

// ValidateContact validates the contact sales form
func ValidateContact(values map[string]string) map[string]string {
	errs := fieldErrors{}
	errs.check(models.FieldName, ValidateName("Name", values[models.FieldName]))
	errs.check(models.FieldEmail, ValidateEmail(values[models.FieldEmail]))
	errs.check(models.FieldMessage, ValidateMessage(values[models.FieldMessage]))
	return errs
}
