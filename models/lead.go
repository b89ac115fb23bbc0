package models

// LeadType identifies a lead-capture flow
type LeadType string

const (
	LeadDemoRequest  LeadType = "demo"
	LeadBetaWaitlist LeadType = "beta"
	LeadContact      LeadType = "contact"
	LeadChatbot      LeadType = "chatbot"
)

// Form field names, shared by the HTML forms and the JSON payloads
const (
	FieldFirstName        = "firstName"
	FieldLastName         = "lastName"
	FieldName             = "name"
	FieldEmail            = "email"
	FieldPhoneNumber      = "phoneNumber"
	FieldBusinessName     = "businessName"
	FieldBusinessLocation = "businessLocation"
	FieldBusinessSize     = "businessSize"
	FieldExpectedBanks    = "expectedBanks"
	FieldMessage          = "message"
	FieldTopic            = "topic"
)

// Business sizes
const (
	BusinessSizeStartup    = "startup"
	BusinessSizeSmall      = "small"
	BusinessSizeMedium     = "medium"
	BusinessSizeLarge      = "large"
	BusinessSizeEnterprise = "enterprise"
)

// Option is a select option rendered in the lead forms
type Option struct {
	Value string
	Label string
}

// BusinessSizeOptions lists the business sizes offered in the forms, in display order
var BusinessSizeOptions = []Option{
	{Value: BusinessSizeStartup, Label: "Startup (1-10 employees)"},
	{Value: BusinessSizeSmall, Label: "Small (11-50 employees)"},
	{Value: BusinessSizeMedium, Label: "Medium (51-200 employees)"},
	{Value: BusinessSizeLarge, Label: "Large (201-1000 employees)"},
	{Value: BusinessSizeEnterprise, Label: "Enterprise (1000+ employees)"},
}

// IsValidBusinessSize checks if the business size is one of the offered options
func IsValidBusinessSize(size string) bool {
	for _, o := range BusinessSizeOptions {
		if o.Value == size {
			return true
		}
	}
	return false
}

// ParseFormLeadType resolves a modal flow name from a URL segment.
// The chatbot is not a modal flow and is rejected here.
func ParseFormLeadType(s string) (LeadType, bool) {
	switch LeadType(s) {
	case LeadDemoRequest, LeadBetaWaitlist, LeadContact:
		return LeadType(s), true
	}
	return "", false
}

// DemoRequest is the payload of POST /api/BusinessContact
type DemoRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	PhoneNumber      string `json:"phoneNumber"`
	BusinessName     string `json:"businessName"`
	BusinessLocation string `json:"businessLocation"`
	BusinessSize     string `json:"businessSize"`
}

// BetaWaitlistRequest is the payload of POST /api/BusinessContact/join-beta-waitlist
type BetaWaitlistRequest struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	BusinessName     string  `json:"businessName"`
	BusinessLocation string  `json:"businessLocation"`
	BusinessSize     string  `json:"businessSize"`
	ExpectedBanks    float64 `json:"expectedBanks"`
}

// ContactRequest is the payload of POST /api/BusinessContact/contact-sales
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ChatbotRequest is the payload of POST /api/BusinessContact/chatbot-request.
// Keys follow the backend's PascalCase convention.
type ChatbotRequest struct {
	ChosenTopic string  `json:"ChosenTopic"`
	Question1   string  `json:"Question1"`
	Question2   string  `json:"Question2"`
	Question3   string  `json:"Question3"`
	Question4   *string `json:"Question4"`
	Answer1     string  `json:"Answer1"`
	Answer2     string  `json:"Answer2"`
	Answer3     string  `json:"Answer3"`
	Answer4     *string `json:"Answer4"`
}
