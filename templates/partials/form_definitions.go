package partials

import "morningful_landing_go/models"

// FieldSpec describes how one form field is rendered
type FieldSpec struct {
	Name        string
	Label       string
	Type        string // text, email, tel, number, select, textarea
	Placeholder string
	Options     []models.Option
}

// FormDefinition is the copy and field layout of one lead modal
type FormDefinition struct {
	Flow           models.LeadType
	Title          string
	Subtitle       string
	SubmitLabel    string
	SuccessMessage string
	Fields         []FieldSpec
}

var (
	firstNameField = FieldSpec{Name: models.FieldFirstName, Label: "First Name *", Type: "text", Placeholder: "Enter your first name"}
	lastNameField  = FieldSpec{Name: models.FieldLastName, Label: "Last Name *", Type: "text", Placeholder: "Enter your last name"}
	businessFields = []FieldSpec{
		{Name: models.FieldBusinessName, Label: "Business Name *", Type: "text", Placeholder: "Enter your business name"},
		{Name: models.FieldBusinessLocation, Label: "Business Location *", Type: "text", Placeholder: "City, Country"},
		{Name: models.FieldBusinessSize, Label: "Business Size *", Type: "select", Placeholder: "Select business size", Options: models.BusinessSizeOptions},
	}
)

var formDefinitions = map[models.LeadType]FormDefinition{
	models.LeadDemoRequest: {
		Flow:           models.LeadDemoRequest,
		Title:          "Request a Demo",
		Subtitle:       "See how our platform can transform your financial operations",
		SubmitLabel:    "Request Demo",
		SuccessMessage: "We've received your request and will be in touch shortly to schedule your demo.",
		Fields: append([]FieldSpec{
			firstNameField,
			lastNameField,
			{Name: models.FieldPhoneNumber, Label: "Phone Number *", Type: "tel", Placeholder: "Enter your phone number"},
		}, businessFields...),
	},
	models.LeadBetaWaitlist: {
		Flow:           models.LeadBetaWaitlist,
		Title:          "Join the Beta Waitlist",
		Subtitle:       "Be among the first finance teams to master their cash flow with Morningful",
		SubmitLabel:    "Join Waitlist",
		SuccessMessage: "You're on the list! We'll email you as soon as your beta access is ready.",
		Fields: append(append([]FieldSpec{
			firstNameField,
			lastNameField,
			{Name: models.FieldEmail, Label: "Work Email *", Type: "email", Placeholder: "Enter your email address"},
		}, businessFields...),
			FieldSpec{Name: models.FieldExpectedBanks, Label: "Number of Bank Accounts *", Type: "number", Placeholder: "e.g. 3"},
		),
	},
	models.LeadContact: {
		Flow:           models.LeadContact,
		Title:          "Contact Our Team",
		Subtitle:       "Get in touch with us and we'll respond as soon as possible",
		SubmitLabel:    "Send Message",
		SuccessMessage: "We've received your message and will get back to you shortly.",
		Fields: []FieldSpec{
			{Name: models.FieldName, Label: "Name *", Type: "text", Placeholder: "Enter your full name"},
			{Name: models.FieldEmail, Label: "Email *", Type: "email", Placeholder: "Enter your email address"},
			{Name: models.FieldMessage, Label: "Message *", Type: "textarea", Placeholder: "Tell us how we can help you..."},
		},
	},
}

// Definition returns the modal definition of a flow
func Definition(flow models.LeadType) (FormDefinition, bool) {
	def, ok := formDefinitions[flow]
	return def, ok
}

// Field returns the spec of one field of the modal
func (d FormDefinition) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
