package services

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"log"
	"morningful_landing_go/config"
	"morningful_landing_go/models"
	"morningful_landing_go/templates/emails"
	"strings"
	texttemplate "text/template"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// emailTemplates is swapped in tests
var emailTemplates fs.FS = emails.FS

// loadTemplate renders templateName.html and templateName.txt with data
func loadTemplate(templateName string, data interface{}) (html string, text string, err error) {
	htmlSrc, err := fs.ReadFile(emailTemplates, templateName+".html")
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s.html: %v", templateName, err)
	}
	textSrc, err := fs.ReadFile(emailTemplates, templateName+".txt")
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s.txt: %v", templateName, err)
	}

	htmlTmpl, err := htmltemplate.New(templateName + ".html").Parse(string(htmlSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.html: %v", templateName, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %v", templateName, err)
	}

	// Plain text bodies must not be HTML-escaped
	textTmpl, err := texttemplate.New(templateName + ".txt").Parse(string(textSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.txt: %v", templateName, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %v", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

func buildEmail(templateName string, data interface{}, to ...string) (*Email, error) {
	htmlBody, textBody, err := loadTemplate(templateName, data)
	if err != nil {
		return nil, err
	}
	return &Email{
		To:       to,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("✅ Email logged successfully (development mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email in a goroutine so lead hooks never block on the provider
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// LeadConfirmationEmailData contains data for the lead confirmation template
type LeadConfirmationEmailData struct {
	Name         string
	LeadType     string
	BusinessName string
	Message      string
	AppURL       string
}

// BuildLeadConfirmationEmail thanks a visitor for a beta waitlist or contact
// request. Flows that do not collect an email address return nil.
func BuildLeadConfirmationEmail(leadType models.LeadType, values map[string]string, appURL string) (*Email, error) {
	to := values[models.FieldEmail]
	if to == "" {
		return nil, nil
	}

	data := LeadConfirmationEmailData{
		LeadType:     string(leadType),
		BusinessName: values[models.FieldBusinessName],
		AppURL:       appURL,
	}
	var subject string
	switch leadType {
	case models.LeadBetaWaitlist:
		data.Name = values[models.FieldFirstName]
		subject = "You're on the Morningful AI beta waitlist"
	case models.LeadContact:
		data.Name = values[models.FieldName]
		data.Message = values[models.FieldMessage]
		subject = "We received your message"
	default:
		return nil, nil
	}

	email, err := buildEmail("lead_confirmation", data, to)
	if err != nil {
		return nil, err
	}
	email.Subject = subject
	return email, nil
}

// SalesNotificationField is one labelled row of the sales notification
type SalesNotificationField struct {
	Label string
	Value string
}

// SalesNotificationEmailData contains data for the sales notification template
type SalesNotificationEmailData struct {
	Label     string
	SessionID string
	Fields    []SalesNotificationField
}

var leadTypeLabels = map[models.LeadType]string{
	models.LeadDemoRequest:  "demo request",
	models.LeadBetaWaitlist: "beta waitlist signup",
	models.LeadContact:      "contact sales request",
	models.LeadChatbot:      "chatbot conversation",
}

// BuildSalesNotificationEmail summarises a submitted lead for the sales inbox.
// Rows follow the order of fields; empty values are skipped.
func BuildSalesNotificationEmail(salesEmail string, leadType models.LeadType, sessionID string, fields []string, values map[string]string) (*Email, error) {
	data := SalesNotificationEmailData{
		Label:     leadTypeLabels[leadType],
		SessionID: sessionID,
	}
	for _, f := range fields {
		if v := values[f]; v != "" {
			data.Fields = append(data.Fields, SalesNotificationField{Label: f, Value: v})
		}
	}

	email, err := buildEmail("sales_notification", data, salesEmail)
	if err != nil {
		return nil, err
	}
	email.Subject = "[Morningful] New " + data.Label
	return email, nil
}
