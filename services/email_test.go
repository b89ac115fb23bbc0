package services

import (
	"morningful_landing_go/config"
	"morningful_landing_go/models"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplate(t *testing.T) {
	old := emailTemplates
	defer func() { emailTemplates = old }()
	emailTemplates = fstest.MapFS{
		"test_template.html": {Data: []byte("<p>Hello {{.UserName}}</p>")},
		"test_template.txt":  {Data: []byte("Hello {{.UserName}}")},
		"html_only.html":     {Data: []byte("<p>x</p>")},
	}

	type data struct {
		UserName string
	}

	t.Run("Renders both variants", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", data{UserName: "R&D <Team>"})
		assert.NoError(t, err)
		assert.Contains(t, html, "Hello R&amp;D &lt;Team&gt;")
		assert.Equal(t, "Hello R&D <Team>", text)
	})

	t.Run("Template not found", func(t *testing.T) {
		_, _, err := loadTemplate("non_existent", data{})
		assert.Error(t, err)
	})

	t.Run("Missing text variant", func(t *testing.T) {
		_, _, err := loadTemplate("html_only", data{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "html_only.txt")
	})
}

func TestBuildLeadConfirmationEmail(t *testing.T) {
	t.Run("Beta waitlist", func(t *testing.T) {
		email, err := BuildLeadConfirmationEmail(models.LeadBetaWaitlist, map[string]string{
			"firstName":    "Jane",
			"email":        "jane@acme.io",
			"businessName": "Acme",
		}, "https://morningful.ai")
		require.NoError(t, err)
		require.NotNil(t, email)
		assert.Equal(t, []string{"jane@acme.io"}, email.To)
		assert.Equal(t, "You're on the Morningful AI beta waitlist", email.Subject)
		assert.Contains(t, email.TextBody, "Hi Jane,")
		assert.Contains(t, email.TextBody, "reach out to Acme")
		assert.Contains(t, email.HTMLBody, "beta waitlist")
	})

	t.Run("Contact quotes the message", func(t *testing.T) {
		email, err := BuildLeadConfirmationEmail(models.LeadContact, map[string]string{
			"name":    "Al",
			"email":   "al@b.co",
			"message": "Tell me about pricing",
		}, "https://morningful.ai")
		require.NoError(t, err)
		require.NotNil(t, email)
		assert.Equal(t, "We received your message", email.Subject)
		assert.Contains(t, email.TextBody, "> Tell me about pricing")
	})

	t.Run("Demo request has no visitor email", func(t *testing.T) {
		email, err := BuildLeadConfirmationEmail(models.LeadDemoRequest, map[string]string{
			"firstName": "Jane",
		}, "")
		assert.NoError(t, err)
		assert.Nil(t, email)
	})
}

func TestBuildSalesNotificationEmail(t *testing.T) {
	email, err := BuildSalesNotificationEmail("sales@morningful.ai", models.LeadDemoRequest, "sess-1",
		[]string{"firstName", "lastName", "phoneNumber"},
		map[string]string{"firstName": "Jane", "lastName": "", "phoneNumber": "555-0100"})
	require.NoError(t, err)

	assert.Equal(t, []string{"sales@morningful.ai"}, email.To)
	assert.Equal(t, "[Morningful] New demo request", email.Subject)
	assert.Contains(t, email.TextBody, "firstName: Jane")
	assert.Contains(t, email.TextBody, "phoneNumber: 555-0100")
	assert.NotContains(t, email.TextBody, "lastName")
	assert.Contains(t, email.TextBody, "Session sess-1")
}

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: true,
	}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.NoError(t, err)
}

func TestSendEmail_NoApiKey(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "",
	}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY not configured")
}

func TestSendEmail_NoBody(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "key",
	}
	email := &Email{
		To:      []string{"test@example.com"},
		Subject: "Test",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email must have either HTMLBody or TextBody")
}

func TestTruncate(t *testing.T) {
	s := "Hello World"
	assert.Equal(t, "Hello", truncate(s, 5))
	assert.Equal(t, "Hello World", truncate(s, 20))
}
