package partials

import (
	"bytes"
	"context"
	"testing"
	"time"

	"morningful_landing_go/models"
	"morningful_landing_go/services"
	"morningful_landing_go/services/guided"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestDefinitionsCoverEveryFormField(t *testing.T) {
	for _, flow := range []models.LeadType{models.LeadDemoRequest, models.LeadBetaWaitlist, models.LeadContact} {
		def, ok := Definition(flow)
		require.True(t, ok, flow)
		var names []string
		for _, f := range def.Fields {
			names = append(names, f.Name)
		}
		assert.ElementsMatch(t, services.FormFields(flow), names, flow)
	}
	_, ok := Definition(models.LeadChatbot)
	assert.False(t, ok)
}

func TestFormModalClosedRendersNothing(t *testing.T) {
	def, _ := Definition(models.LeadContact)
	assert.Empty(t, renderString(t, FormModal(def, guided.Snapshot{State: guided.StateClosed}, "")))
}

func TestFormModalEditingWithErrors(t *testing.T) {
	def, _ := Definition(models.LeadDemoRequest)
	snap := guided.Snapshot{
		State:  guided.StateEditing,
		Values: map[string]string{models.FieldFirstName: `Jane "JJ"`, models.FieldBusinessSize: models.BusinessSizeSmall},
		Errors: map[string]string{models.FieldLastName: "Last Name is required"},
	}
	out := renderString(t, FormModal(def, snap, "site-key"))

	assert.Contains(t, out, "Request a Demo")
	assert.Contains(t, out, `value="Jane &#34;JJ&#34;"`)
	assert.Contains(t, out, `placeholder="City, Country"`)
	assert.Contains(t, out, `<option value="small" selected>`)
	assert.Contains(t, out, `<p class="field-error" id="demo-lastName-error">Last Name is required</p>`)
	assert.Contains(t, out, `data-sitekey="site-key"`)
	assert.NotContains(t, out, submitErrorMessage)
}

func TestFormModalFailedAndSubmitting(t *testing.T) {
	def, _ := Definition(models.LeadContact)

	failed := renderString(t, FormModal(def, guided.Snapshot{State: guided.StateFailed, Values: map[string]string{models.FieldMessage: "Hi <there>"}}, ""))
	assert.Contains(t, failed, submitErrorMessage)
	assert.Contains(t, failed, "Hi &lt;there&gt;</textarea>")

	submitting := renderString(t, FormModal(def, guided.Snapshot{State: guided.StateSubmitting}, ""))
	assert.Contains(t, submitting, `<button type="submit" class="btn btn-primary" disabled>Submitting...</button>`)
}

func TestFormModalSuccessPollsStatus(t *testing.T) {
	def, _ := Definition(models.LeadContact)
	out := renderString(t, FormModal(def, guided.Snapshot{State: guided.StateSucceeded}, ""))
	assert.Contains(t, out, "Thank You!")
	assert.Contains(t, out, "We've received your message and will get back to you shortly.")
	assert.Contains(t, out, `hx-get="/forms/contact/status"`)
	assert.NotContains(t, out, "<form")
}

func TestChatWidget(t *testing.T) {
	assert.Contains(t, renderString(t, ChatWidget(services.ChatView{})), `hx-post="/chat/open"`)

	v := services.ChatView{
		Open:    true,
		Typing:  true,
		Waiting: true,
		Topics:  []string{"Feedback"},
		Messages: []services.ChatMessage{
			{ID: "1", Text: "Hello <friend>", IsBot: true, Time: time.Date(2026, 1, 1, 9, 5, 0, 0, time.UTC)},
		},
	}
	out := renderString(t, ChatWidget(v))
	assert.Contains(t, out, "Cash Flow Assistant")
	assert.Contains(t, out, "Hello &lt;friend&gt;")
	assert.Contains(t, out, "<time>09:05</time>")
	assert.Contains(t, out, "Assistant is typing")
	assert.Contains(t, out, `hx-get="/chat"`)
	assert.Contains(t, out, `>Feedback</button>`)
	assert.Contains(t, out, `placeholder="Type your response..." aria-label="Your message" disabled>`)

	done := renderString(t, ChatWidget(services.ChatView{Open: true, Complete: true}))
	assert.NotContains(t, done, `class="chat-input"`)
	assert.NotContains(t, done, `hx-get="/chat"`)
}
