package pages

import (
	"context"
	"io"

	"morningful_landing_go/templates/components"
	"morningful_landing_go/templates/layouts"

	"github.com/a-h/templ"
)

type legalSection struct {
	heading string
	body    string
}

func legalPage(page layouts.Page, title, updated string, sections []legalSection) templ.Component {
	return layouts.Base(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Printf(`<article class="container legal"><h1>%s</h1><p class="muted">Last updated: %s</p>`, title, updated)
		for _, s := range sections {
			h.Printf(`<h2>%s</h2><p>%s</p>`, s.heading, s.body)
		}
		h.Raw(`</article>`)
		return h.Err()
	}))
}

// Privacy renders the privacy policy
func Privacy(page layouts.Page) templ.Component {
	return legalPage(page, "Privacy Policy", "January 2025", []legalSection{
		{"Information We Collect", "When you request a demo, join the beta waitlist, contact sales or talk to our assistant we collect the details you enter: your name, email address, phone number, business name, location and size, and the answers you give."},
		{"How We Use It", "We use this information to respond to your request, schedule demos, manage the beta waitlist and improve our product. We do not sell your personal information."},
		{"Analytics", "We record anonymous usage events such as page views, button clicks and scroll depth to understand how the site is used. A first-party cookie identifies your browser session."},
		{"Data Retention", "Form state lives only for the duration of your visit. Requests you submit are forwarded to our team and retained as long as needed to serve you."},
		{"Contact", "Questions about this policy can be sent to hello@morningful.ai."},
	})
}

// Terms renders the terms of service
func Terms(page layouts.Page) templ.Component {
	return legalPage(page, "Terms of Service", "January 2025", []legalSection{
		{"Acceptance", "By using this website you agree to these terms."},
		{"Use of the Site", "You agree to provide accurate information in any form you submit and not to misuse the site or attempt to disrupt its operation."},
		{"Beta Program", "Joining the beta waitlist does not guarantee access. Beta features are provided as is and may change without notice."},
		{"Limitation of Liability", "Morningful AI is not liable for any indirect or consequential loss arising from use of this website."},
		{"Changes", "We may update these terms from time to time. Continued use of the site means you accept the revised terms."},
	})
}
