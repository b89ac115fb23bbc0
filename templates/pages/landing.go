package pages

import (
	"context"
	"io"

	"morningful_landing_go/templates/components"
	"morningful_landing_go/templates/layouts"
	"morningful_landing_go/templates/partials"

	"github.com/a-h/templ"
)

// Landing renders the marketing page. Every CTA loads its modal into
// #modal-root; the chatbot launcher loads the widget into #chatbot-root.
func Landing(vm LandingViewModel) templ.Component {
	return layouts.Base(vm.Page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)

		h.Raw(`<section class="hero" data-section="hero_section"><div class="container hero-grid"><div class="hero-content">`)
		h.Raw(`<span class="badge">Built for Modern Finance Teams</span>`)
		h.Raw(`<h1>Master Your <span class="accent">Company's Cash Flow</span></h1>`)
		h.Raw(`<p class="lead">Our intelligent money management app gives finance teams real-time visibility into their cash flow, empowering smarter, data-driven decisions for all operations.</p>`)
		h.Raw(`<div class="actions">`)
		h.Raw(`<button class="btn btn-primary btn-lg" hx-get="/forms/beta" hx-target="#modal-root" data-cta="Join Beta Waitlist" data-section="hero_section">Join Beta Waitlist</button>`)
		h.Raw(`<a class="btn btn-outline btn-lg" href="#features" data-cta="Learn More" data-section="hero_section">Learn More</a>`)
		h.Raw(`</div></div></div></section>`)

		h.Raw(`<section id="features" class="features"><div class="container">`)
		h.Raw(`<h2>Your Financial <span class="accent">Command Center</span></h2>`)
		h.Raw(`<p class="section-lead">A comprehensive toolset designed to give finance teams complete control and clarity over their company's financial health.</p>`)
		h.Raw(`<div class="grid grid-3">`)
		for _, f := range vm.Features {
			h.Printf(`<article class="card feature" data-feature="%s">`, f.Slug)
			h.Printf(`<h3>%s</h3><ul class="checks">`, f.Title)
			for _, b := range f.Bullets {
				h.Printf(`<li>%s</li>`, b)
			}
			h.Raw(`</ul></article>`)
		}
		h.Raw(`</div></div></section>`)

		h.Raw(`<section id="solutions" class="solutions"><div class="container">`)
		for _, s := range vm.Solutions {
			h.Printf(`<article class="solution"><h3>%s</h3><p>%s</p><ul class="checks">`, s.Title, s.Description)
			for _, b := range s.Bullets {
				h.Printf(`<li>%s</li>`, b)
			}
			h.Raw(`</ul>`)
			h.Raw(`<button class="btn btn-outline" hx-get="/forms/demo" hx-target="#modal-root" data-cta="Request Demo" data-section="solutions_section">Request Demo</button>`)
			h.Raw(`</article>`)
		}
		h.Raw(`</div></section>`)

		h.Raw(`<section class="stats"><div class="container grid grid-4">`)
		for _, s := range vm.Stats {
			h.Printf(`<div class="stat"><strong>%s</strong><span>%s</span></div>`, s.Value, s.Label)
		}
		h.Raw(`</div></section>`)

		h.Raw(`<section id="testimonials" class="testimonials" data-feature="testimonials"><div class="container">`)
		h.Raw(`<h2>Trusted by Forward-Thinking <span class="accent">CFOs</span></h2>`)
		h.Raw(`<p class="section-lead">Hear from finance leaders who have transformed their operations with our platform.</p>`)
		h.Raw(`<div class="grid grid-2">`)
		for _, t := range vm.Testimonials {
			h.Printf(`<figure class="card testimonial"><blockquote>%s</blockquote><figcaption><strong>%s</strong> %s, %s</figcaption></figure>`,
				t.Quote, t.Name, t.Role, t.Company)
		}
		h.Raw(`</div></div></section>`)

		h.Raw(`<section class="cta" data-section="cta_section"><div class="container">`)
		h.Raw(`<h2>Gain Financial Clarity <span class="accent">Today</span></h2>`)
		h.Raw(`<p class="section-lead">Stop guessing. Start knowing. See how our platform can give your finance team the visibility and control it needs to drive growth.</p>`)
		h.Raw(`<div class="actions">`)
		h.Raw(`<button class="btn btn-primary btn-lg" hx-get="/forms/beta" hx-target="#modal-root" data-cta="Join Beta Waitlist" data-section="cta_section">Join Beta Waitlist</button>`)
		h.Raw(`<button class="btn btn-outline btn-lg" hx-get="/forms/contact" hx-target="#modal-root" data-cta="Contact Sales" data-section="cta_section">Contact Sales</button>`)
		h.Raw(`</div></div></section>`)

		h.Raw(`<div id="chatbot-root">`)
		h.Render(ctx, partials.ChatLauncher())
		h.Raw(`</div>`)
		return h.Err()
	}))
}
