package layouts

import (
	"context"
	"io"

	"morningful_landing_go/middleware"
	"morningful_landing_go/models"
	"morningful_landing_go/templates/components"

	"github.com/a-h/templ"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Page carries what every full page needs around its body
type Page struct {
	SEO              *models.SEO
	CSRFToken        string
	TurnstileSiteKey string
	// Modal is pre-rendered into the modal root, for visitors without htmx
	Modal templ.Component
}

// Base renders the HTML document shell: SEO tags, assets, the htmx runtime
// and the modal/chatbot mount points shared by every page.
func Base(page Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		nonce := middleware.GetNonce(ctx)
		seo := page.SEO
		if seo == nil {
			seo = models.NewSEO(models.SiteName, "")
		}

		h.Raw(`<!DOCTYPE html><html lang="en"><head>`)
		h.Raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Printf(`<title>%s</title>`, seo.Title)
		if seo.Description != "" {
			h.Printf(`<meta name="description" content="%s">`, seo.Description)
		}
		if seo.Keywords != "" {
			h.Printf(`<meta name="keywords" content="%s">`, seo.Keywords)
		}
		h.Printf(`<meta name="robots" content="%s">`, seo.Robots())
		if seo.Canonical != "" {
			h.Printf(`<link rel="canonical" href="%s">`, seo.Canonical)
			h.Printf(`<meta property="og:url" content="%s">`, seo.Canonical)
		}
		h.Printf(`<meta property="og:site_name" content="%s">`, models.SiteName)
		h.Printf(`<meta property="og:title" content="%s">`, seo.ShareTitle())
		h.Printf(`<meta property="og:description" content="%s">`, seo.ShareDescription())
		h.Printf(`<meta property="og:type" content="%s">`, seo.OGType)
		card := "summary"
		if seo.Image != "" {
			h.Printf(`<meta property="og:image" content="%s">`, seo.Image)
			h.Printf(`<meta name="twitter:image" content="%s">`, seo.Image)
			if seo.IsLargeCard() {
				card = seo.TwitterCard
			}
		}
		h.Printf(`<meta name="twitter:card" content="%s">`, card)
		h.Printf(`<meta name="twitter:title" content="%s">`, seo.ShareTitle())
		h.Printf(`<meta name="twitter:description" content="%s">`, seo.ShareDescription())

		h.Printf(`<link rel="icon" type="image/svg+xml" href="%s">`, middleware.AssetURL(ctx, middleware.AssetFavicon))
		h.Printf(`<link rel="stylesheet" href="%s">`, middleware.AssetURL(ctx, middleware.AssetCSS))
		h.Printf(`<script nonce="%s" src="%s"></script>`, nonce, htmxSrc)
		if page.TurnstileSiteKey != "" {
			h.Printf(`<script nonce="%s" src="https://challenges.cloudflare.com/turnstile/v0/api.js" async defer></script>`, nonce)
		}
		h.Printf(`<script nonce="%s" src="%s" defer></script>`, nonce, middleware.AssetURL(ctx, middleware.AssetAppJS))
		h.Raw(`</head>`)

		h.Printf(`<body hx-headers="%s">`, components.JSON(map[string]string{"X-CSRF-Token": page.CSRFToken}))
		h.Render(ctx, header())
		h.Raw(`<main>`)
		h.Render(ctx, body)
		h.Raw(`</main>`)
		h.Render(ctx, footer())
		h.Raw(`<div id="modal-root">`)
		h.Render(ctx, page.Modal)
		h.Raw(`</div>`)
		h.Raw(`</body></html>`)
		return h.Err()
	})
}

func header() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<header class="site-header"><nav class="container nav">`)
		h.Raw(`<a href="/" class="brand" data-nav="logo">Morningful<span>AI</span></a>`)
		h.Raw(`<ul class="nav-links">`)
		for _, item := range []struct{ href, label string }{
			{"/#features", "Features"},
			{"/#solutions", "Solutions"},
			{"/#testimonials", "Testimonials"},
		} {
			h.Printf(`<li><a href="%s" data-nav="%s">%s</a></li>`, item.href, item.label, item.label)
		}
		h.Raw(`</ul>`)
		h.Raw(`<button class="btn btn-primary" hx-get="/forms/demo" hx-target="#modal-root" data-cta="Request Demo" data-section="header">Request Demo</button>`)
		h.Raw(`</nav></header>`)
		return h.Err()
	})
}

func footer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<footer class="site-footer"><div class="container footer-grid">`)
		h.Raw(`<p class="brand">Morningful<span>AI</span></p>`)
		h.Raw(`<ul class="footer-links">`)
		h.Raw(`<li><a href="/privacy" data-nav="Privacy Policy">Privacy Policy</a></li>`)
		h.Raw(`<li><a href="/terms" data-nav="Terms of Service">Terms of Service</a></li>`)
		h.Raw(`<li><button class="link" hx-get="/forms/contact" hx-target="#modal-root" data-cta="Contact Sales" data-section="footer">Contact Sales</button></li>`)
		h.Raw(`</ul>`)
		h.Raw(`<p class="copyright">&copy; Morningful AI. All rights reserved.</p>`)
		h.Raw(`</div></footer>`)
		return h.Err()
	})
}
