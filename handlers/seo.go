package handlers

import "morningful_landing_go/models"

const (
	baseURL        = "https://morningful.ai"
	defaultOGImage = "https://morningful.ai/static/images/og-image.png"
)

// SEO configurations for public pages
var pageSEO = map[string]*models.SEO{
	"landing": {
		Title:       "Morningful AI - Master Your Company's Cash Flow",
		Description: "Morningful gives finance teams real-time visibility into cash flow across every bank account, with actionable insights for smarter, data-driven decisions.",
		Keywords:    "cash flow management, treasury software, finance team tools, multi-bank visibility, spend control",
		Canonical:   baseURL + "/",
		Image:       defaultOGImage,
		OGType:      "website",
		TwitterCard: "summary_large_image",
	},
	"privacy": {
		Title:       "Privacy Policy | Morningful AI",
		Description: "Read Morningful AI's privacy policy. Learn how we collect, use, and protect the information you share with us.",
		Keywords:    "privacy policy, data protection, personal information",
		Canonical:   baseURL + "/privacy",
		Image:       defaultOGImage,
		OGType:      "website",
		TwitterCard: "summary",
	},
	"terms": {
		Title:       "Terms of Service | Morningful AI",
		Description: "Review the terms and conditions governing your use of the Morningful AI website and beta program.",
		Keywords:    "terms of service, legal terms, user agreement",
		Canonical:   baseURL + "/terms",
		Image:       defaultOGImage,
		OGType:      "website",
		TwitterCard: "summary",
	},
}

// GetSEO returns the SEO configuration for a page
func GetSEO(page string) *models.SEO {
	if seo, ok := pageSEO[page]; ok {
		// Return a copy to avoid mutations
		copy := *seo
		return &copy
	}
	return nil
}
