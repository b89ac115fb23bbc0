package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicPages(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		path    string
		handler echo.HandlerFunc
		expect  []string
	}{
		{"Landing", "/", LandingHandler, []string{"Morningful AI - Master Your Company&#39;s Cash Flow", "Gain Financial Clarity"}},
		{"Privacy", "/privacy", PrivacyHandler, []string{"Privacy Policy | Morningful AI", "<h1>Privacy Policy</h1>"}},
		{"Terms", "/terms", TermsHandler, []string{"Terms of Service | Morningful AI", "<h1>Terms of Service</h1>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := env.request(http.MethodGet, tt.path, nil, false)
			require.NoError(t, env.serve(c, tt.handler))
			assert.Equal(t, http.StatusOK, rec.Code)
			for _, s := range tt.expect {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
	assert.Equal(t, []string{"page_view", "page_view", "page_view"}, env.events())
}

func TestGetSEOReturnsCopy(t *testing.T) {
	seo := GetSEO("landing")
	require.NotNil(t, seo)
	seo.Title = "changed"
	assert.NotEqual(t, "changed", GetSEO("landing").Title)
	assert.Nil(t, GetSEO("dashboard"))
}

func TestSitemapAndRobots(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.request(http.MethodGet, "/sitemap.xml", nil, false)
	require.NoError(t, env.serve(c, GetSitemapHandler))
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rec.Body.String(), "<loc>https://morningful.ai/</loc>")
	assert.Contains(t, rec.Body.String(), "<loc>https://morningful.ai/terms</loc>")

	c, rec = env.request(http.MethodGet, "/robots.txt", nil, false)
	require.NoError(t, env.serve(c, GetRobotsHandler))
	assert.Contains(t, rec.Body.String(), "Sitemap: https://morningful.ai/sitemap.xml")
	assert.Contains(t, rec.Body.String(), "Disallow: /forms/")
}

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.request(http.MethodGet, "/healthz", nil, false)
	require.NoError(t, env.serve(c, HealthHandler))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"recent_failures":0`)
}
