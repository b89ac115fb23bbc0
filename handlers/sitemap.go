package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// GetSitemapHandler generates the XML sitemap of the public pages
func GetSitemapHandler(c echo.Context) error {
	base := strings.TrimSuffix(getConfig(c).AppURL, "/")

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []SitemapURL{
			{Loc: base + "/", ChangeFreq: "weekly", Priority: 1.0},
			{Loc: base + "/privacy", ChangeFreq: "yearly", Priority: 0.5},
			{Loc: base + "/terms", ChangeFreq: "yearly", Priority: 0.5},
		},
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(c.Response())
	enc.Indent("", "  ")
	return enc.Encode(urlSet)
}

// GetRobotsHandler serves robots.txt pointing crawlers at the sitemap
func GetRobotsHandler(c echo.Context) error {
	base := strings.TrimSuffix(getConfig(c).AppURL, "/")
	body := "User-agent: *\nAllow: /\nDisallow: /forms/\nDisallow: /chat\nDisallow: /api/\n\nSitemap: " + base + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}
