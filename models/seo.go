package models

import "strings"

// SiteName is the og:site_name of every page
const SiteName = "Morningful AI"

// SEO is the head metadata of a public page
type SEO struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	// Image is the absolute URL of the social preview image
	Image       string
	OGType      string
	TwitterCard string
	// SocialTitle and SocialDescription override Title/Description in og: and twitter: tags
	SocialTitle       string
	SocialDescription string
	NoIndex           bool
}

// NewSEO returns metadata for a plain website page
func NewSEO(title, description string) *SEO {
	return &SEO{
		Title:       title,
		Description: description,
		OGType:      "website",
		TwitterCard: "summary_large_image",
	}
}

// Hidden marks the page as not indexable
func (s *SEO) Hidden() *SEO {
	s.NoIndex = true
	return s
}

func (s *SEO) ShareTitle() string {
	if s.SocialTitle != "" {
		return s.SocialTitle
	}
	return s.Title
}

func (s *SEO) ShareDescription() string {
	if s.SocialDescription != "" {
		return s.SocialDescription
	}
	return s.Description
}

// Robots is the content of the robots meta tag
func (s *SEO) Robots() string {
	if s.NoIndex {
		return "noindex, nofollow"
	}
	return "index, follow"
}

// IsLargeCard reports whether twitter should show the large image card
func (s *SEO) IsLargeCard() bool {
	return s.Image != "" && strings.HasSuffix(s.TwitterCard, "large_image")
}
