package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup from a visitor-entered value before it is
// forwarded or rendered into an email. Entities escaped by the policy are
// decoded again so plain text such as "R&D" survives unchanged.
func SanitizeText(value string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(value)))
}

// SanitizeValues applies SanitizeText to every value of a form
func SanitizeValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = SanitizeText(v)
	}
	return out
}
