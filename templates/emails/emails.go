// Package emails embeds the transactional email templates. Each email has
// an .html and a .txt variant sharing the same base name.
package emails

import "embed"

//go:embed *.html *.txt
var FS embed.FS
