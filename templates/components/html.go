package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup for a templ.ComponentFunc and keeps the first write
// error, so components can be written top to bottom and checked once.
type HTML struct {
	w   io.Writer
	err error
}

func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes trusted markup as is
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes escaped text
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Printf formats trusted markup. String arguments are escaped; wrap a value
// in Safe to write it unescaped.
func (h *HTML) Printf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			escaped[i] = templ.EscapeString(v)
		case Safe:
			escaped[i] = string(v)
		default:
			escaped[i] = a
		}
	}
	h.Raw(fmt.Sprintf(format, escaped...))
}

// Render writes a child component
func (h *HTML) Render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error met while writing
func (h *HTML) Err() error {
	return h.err
}

// Safe is markup that Printf must not escape
type Safe string

// Attr renders name="value" when cond holds, and nothing otherwise
func Attr(cond bool, name, value string) Safe {
	if !cond {
		return ""
	}
	return Safe(fmt.Sprintf(` %s="%s"`, name, templ.EscapeString(value)))
}

// BoolAttr renders a bare boolean attribute when cond holds
func BoolAttr(cond bool, name string) Safe {
	if !cond {
		return ""
	}
	return Safe(" " + name)
}
