package partials

import (
	"context"
	"fmt"
	"io"

	"morningful_landing_go/services/guided"
	"morningful_landing_go/templates/components"

	"github.com/a-h/templ"
)

// FormModal renders a lead modal for the controller snapshot. A closed
// snapshot renders nothing so the modal root is emptied.
func FormModal(def FormDefinition, snap guided.Snapshot, turnstileSiteKey string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		if !snap.IsOpen() {
			return nil
		}
		flow := string(def.Flow)

		h.Printf(`<div class="modal-backdrop" id="%s-modal" role="dialog" aria-modal="true" aria-labelledby="%s-title">`, flow, flow)
		h.Raw(`<div class="modal">`)
		h.Printf(`<div class="modal-header"><div><h2 id="%s-title">%s</h2><p>%s</p></div>`, flow, def.Title, def.Subtitle)
		h.Printf(`<button type="button" class="modal-close" aria-label="Close modal" hx-post="/forms/%s/close" hx-target="#modal-root">&times;</button></div>`, flow)

		if snap.State == guided.StateSucceeded {
			h.Render(ctx, formSuccess(def))
			h.Raw(`</div></div>`)
			return h.Err()
		}

		submitting := snap.State == guided.StateSubmitting
		h.Printf(`<form class="modal-body" aria-label="%s form" hx-post="/forms/%s/submit" hx-target="#modal-root" hx-disabled-elt="find button[type=submit]">`, def.Title, flow)
		if snap.State == guided.StateFailed {
			h.Printf(`<div class="alert alert-error" role="alert"><strong>Error:</strong> %s</div>`, submitErrorMessage)
		}
		for _, f := range def.Fields {
			h.Render(ctx, FormField(def, f, snap.Values[f.Name], snap.Errors[f.Name]))
		}
		if turnstileSiteKey != "" {
			h.Printf(`<div class="cf-turnstile" data-sitekey="%s"></div>`, turnstileSiteKey)
		}
		h.Raw(`<div class="modal-actions">`)
		h.Printf(`<button type="button" class="btn btn-outline" aria-label="Cancel and close modal" hx-post="/forms/%s/close" hx-target="#modal-root">Cancel</button>`, flow)
		label := def.SubmitLabel
		if submitting {
			label = "Submitting..."
		}
		h.Printf(`<button type="submit" class="btn btn-primary"%s>%s</button>`, components.BoolAttr(submitting, "disabled"), label)
		h.Raw(`</div></form></div></div>`)
		return h.Err()
	})
}

// formSuccess shows the thank-you copy and polls the status endpoint until
// the controller auto-closes.
func formSuccess(def FormDefinition) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<div class="modal-body success">`)
		h.Raw(`<div class="success-icon" aria-hidden="true">&#10003;</div>`)
		h.Printf(`<h3>Thank You!</h3><p>%s</p>`, def.SuccessMessage)
		h.Printf(`<div hx-get="/forms/%s/status" hx-trigger="load delay:1s" hx-target="#modal-root"></div>`, string(def.Flow))
		h.Raw(`</div>`)
		return h.Err()
	})
}

// FormField renders one labelled input with its inline error. Changes are
// sent to the field endpoint, which answers with this same partial.
func FormField(def FormDefinition, f FieldSpec, value, errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		flow := def.Flow
		id := inputID(flow, f.Name)
		invalid := errMsg != ""

		h.Printf(`<div class="field%s" id="%s-field">`, components.Safe(errorClass(invalid)), id)
		h.Printf(`<label for="%s">%s</label>`, id, f.Label)

		common := components.Safe(fmt.Sprintf(
			` id="%s" name="%s" hx-post="/forms/%s/field" hx-trigger="change" hx-target="closest .field" hx-swap="outerHTML" hx-vals='{"field":"%s"}'`,
			templ.EscapeString(id), templ.EscapeString(f.Name), templ.EscapeString(string(flow)), templ.EscapeString(f.Name),
		))
		described := components.Attr(invalid, "aria-describedby", id+"-error")
		ariaInvalid := components.Attr(invalid, "aria-invalid", "true")

		switch f.Type {
		case "select":
			h.Printf(`<select%s%s%s>`, common, described, ariaInvalid)
			h.Printf(`<option value=""%s>%s</option>`, components.BoolAttr(value == "", "selected"), f.Placeholder)
			for _, o := range f.Options {
				h.Printf(`<option value="%s"%s>%s</option>`, o.Value, components.BoolAttr(o.Value == value, "selected"), o.Label)
			}
			h.Raw(`</select>`)
		case "textarea":
			h.Printf(`<textarea rows="4" placeholder="%s"%s%s%s>%s</textarea>`, f.Placeholder, common, described, ariaInvalid, value)
		default:
			h.Printf(`<input type="%s" value="%s" placeholder="%s"%s%s%s>`, f.Type, value, f.Placeholder, common, described, ariaInvalid)
		}
		if invalid {
			h.Printf(`<p class="field-error" id="%s-error">%s</p>`, id, errMsg)
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}

func errorClass(invalid bool) string {
	if invalid {
		return " has-error"
	}
	return ""
}
