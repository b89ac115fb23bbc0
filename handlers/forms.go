package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"morningful_landing_go/middleware"
	"morningful_landing_go/models"
	"morningful_landing_go/services"
	"morningful_landing_go/services/guided"
	"morningful_landing_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// maxPatchBytes bounds the body of a JSON Patch request
const maxPatchBytes = 64 << 10

// formSnapshotResponse is the JSON view of a form controller
type formSnapshotResponse struct {
	Flow   string            `json:"flow"`
	State  guided.State      `json:"state"`
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors"`
}

func snapshotResponse(flow models.LeadType, snap guided.Snapshot) formSnapshotResponse {
	return formSnapshotResponse{Flow: string(flow), State: snap.State, Values: snap.Values, Errors: snap.Errors}
}

// resolveForm returns the visitor's controller for the :flow parameter
func resolveForm(c echo.Context) (*guided.Controller, partials.FormDefinition, error) {
	flow, ok := models.ParseFormLeadType(c.Param("flow"))
	if !ok {
		return nil, partials.FormDefinition{}, echo.NewHTTPError(http.StatusNotFound, "Unknown form")
	}
	def, ok := partials.Definition(flow)
	if !ok {
		return nil, partials.FormDefinition{}, echo.NewHTTPError(http.StatusNotFound, "Unknown form")
	}
	state, err := visitorState(c)
	if err != nil {
		return nil, def, err
	}
	ctrl, err := state.Form(flow)
	if err != nil {
		return nil, def, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return ctrl, def, nil
}

// controllerError maps controller errors to HTTP errors
func controllerError(err error) error {
	switch {
	case errors.Is(err, guided.ErrDisposed):
		return echo.NewHTTPError(http.StatusGone, "Session expired, please reload the page").SetInternal(err)
	case errors.Is(err, guided.ErrClosed):
		return echo.NewHTTPError(http.StatusConflict, "Form is closed").SetInternal(err)
	case errors.Is(err, guided.ErrSubmitInFlight):
		return echo.NewHTTPError(http.StatusConflict, "Submission already in progress").SetInternal(err)
	case errors.Is(err, guided.ErrNotEditable):
		return echo.NewHTTPError(http.StatusConflict, "Form already submitted").SetInternal(err)
	case errors.Is(err, guided.ErrUnknownField):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
}

func renderModal(c echo.Context, def partials.FormDefinition, snap guided.Snapshot) error {
	return render(c, partials.FormModal(def, snap, getConfig(c).TurnstileSiteKey))
}

// OpenFormHandler opens a lead modal. HTMX requests get the modal partial;
// other requests get the landing page with the modal already open.
func OpenFormHandler(c echo.Context) error {
	ctrl, def, err := resolveForm(c)
	if err != nil {
		return err
	}
	if err := ctrl.Open(); err != nil {
		return controllerError(err)
	}
	getAnalytics(c).TrackModalOpened(middleware.GetSessionID(c), middleware.GetCountry(c), def.Flow)

	modal := partials.FormModal(def, ctrl.Snapshot(), getConfig(c).TurnstileSiteKey)
	if !isHTMX(c) {
		return renderLanding(c, modal)
	}
	return render(c, modal)
}

// EditFieldHandler applies one field edit. The form carries "field" with the
// field name and the value under the field's own name.
func EditFieldHandler(c echo.Context) error {
	ctrl, def, err := resolveForm(c)
	if err != nil {
		return err
	}
	name := c.FormValue("field")
	spec, ok := def.Field(name)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown field")
	}
	if err := ctrl.Edit(name, c.FormValue(name)); err != nil {
		return controllerError(err)
	}

	snap := ctrl.Snapshot()
	return render(c, partials.FormField(def, spec, snap.Values[name], snap.Errors[name]))
}

// PatchFieldsHandler applies a JSON Patch of field edits and returns the
// resulting snapshot as JSON
func PatchFieldsHandler(c echo.Context) error {
	ctrl, def, err := resolveForm(c)
	if err != nil {
		return err
	}
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPatchBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}
	if err := ctrl.ApplyPatch(body); err != nil {
		return controllerError(err)
	}
	return c.JSON(http.StatusOK, snapshotResponse(def.Flow, ctrl.Snapshot()))
}

// SubmitFormHandler validates and submits a lead form. Values posted with the
// form are applied first so the submit works without prior field edits.
func SubmitFormHandler(c echo.Context) error {
	ctrl, def, err := resolveForm(c)
	if err != nil {
		return err
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	for _, f := range def.Fields {
		if values, ok := params[f.Name]; ok && len(values) > 0 {
			if err := ctrl.Edit(f.Name, values[0]); err != nil {
				switch {
				case errors.Is(err, guided.ErrClosed):
					return closedFormResponse(c)
				case errors.Is(err, guided.ErrSubmitInFlight), errors.Is(err, guided.ErrNotEditable):
					// repeated post of a form already sent
					return submittedFormResponse(c, def, ctrl)
				}
				return controllerError(err)
			}
		}
	}

	cfg := getConfig(c)
	if cfg.TurnstileSecretKey != "" {
		token := c.FormValue("cf-turnstile-response")
		if ok, err := services.VerifyTurnstileToken(c.Request().Context(), token, cfg.TurnstileSecretKey, c.RealIP()); !ok {
			log.Printf("[WARNING] Turnstile rejected %s submission: %v", def.Flow, err)
			snap := ctrl.Snapshot()
			if snap.IsOpen() {
				snap.State = guided.StateFailed
			}
			return renderModal(c, def, snap)
		}
	}

	// The submission outlives the request; only closing the form cancels it
	_, err = ctrl.Submit(context.WithoutCancel(c.Request().Context()))
	switch {
	case err == nil, errors.Is(err, guided.ErrSuperseded), errors.Is(err, guided.ErrSubmitInFlight):
	case errors.Is(err, guided.ErrClosed):
		return closedFormResponse(c)
	default:
		return controllerError(err)
	}

	return submittedFormResponse(c, def, ctrl)
}

func submittedFormResponse(c echo.Context, def partials.FormDefinition, ctrl *guided.Controller) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/forms/"+string(def.Flow))
	}
	return renderModal(c, def, ctrl.Snapshot())
}

// FormStatusHandler reports the controller state. HTMX polling gets the
// modal partial, which is empty once the form auto-closed.
func FormStatusHandler(c echo.Context) error {
	ctrl, def, err := resolveForm(c)
	if err != nil {
		return err
	}
	snap := ctrl.Snapshot()
	if !isHTMX(c) {
		return c.JSON(http.StatusOK, snapshotResponse(def.Flow, snap))
	}
	return renderModal(c, def, snap)
}

// CloseFormHandler closes a lead modal, cancelling any pending submission
func CloseFormHandler(c echo.Context) error {
	ctrl, _, err := resolveForm(c)
	if err != nil {
		return err
	}
	ctrl.Close()
	return closedFormResponse(c)
}

func closedFormResponse(c echo.Context) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.HTML(http.StatusOK, "")
}
