package handlers

import (
	"net/http"

	"morningful_landing_go/config"
	"morningful_landing_go/middleware"
	"morningful_landing_go/services"
	"morningful_landing_go/templates/layouts"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Context keys set by Inject
const (
	configKey      = "config"
	sessionsKey    = "sessions"
	analyticsKey   = "analytics"
	diagnosticsKey = "diagnostics"
)

// Dependencies are the long-lived services the handlers need
type Dependencies struct {
	Config      *config.Config
	Sessions    *services.SessionStore
	Analytics   *services.Analytics
	Diagnostics *services.Diagnostics
}

// Inject makes the dependencies available to handlers through the echo context
func Inject(deps Dependencies) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(configKey, deps.Config)
			c.Set(sessionsKey, deps.Sessions)
			c.Set(analyticsKey, deps.Analytics)
			c.Set(diagnosticsKey, deps.Diagnostics)
			return next(c)
		}
	}
}

func render(c echo.Context, component templ.Component) error {
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get(configKey).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return &config.Config{}
}

func getAnalytics(c echo.Context) *services.Analytics {
	a, _ := c.Get(analyticsKey).(*services.Analytics)
	return a
}

func getDiagnostics(c echo.Context) *services.Diagnostics {
	d, _ := c.Get(diagnosticsKey).(*services.Diagnostics)
	return d
}

// visitorState returns the controllers of the current visitor session
func visitorState(c echo.Context) (*services.VisitorState, error) {
	store, ok := c.Get(sessionsKey).(*services.SessionStore)
	if !ok || store == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "Session store not configured")
	}
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Missing visitor session")
	}
	return store.Get(sessionID, middleware.GetCountry(c)), nil
}

// pageFor builds the layout data of a full page
func pageFor(c echo.Context, seoKey string) layouts.Page {
	return layouts.Page{
		SEO:              GetSEO(seoKey),
		CSRFToken:        middleware.GetCSRFToken(c),
		TurnstileSiteKey: getConfig(c).TurnstileSiteKey,
	}
}
