package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"morningful_landing_go/middleware"

	"github.com/labstack/echo/v4"
)

const maxEventParamLength = 100

// EventRequest is a beacon posted by the landing page script
type EventRequest struct {
	Event  string         `json:"event"`
	Params map[string]any `json:"params"`
}

func (r EventRequest) str(key string) string {
	s, _ := r.Params[key].(string)
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxEventParamLength {
		s = string([]rune(s)[:maxEventParamLength])
	}
	return s
}

// TrackEventHandler relays allow-listed client events to the analytics sinks
func TrackEventHandler(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	analytics := getAnalytics(c)
	sessionID := middleware.GetSessionID(c)
	country := middleware.GetCountry(c)

	switch req.Event {
	case "cta_button_click":
		text := req.str("button_text")
		if text == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "button_text is required")
		}
		analytics.TrackCTAClick(sessionID, country, text, req.str("section"))
	case "navigation_click":
		item := req.str("navigation_item")
		if item == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "navigation_item is required")
		}
		analytics.TrackNavigation(sessionID, country, item)
	case "scroll_depth":
		pct, ok := req.Params["percentage"].(float64)
		if !ok || pct < 1 || pct > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "percentage must be between 1 and 100")
		}
		analytics.TrackScrollDepth(sessionID, country, int(pct))
	case "feature_interaction":
		feature, action := req.str("feature_name"), req.str("action")
		if feature == "" || action == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "feature_name and action are required")
		}
		analytics.TrackFeatureInteraction(sessionID, country, feature, action)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unsupported event %q", req.Event))
	}
	return c.NoContent(http.StatusNoContent)
}
