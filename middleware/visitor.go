package middleware

import (
	"context"
	"morningful_landing_go/config"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName holds the visitor's page session ID
	SessionCookieName = "mf_session"

	sessionIDKey contextKey = "session_id"
	countryKey   contextKey = "country"
)

// Visitor middleware identifies the page session. A missing or malformed
// session cookie is replaced by a fresh random ID. The country comes from
// Cloudflare's CF-IPCountry header when present.
func Visitor(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.New().String()
				setSessionCookie(c, cfg, sessionID)
			}

			country := strings.ToUpper(strings.TrimSpace(c.Request().Header.Get("CF-IPCountry")))
			if country == "XX" || country == "T1" {
				country = ""
			}

			c.Set(string(sessionIDKey), sessionID)
			c.Set(string(countryKey), country)

			// Update request context for Templ (standard context)
			ctx := context.WithValue(c.Request().Context(), sessionIDKey, sessionID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func setSessionCookie(c echo.Context, cfg *config.Config, sessionID string) {
	cookie := new(http.Cookie)
	cookie.Name = SessionCookieName
	cookie.Value = sessionID
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	if cfg != nil && cfg.IsProduction() {
		cookie.Secure = true
	}
	c.SetCookie(cookie)
}

// GetSessionID returns the visitor's session ID from context
func GetSessionID(c echo.Context) string {
	if id, ok := c.Get(string(sessionIDKey)).(string); ok {
		return id
	}
	return ""
}

// GetCountry returns the visitor's two-letter country code, or ""
func GetCountry(c echo.Context) string {
	if country, ok := c.Get(string(countryKey)).(string); ok {
		return country
	}
	return ""
}
