package middleware

import (
	"morningful_landing_go/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runVisitor(t *testing.T, cfg *config.Config, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Visitor(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return c, rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestVisitor(t *testing.T) {
	cfg := &config.Config{Environment: "development"}

	t.Run("IssuesNewSession", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, rec := runVisitor(t, cfg, req)

		id := GetSessionID(c)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.Equal(t, id, cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.False(t, cookie.Secure)
		assert.Equal(t, id, c.Request().Context().Value(sessionIDKey))
	})

	t.Run("KeepsExistingSession", func(t *testing.T) {
		existing := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: existing})
		c, rec := runVisitor(t, cfg, req)

		assert.Equal(t, existing, GetSessionID(c))
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("ReplacesMalformedSession", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "../../etc/passwd"})
		c, rec := runVisitor(t, cfg, req)

		assert.NotEqual(t, "../../etc/passwd", GetSessionID(c))
		assert.NotNil(t, sessionCookie(rec))
	})

	t.Run("SecureCookieInProduction", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, rec := runVisitor(t, &config.Config{Environment: "production"}, req)

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.True(t, cookie.Secure)
	})

	t.Run("Country", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("CF-IPCountry", "mk")
		c, _ := runVisitor(t, cfg, req)
		assert.Equal(t, "MK", GetCountry(c))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("CF-IPCountry", "XX")
		c, _ = runVisitor(t, cfg, req)
		assert.Equal(t, "", GetCountry(c))
	})
}

func TestGettersWithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(nil, nil)
	assert.Equal(t, "", GetSessionID(c))
	assert.Equal(t, "", GetCountry(c))
}
