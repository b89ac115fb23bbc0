package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"morningful_landing_go/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRF(t *testing.T) {
	e := echo.New()
	mw := CSRF(&config.Config{Environment: "test"})
	ok := func(c echo.Context) error { return c.String(http.StatusOK, GetCSRFToken(c)) }

	// GET issues a token and its cookie
	rec := httptest.NewRecorder()
	require.NoError(t, mw(ok)(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	token := rec.Body.String()
	require.NotEmpty(t, token)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "_csrf" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)

	post := func(header string) error {
		req := httptest.NewRequest(http.MethodPost, "/chat/open", nil)
		req.AddCookie(cookie)
		if header != "" {
			req.Header.Set(CSRFHeader, header)
		}
		return mw(ok)(e.NewContext(req, httptest.NewRecorder()))
	}

	assert.NoError(t, post(token))
	assert.Error(t, post(""))

	var he *echo.HTTPError
	require.ErrorAs(t, post("forged"), &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestGetCSRFTokenWithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(nil, nil)
	assert.Empty(t, GetCSRFToken(c))

	c.Set(csrfContextKey, 123)
	assert.Empty(t, GetCSRFToken(c))
}
