package handlers

import (
	"morningful_landing_go/middleware"
	"morningful_landing_go/templates/layouts"
	"morningful_landing_go/templates/pages"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// LandingHandler renders the marketing page
func LandingHandler(c echo.Context) error {
	return renderLanding(c, nil)
}

// renderLanding renders the landing page, optionally with a modal already open
func renderLanding(c echo.Context, modal templ.Component) error {
	page := pageFor(c, "landing")
	page.Modal = modal
	logPageView(c, page)
	return render(c, pages.Landing(pages.NewLandingViewModel(page)))
}

func PrivacyHandler(c echo.Context) error {
	page := pageFor(c, "privacy")
	logPageView(c, page)
	return render(c, pages.Privacy(page))
}

func TermsHandler(c echo.Context) error {
	page := pageFor(c, "terms")
	logPageView(c, page)
	return render(c, pages.Terms(page))
}

func logPageView(c echo.Context, page layouts.Page) {
	title := ""
	if page.SEO != nil {
		title = page.SEO.Title
	}
	getAnalytics(c).LogPageView(middleware.GetSessionID(c), middleware.GetCountry(c), c.Request().URL.Path, title)
}
