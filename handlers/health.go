package handlers

import (
	"net/http"

	"morningful_landing_go/db"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status         string `json:"status"`
	Database       string `json:"database"`
	RecentFailures int    `json:"recent_failures"`
}

// HealthHandler reports whether the server and its database are usable
func HealthHandler(c echo.Context) error {
	resp := healthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if db.DB == nil {
		resp.Database = "unavailable"
	} else if sqlDB, err := db.DB.DB(); err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if failures, err := getDiagnostics(c).RecentFailures(10); err == nil {
		resp.RecentFailures = len(failures)
	}
	return c.JSON(status, resp)
}
