package healthcheck

import (
	"net/http"
	"time"

	"github.com/MyelinBots/knightrun-go/config"
	"github.com/labstack/echo/v4"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

var Endpoints = []string{
	"POST /api/register",
	"POST /api/login",
	"POST /api/logout",
	"POST /api/update-coin",
	"POST /api/update-fires",
	"POST /api/update-treasures",
	"POST /api/update-experience",
	"GET /api/health",
}

type Banner struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

type Status struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// RootHandler serves the service banner on GET /
func RootHandler(cfg config.AppConfig) echo.HandlerFunc {
	banner := Banner{
		Message:   "Knight Run API Server",
		Version:   cfg.Version,
		Endpoints: Endpoints,
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, banner)
	}
}

// HealthCheckHandler reports liveness only, it never touches the database.
func HealthCheckHandler(now func() time.Time) echo.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, Status{
			Success:   true,
			Message:   "Knight Run API is running",
			Timestamp: now().UTC().Format(timestampLayout),
		})
	}
}
