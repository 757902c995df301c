package healthcheck

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MyelinBots/knightrun-go/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestRootHandler(t *testing.T) {
	h := RootHandler(config.AppConfig{Version: "0.1"})

	first := serve(t, h)
	second := serve(t, h)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	var banner Banner
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &banner))
	assert.Equal(t, "Knight Run API Server", banner.Message)
	assert.Equal(t, "0.1", banner.Version)
	assert.Contains(t, banner.Endpoints, "GET /api/health")
}

func TestHealthCheckHandler(t *testing.T) {
	at := time.Date(2025, 8, 1, 9, 5, 7, 123000000, time.FixedZone("AEST", 10*3600))
	rec := serve(t, HealthCheckHandler(func() time.Time { return at }))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Knight Run API is running","timestamp":"2025-07-31T23:05:07.123Z"}`, rec.Body.String())
}
