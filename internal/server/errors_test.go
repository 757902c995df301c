package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MyelinBots/knightrun-go/config"
	"github.com/MyelinBots/knightrun-go/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	s := &Server{log: zerolog.Nop()}

	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.Validation("bad"), http.StatusBadRequest, "bad"},
		{fmt.Errorf("wrapped: %w", apperr.Conflict("taken", nil)), http.StatusConflict, "taken"},
		{apperr.Auth("who"), http.StatusUnauthorized, "who"},
		{apperr.NotFound("gone", nil), http.StatusNotFound, "gone"},
		{echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "Method Not Allowed"},
		{errors.New("pool exhausted"), http.StatusInternalServerError, "Internal server error: pool exhausted"},
	}
	for _, tt := range tests {
		status, msg := s.describe(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.msg, msg)
	}
}

func TestDescribe_HideErrors(t *testing.T) {
	s := &Server{cfg: config.AppConfig{HideErrors: true}, log: zerolog.Nop()}

	status, msg := s.describe(errors.New("password authentication failed"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", msg)
}
