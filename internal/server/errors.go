package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MyelinBots/knightrun-go/internal/apperr"
	"github.com/MyelinBots/knightrun-go/internal/services/context_manager"
	"github.com/labstack/echo/v4"
)

const (
	msgInvalidPayload = "Invalid request payload"
	msgInternal       = "Internal server error"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// describe picks the status and the client-facing message for err.
func (s *Server) describe(err error) (int, string) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return statusFor(appErr.Kind), appErr.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, msg
	}

	if s.cfg.HideErrors {
		return http.StatusInternalServerError, msgInternal
	}
	return http.StatusInternalServerError, fmt.Sprintf("%s: %s", msgInternal, err.Error())
}

// httpErrorHandler renders every failure, router ones included, in the response envelope.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := s.describe(err)
	if status >= http.StatusInternalServerError {
		log := context_manager.GetLoggerFromContext(c.Request().Context())
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, envelope{Success: false, Message: msg})
	}
	if werr != nil {
		s.log.Error().Err(werr).Msg("failed to write error response")
	}
}
