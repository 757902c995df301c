package server

import (
	"github.com/MyelinBots/knightrun-go/internal/services/context_manager"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

func (s *Server) registerMiddleware() {
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(s.contextLogger())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			var ev *zerolog.Event
			switch {
			case v.Status >= 500:
				ev = s.log.Error().Err(v.Error)
			case v.Status >= 400:
				ev = s.log.Warn()
			default:
				ev = s.log.Info()
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("remote_ip", v.RemoteIP).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
}

// contextLogger puts the request id and a request scoped logger on the request context.
func (s *Server) contextLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := c.Response().Header().Get(echo.HeaderXRequestID)

			reqLog := s.log.With().
				Str("request_id", id).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			ctx := context_manager.SetRequestIDContext(req.Context(), id)
			ctx = context_manager.SetLoggerContext(ctx, reqLog)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
