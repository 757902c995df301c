package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MyelinBots/knightrun-go/config"
	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info"
	"github.com/MyelinBots/knightrun-go/internal/healthcheck"
	"github.com/MyelinBots/knightrun-go/internal/services/account"
	"github.com/MyelinBots/knightrun-go/internal/services/stats"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg      config.AppConfig
	log      zerolog.Logger
	echo     *echo.Echo
	accounts account.Service
	stats    stats.Service
}

func New(cfg config.AppConfig, log zerolog.Logger, accounts account.Service, statsSvc stats.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		cfg:      cfg,
		log:      log,
		echo:     e,
		accounts: accounts,
		stats:    statsSvc,
	}
	e.HTTPErrorHandler = s.httpErrorHandler

	s.registerMiddleware()
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", healthcheck.RootHandler(s.cfg))

	api := s.echo.Group("/api")
	api.GET("/health", healthcheck.HealthCheckHandler(time.Now))
	api.POST("/register", s.register)
	api.POST("/login", s.login)
	api.POST("/logout", s.logout)

	api.POST("/update-coin", s.statHandler(user_info.GoldCoins, "Coin update successful", s.stats.UpdateCoins))
	api.POST("/update-fires", s.statHandler(user_info.ConsecutiveDays, "Fires update successful", s.stats.UpdateFires))
	api.POST("/update-treasures", s.statHandler(user_info.TreasureFound, "Treasures update successful", s.stats.UpdateTreasures))
	api.POST("/update-experience", s.statHandler(user_info.ExperiencePoints, "Experience update successful", s.stats.UpdateExperience))
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	errCh := make(chan error, 1)

	go func() {
		s.log.Info().Str("addr", addr).Msg("knight run api listening")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
