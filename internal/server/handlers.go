package server

import (
	"context"
	"net/http"

	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info"
	"github.com/MyelinBots/knightrun-go/internal/services/account"
	"github.com/labstack/echo/v4"
)

type profileResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	*account.Profile
}

/*
ACCOUNT
*/

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Message: msgInvalidPayload})
	}

	profile, err := s.accounts.Register(c.Request().Context(), account.RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		Birthday:     req.Birthday,
		Height:       string(req.Height),
		Weight:       string(req.Weight),
		Intensity:    req.Intensity,
		RegisterDate: req.RegisterDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, profileResponse{
		Success: true,
		Message: "Registration successful",
		Profile: profile,
	})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Message: msgInvalidPayload})
	}

	profile, err := s.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Success: true,
		Message: "Login successful",
		Profile: profile,
	})
}

// logout is stateless, there is no session to end.
func (s *Server) logout(c echo.Context) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: "Logout successful"})
}

/*
STATS
*/

type statUpdater func(ctx context.Context, userID string, amount int64) (int64, error)

func (s *Server) statHandler(column user_info.StatColumn, message string, update statUpdater) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req statRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, envelope{Message: msgInvalidPayload})
		}

		userID, err := parseUserID(req.UserID)
		if err != nil {
			return err
		}
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return err
		}

		value, err := update(c.Request().Context(), userID, amount)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":      true,
			"message":      message,
			"userId":       userID,
			string(column): value,
		})
	}
}
