package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildlog-app/buildlog/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	user, pair, err := s.users.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return s.httpError(c, err)
	}
	s.setAuthCookie(c, pair)
	return c.JSON(http.StatusCreated, map[string]any{
		"user":          map[string]string{"id": user.ID, "email": user.Email},
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	pair, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return s.httpError(c, err)
	}
	s.setAuthCookie(c, pair)
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *Server) handleRefresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	pair, err := s.users.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return s.httpError(c, err)
	}
	s.setAuthCookie(c, pair)
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// setAuthCookie stores the access token for the browser flow. API clients
// can ignore the cookie and use the Bearer header.
func (s *Server) setAuthCookie(c echo.Context, pair *services.TokenPair) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.AccessTokenValidityDuration.Seconds()),
	})
}
