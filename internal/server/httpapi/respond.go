package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildlog-app/buildlog/internal/common"
)

// httpError maps service-level sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message; the cause stays in the logs.
func (s *Server) httpError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, "already exists")
	default:
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
