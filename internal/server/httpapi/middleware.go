package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/buildlog-app/buildlog/internal/server/auth"
)

// AuthCookieName is the cookie the browser flow stores the access token in.
// API clients send the same token as a Bearer header instead.
const AuthCookieName = "buildlog_token"

const userIDContextKey = "userID"

// requireAuth extracts the access token from the Authorization header or the
// auth cookie and stashes the user id on the request context. Unauthenticated
// browser requests are redirected to the login page; API requests get a 401.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(AuthCookieName); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			return s.unauthenticated(c)
		}

		userID, err := auth.GetUserIDFromToken(token, []byte(s.config.SecretKey))
		if err != nil {
			return s.unauthenticated(c)
		}

		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

func (s *Server) unauthenticated(c echo.Context) error {
	if wantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}

// wantsHTML distinguishes page navigations from API calls by the Accept
// header, so fetch() callers see a 401 instead of a redirect.
func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}
