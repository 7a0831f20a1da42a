package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nuitmaroc/nightlife-api/internal/service"
	"github.com/nuitmaroc/nightlife-api/internal/util"
)

// SessionCookieName is the admin session cookie set on login.
const SessionCookieName = "nuit_admin_session"

const contextSessionKey = "admin.session"

// RequireSession gates the admin routes behind a valid session cookie.
func RequireSession(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
			}
			if err := auth.CheckSession(cookie.Value); err != nil {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid or expired session"))
			}
			c.Set(contextSessionKey, true)
			return next(c)
		}
	}
}
