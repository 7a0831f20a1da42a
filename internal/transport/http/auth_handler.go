package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nuitmaroc/nightlife-api/internal/service"
	"github.com/nuitmaroc/nightlife-api/internal/util"
)

type AuthHandler struct {
	auth          *service.AuthService
	secureCookies bool
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, secureCookies bool) {
	handler := &AuthHandler{auth: auth, secureCookies: secureCookies}
	group := e.Group("/api/v1/admin/auth")
	group.POST("", handler.login)
	group.GET("", handler.check)
	group.DELETE("", handler.logout)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	token, expiresAt, err := h.auth.Login(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error("invalid password"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
	}
	c.SetCookie(h.sessionCookie(token, expiresAt))
	return c.JSON(http.StatusOK, util.Envelope{"authenticated": true})
}

func (h *AuthHandler) check(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, util.Envelope{"authenticated": false})
	}
	if err := h.auth.CheckSession(cookie.Value); err != nil {
		return c.JSON(http.StatusUnauthorized, util.Envelope{"authenticated": false})
	}
	return c.JSON(http.StatusOK, util.Envelope{"authenticated": true})
}

func (h *AuthHandler) logout(c echo.Context) error {
	expired := h.sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	c.SetCookie(expired)
	return c.JSON(http.StatusOK, util.Envelope{"authenticated": false})
}

func (h *AuthHandler) sessionCookie(value string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
