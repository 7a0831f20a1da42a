package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nuitmaroc/nightlife-api/internal/util"
)

// NewRouter builds the echo instance with the shared middleware chain.
// Route groups are registered separately by the handler constructors.
func NewRouter(allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	registerLogging(e)
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(corsConfig(allowOrigins)))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, util.Envelope{"status": "ok"})
	})
	return e
}

// corsConfig allows credentials only when the origin list is explicit.
// Cookies never ride along with a wildcard origin.
func corsConfig(allowOrigins []string) middleware.CORSConfig {
	wildcard := false
	for _, origin := range allowOrigins {
		if origin == "*" {
			wildcard = true
		}
	}
	return middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderOrigin,
			echo.HeaderXRequestedWith,
		},
		AllowCredentials: !wildcard,
	}
}
