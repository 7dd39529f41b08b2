package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"focolog/app"
	"focolog/core/auth"
)

// NewServer builds the echo instance with every registered module applied.
func NewServer(a *app.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLogger(a.Logger))
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(middleware.CORS())

	e.Static(a.Config.Server.MediaURL, a.Config.Server.MediaDir)

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(a.Config.Auth, a.Sessions))
	ApplyModules(apiGroup, a)
	ApplyRoutes(e, a)
	return e
}

func init() {
	RegisterRoute(func(e *echo.Echo, a *app.App) {
		e.GET("/health", func(c echo.Context) error {
			if err := a.Ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": err.Error()})
			}
			return c.JSON(http.StatusOK, echo.Map{"status": "ok", "app": a.Config.Server.AppName})
		})
	})
}
