package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
)

func init() {
	api.RegisterModule(RegisterDashboardRoutes)
	api.RegisterModule(RegisterAlertRoutes)
}

func RegisterDashboardRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/dashboard")
	log := a.Logger

	g.GET("", func(c echo.Context) error {
		ov, err := a.Dashboard.Overview(c.Request().Context())
		if err != nil {
			return api.Error(c, log, err, "painel")
		}
		return c.JSON(http.StatusOK, ov)
	})

	g.GET("/stats", func(c echo.Context) error {
		st, err := a.Dashboard.Stats(c.Request().Context())
		if err != nil {
			return api.Error(c, log, err, "painel")
		}
		return c.JSON(http.StatusOK, st)
	})
}

func RegisterAlertRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/alerts")
	log := a.Logger

	// GET /api/alerts serves the cached snapshot; ?fresh=1 rebuilds it
	g.GET("", func(c echo.Context) error {
		ctx := c.Request().Context()
		get := a.Alerts.Snapshot
		if c.QueryParam("fresh") != "" {
			get = a.Alerts.Scan
		}
		snap, err := get(ctx)
		if err != nil {
			return api.Error(c, log, err, "alertas")
		}
		return c.JSON(http.StatusOK, snap)
	})

	g.GET("/open-plans", func(c echo.Context) error {
		plans, err := a.ActionPlans.Open(c.Request().Context())
		if err != nil {
			return api.Error(c, log, err, "planos de ação")
		}
		return c.JSON(http.StatusOK, plans)
	})
}
