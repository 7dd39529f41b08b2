package actionplan

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	actionplanService "focolog/service/actionplan"
)

func init() {
	api.RegisterModule(RegisterActionPlanRoutes)
}

func RegisterActionPlanRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/action-plans")
	svc := a.ActionPlans
	log := a.Logger

	g.GET("", func(c echo.Context) error {
		list, err := svc.List(c.Request().Context(), c.QueryParam("status"), c.QueryParam("search"))
		if err != nil {
			return api.Error(c, log, err, "planos de ação")
		}
		return c.JSON(http.StatusOK, list)
	})

	g.POST("", func(c echo.Context) error {
		var in actionplanService.Input
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		v, err := svc.Create(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, log, err, "plano de ação")
		}
		return c.JSON(http.StatusCreated, v)
	})

	// PUT /api/action-plans/:id/status {"status":"in_progress"}
	g.PUT("/:id/status", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, err)
		}
		v, err := svc.SetStatus(c.Request().Context(), id, body.Status)
		if err != nil {
			return api.Error(c, log, err, "plano de ação")
		}
		return c.JSON(http.StatusOK, v)
	})
}
