package training

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
	"focolog/model/entity"
	trainingService "focolog/service/training"
)

func init() {
	api.RegisterModule(RegisterTrainingRoutes)
}

func RegisterTrainingRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/trainings")
	svc := a.Trainings
	log := a.Logger
	hr := auth.RequireRole(entity.RoleHR)

	// GET /api/trainings?status=expiring&search=
	g.GET("", func(c echo.Context) error {
		list, err := svc.List(c.Request().Context(), c.QueryParam("status"), c.QueryParam("search"))
		if err != nil {
			return api.Error(c, log, err, "treinamentos")
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/counts", func(c echo.Context) error {
		counts, err := svc.Counts(c.Request().Context())
		if err != nil {
			return api.Error(c, log, err, "treinamentos")
		}
		return c.JSON(http.StatusOK, counts)
	})

	g.POST("", func(c echo.Context) error {
		var in trainingService.Input
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		tr, err := svc.Create(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, log, err, "treinamento")
		}
		a.Alerts.Invalidate(c.Request().Context())
		return c.JSON(http.StatusCreated, tr)
	}, hr)

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		if err := svc.Delete(c.Request().Context(), id); err != nil {
			return api.Error(c, log, err, "treinamento")
		}
		a.Alerts.Invalidate(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}, hr)
}
