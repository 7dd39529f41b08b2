package users

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
	"focolog/model/entity"
	usersService "focolog/service/users"
)

func init() {
	api.RegisterModule(RegisterUserRoutes)
	api.RegisterModule(RegisterCostCenterRoutes)
}

func RegisterUserRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/users")
	svc := a.Users
	log := a.Logger
	admin := auth.RequireRole()

	g.GET("", func(c echo.Context) error {
		list, err := svc.List(c.Request().Context(), c.QueryParam("search"))
		if err != nil {
			return api.Error(c, log, err, "usuários")
		}
		return c.JSON(http.StatusOK, list)
	}, auth.RequireRole(entity.RoleHR, entity.RoleSupervisor))

	g.POST("", func(c echo.Context) error {
		var in usersService.Input
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		u, err := svc.Create(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, log, err, "usuário")
		}
		return c.JSON(http.StatusCreated, u)
	}, admin)

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		u, err := svc.Get(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, log, err, "usuário")
		}
		return c.JSON(http.StatusOK, u)
	})

	g.PUT("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var in usersService.Input
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		u, err := svc.Update(c.Request().Context(), id, in)
		if err != nil {
			return api.Error(c, log, err, "usuário")
		}
		return c.JSON(http.StatusOK, u)
	}, admin)

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		if err := svc.Delete(c.Request().Context(), id); err != nil {
			return api.Error(c, log, err, "usuário")
		}
		return c.NoContent(http.StatusNoContent)
	}, admin)
}

func RegisterCostCenterRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/cost-centers")
	svc := a.Users
	log := a.Logger
	admin := auth.RequireRole()

	g.GET("", func(c echo.Context) error {
		list, err := svc.CostCenters(c.Request().Context())
		if err != nil {
			return api.Error(c, log, err, "centros de custo")
		}
		return c.JSON(http.StatusOK, list)
	})

	g.POST("", func(c echo.Context) error {
		var in usersService.CostCenterInput
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		cc, err := svc.CreateCostCenter(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, log, err, "centro de custo")
		}
		return c.JSON(http.StatusCreated, cc)
	}, admin)

	g.PUT("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var in usersService.CostCenterInput
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		cc, err := svc.UpdateCostCenter(c.Request().Context(), id, in)
		if err != nil {
			return api.Error(c, log, err, "centro de custo")
		}
		return c.JSON(http.StatusOK, cc)
	}, admin)

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		if err := svc.DeleteCostCenter(c.Request().Context(), id); err != nil {
			return api.Error(c, log, err, "centro de custo")
		}
		return c.NoContent(http.StatusNoContent)
	}, admin)
}
