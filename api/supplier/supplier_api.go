package supplier

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
	"focolog/model/entity"
	supplierService "focolog/service/supplier"
)

func init() {
	api.RegisterModule(RegisterSupplierRoutes)
}

func RegisterSupplierRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/suppliers")
	svc := a.Suppliers
	log := a.Logger
	manage := auth.RequireRole(entity.RolePurchasing)

	g.GET("", func(c echo.Context) error {
		list, err := svc.List(c.Request().Context(), c.QueryParam("search"))
		if err != nil {
			return api.Error(c, log, err, "fornecedores")
		}
		return c.JSON(http.StatusOK, list)
	})

	g.POST("", func(c echo.Context) error {
		var in supplierService.Input
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		s, err := svc.Create(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, log, err, "fornecedor")
		}
		return c.JSON(http.StatusCreated, s)
	}, manage)

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		s, err := svc.Get(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, log, err, "fornecedor")
		}
		return c.JSON(http.StatusOK, s)
	})

	g.PUT("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var in supplierService.Input
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		s, err := svc.Update(c.Request().Context(), id, in)
		if err != nil {
			return api.Error(c, log, err, "fornecedor")
		}
		return c.JSON(http.StatusOK, s)
	}, manage)

	g.GET("/:id/reviews", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		list, err := svc.Reviews(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, log, err, "avaliações")
		}
		return c.JSON(http.StatusOK, list)
	})

	// POST /api/suppliers/:id/reviews {"rating":1-5,"comment":"..."}
	g.POST("/:id/reviews", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var in supplierService.ReviewInput
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		if sess, ok := auth.CurrentSession(c); ok {
			in.UserID = sess.UserID
			in.UserName = sess.Name
		}
		review, s, err := svc.AddReview(c.Request().Context(), id, in)
		if err != nil {
			return api.Error(c, log, err, "avaliação")
		}
		return c.JSON(http.StatusCreated, echo.Map{"review": review, "supplier": s})
	})
}
