package purchase

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
	"focolog/model/entity"
	purchaseService "focolog/service/purchase"
)

func init() {
	api.RegisterModule(RegisterPurchaseRoutes)
}

func RegisterPurchaseRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/purchase-orders")
	svc := a.Purchases
	log := a.Logger
	purchasing := auth.RequireRole(entity.RolePurchasing)

	g.GET("", func(c echo.Context) error {
		list, err := svc.List(c.Request().Context(), c.QueryParam("status"))
		if err != nil {
			return api.Error(c, log, err, "pedidos de compra")
		}
		return c.JSON(http.StatusOK, list)
	})

	// POST /api/purchase-orders {"item_id":1,"supplier_id":2}; quantity defaults to the suggested one
	g.POST("", func(c echo.Context) error {
		var in purchaseService.Input
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		po, err := svc.Create(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, log, err, "pedido de compra")
		}
		return c.JSON(http.StatusCreated, po)
	}, purchasing)

	step := func(fn func(context.Context, int64) (*entity.PurchaseOrder, error)) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := api.ParamID(c)
			if err != nil {
				return api.BadRequest(c, err)
			}
			po, err := fn(c.Request().Context(), id)
			if err != nil {
				return api.Error(c, log, err, "pedido de compra")
			}
			return c.JSON(http.StatusOK, po)
		}
	}
	g.POST("/:id/approve", step(svc.Approve), purchasing)
	g.POST("/:id/order", step(svc.MarkOrdered), purchasing)
}
