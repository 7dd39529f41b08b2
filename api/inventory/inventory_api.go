package inventory

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
	"focolog/model/entity"
	inventoryService "focolog/service/inventory"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

func RegisterInventoryRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/inventory")
	inv := a.Inventory
	log := a.Logger
	manage := auth.RequireRole(entity.RolePurchasing)
	stock := auth.RequireRole(entity.RolePurchasing, entity.RoleSupervisor)

	// GET /api/inventory?search=&type=&category=&stock=low
	g.GET("", func(c echo.Context) error {
		items, err := inv.List(c.Request().Context(), inventoryService.Filter{
			Search:   c.QueryParam("search"),
			Type:     c.QueryParam("type"),
			Category: c.QueryParam("category"),
			Stock:    c.QueryParam("stock"),
		})
		if err != nil {
			return api.Error(c, log, err, "estoque")
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
	})

	g.GET("/summary", func(c echo.Context) error {
		sum, err := inv.Summary(c.Request().Context())
		if err != nil {
			return api.Error(c, log, err, "estoque")
		}
		return c.JSON(http.StatusOK, sum)
	})

	g.POST("", func(c echo.Context) error {
		var in inventoryService.ItemInput
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		item, err := inv.Create(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, log, err, "estoque")
		}
		a.Alerts.Invalidate(c.Request().Context())
		return c.JSON(http.StatusCreated, inv.View(*item))
	}, manage)

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		item, err := inv.Get(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, log, err, "item")
		}
		return c.JSON(http.StatusOK, inv.View(*item))
	})

	g.PUT("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var in inventoryService.ItemInput
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		item, err := inv.Update(c.Request().Context(), id, in)
		if err != nil {
			return api.Error(c, log, err, "item")
		}
		a.Alerts.Invalidate(c.Request().Context())
		return c.JSON(http.StatusOK, inv.View(*item))
	}, manage)

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		if err := inv.Delete(c.Request().Context(), id); err != nil {
			return api.Error(c, log, err, "item")
		}
		a.Alerts.Invalidate(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}, manage)

	// POST /api/inventory/:id/adjust {"kind":"in|out|adjust","quantity":n}
	g.POST("/:id/adjust", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var adj inventoryService.Adjustment
		if err := c.Bind(&adj); err != nil {
			return api.BadRequest(c, err)
		}
		item, mv, err := inv.Adjust(c.Request().Context(), id, adj)
		if err != nil {
			return api.Error(c, log, err, "item")
		}
		a.Alerts.Invalidate(c.Request().Context())
		return c.JSON(http.StatusOK, echo.Map{"item": inv.View(*item), "movement": mv})
	}, stock)

	g.GET("/:id/movements", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		mvs, err := inv.Movements(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, log, err, "movimentações")
		}
		return c.JSON(http.StatusOK, mvs)
	})

	g.GET("/:id/maintenance", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		recs, err := inv.Maintenance(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, log, err, "manutenções")
		}
		return c.JSON(http.StatusOK, recs)
	})

	g.POST("/:id/maintenance", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var in inventoryService.MaintenanceInput
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		rec, err := inv.AddMaintenance(c.Request().Context(), id, in)
		if err != nil {
			return api.Error(c, log, err, "manutenções")
		}
		return c.JSON(http.StatusCreated, rec)
	}, stock)

	g.GET("/counts", func(c echo.Context) error {
		counts, err := inv.Counts(c.Request().Context())
		if err != nil {
			return api.Error(c, log, err, "inventários")
		}
		return c.JSON(http.StatusOK, counts)
	})

	// POST /api/inventory/counts {"lines":[{"item_id":1,"counted_quantity":3}],"apply":true}
	g.POST("/counts", func(c echo.Context) error {
		var body struct {
			Lines []inventoryService.CountLine `json:"lines"`
			Apply bool                         `json:"apply"`
		}
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, err)
		}
		var userID int64
		if sess, ok := auth.CurrentSession(c); ok {
			userID = sess.UserID
		}
		res, err := inv.SubmitCount(c.Request().Context(), userID, body.Lines, body.Apply)
		if err != nil {
			return api.Error(c, log, err, "inventário")
		}
		if body.Apply {
			a.Alerts.Invalidate(c.Request().Context())
		}
		return c.JSON(http.StatusOK, res)
	}, stock)

	g.POST("/invoices", func(c echo.Context) error {
		var in inventoryService.Invoice
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		res, err := inv.ApplyInvoice(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, log, err, "nota fiscal")
		}
		a.Alerts.Invalidate(c.Request().Context())
		return c.JSON(http.StatusOK, res)
	}, manage)
}
