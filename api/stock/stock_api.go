package stock

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
	"focolog/model/entity"
	"focolog/service/inventory"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

func RegisterStockRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/stock")

	// POST /api/stock/import sets absolute quantities in bulk
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()

		var body struct {
			Items     []inventory.StockLine `json:"items"`
			Reference string                `json:"reference"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}

		ctx := c.Request().Context()
		res, err := a.Inventory.ImportStock(ctx, body.Items, body.Reference)
		if res != nil && res.Imported > 0 {
			a.Alerts.Invalidate(ctx)
		}
		if err != nil {
			return api.Error(c, a.Logger, err, "estoque")
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"imported":            res.Imported,
			"unchanged":           res.Unchanged,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		})
	}, auth.RequireRole(entity.RolePurchasing))
}
