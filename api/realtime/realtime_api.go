package realtime

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/service/inventory"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// RegisterRealtimeRoutes serves the stock lookups the request form calls
// while the user types.
func RegisterRealtimeRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/realtime")

	// POST /api/realtime/availability {"items":[{"name":"Luva","size":"G","quantity":2}]}
	g.POST("/availability", func(c echo.Context) error {
		start := time.Now()
		var body struct {
			Items []inventory.StockLine `json:"items"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items required"})
		}
		lines, err := a.Inventory.CheckAvailability(c.Request().Context(), body.Items)
		if err != nil {
			return api.Error(c, a.Logger, err, "estoque")
		}
		enough := true
		for _, l := range lines {
			enough = enough && l.Enough
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, echo.Map{"items": lines, "enough": enough})
	})

	// GET /api/realtime/stock?item_id=1 or ?name=Luva&size=G
	g.GET("/stock", func(c echo.Context) error {
		start := time.Now()
		id := api.QueryID(c, "item_id")
		name := c.QueryParam("name")
		if id == 0 && name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id or name required"})
		}
		lines, err := a.Inventory.CheckAvailability(c.Request().Context(), []inventory.StockLine{
			{ItemID: id, Name: name, Size: c.QueryParam("size")},
		})
		if err != nil {
			return api.Error(c, a.Logger, err, "estoque")
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		if !lines[0].Found {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusOK, lines[0])
	})
}
