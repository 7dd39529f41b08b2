package delivery

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	deliveryService "focolog/service/delivery"
)

const maxSignatureBytes = 5 << 20

func init() {
	api.RegisterModule(RegisterDeliveryRoutes)
}

func RegisterDeliveryRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/deliveries")
	dlv := a.Deliveries
	log := a.Logger

	// GET /api/deliveries?employee_id=&search=
	g.GET("", func(c echo.Context) error {
		list, err := dlv.List(c.Request().Context(), api.QueryID(c, "employee_id"), c.QueryParam("search"))
		if err != nil {
			return api.Error(c, log, err, "entregas")
		}
		return c.JSON(http.StatusOK, list)
	})

	deliver := func(quick bool) echo.HandlerFunc {
		return func(c echo.Context) error {
			var in deliveryService.Input
			if err := c.Bind(&in); err != nil {
				return api.BadRequest(c, err)
			}
			ctx := c.Request().Context()
			fn := dlv.Deliver
			if quick {
				fn = dlv.QuickDeliver
			}
			rec, err := fn(ctx, in)
			if err != nil {
				return api.Error(c, log, err, "entrega")
			}
			a.Alerts.Invalidate(ctx)
			return c.JSON(http.StatusCreated, rec)
		}
	}
	g.POST("", deliver(false))
	// POST /api/deliveries/quick: scanner flow, repeated scans of one item collapse
	g.POST("/quick", deliver(true))

	g.GET("/holdings", func(c echo.Context) error {
		employeeID := api.QueryID(c, "employee_id")
		if employeeID == 0 {
			return api.BadRequest(c, errors.New("employee_id is required"))
		}
		hs, err := dlv.Holdings(c.Request().Context(), employeeID)
		if err != nil {
			return api.Error(c, log, err, "fichas de EPI")
		}
		return c.JSON(http.StatusOK, hs)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		rec, err := dlv.Get(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, log, err, "entrega")
		}
		return c.JSON(http.StatusOK, rec)
	})

	// POST /api/deliveries/:id/signature: multipart field "signature" or a raw image body
	g.POST("/:id/signature", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var r io.Reader
		if fh, ferr := c.FormFile("signature"); ferr == nil {
			f, err := fh.Open()
			if err != nil {
				return api.BadRequest(c, err)
			}
			defer f.Close()
			r = f
		} else {
			r = c.Request().Body
		}
		rec, err := dlv.UploadSignature(c.Request().Context(), id, io.LimitReader(r, maxSignatureBytes))
		if err != nil {
			return api.Error(c, log, err, "assinatura")
		}
		return c.JSON(http.StatusOK, rec)
	})
}
