package report

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	reportService "focolog/service/report"
)

func init() {
	api.RegisterModule(RegisterReportRoutes)
}

func RegisterReportRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/reports")
	svc := a.Reports
	log := a.Logger

	// GET /api/reports?type=consumption&period=month&cost_center=CC-001
	g.GET("", func(c echo.Context) error {
		var p reportService.Params
		if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
			return api.BadRequest(c, err)
		}
		if p.Type == "" {
			p.Type = reportService.TypeConsumption
		}
		rep, err := svc.Generate(c.Request().Context(), p)
		if err != nil {
			return api.Error(c, log, err, "relatório")
		}
		return c.JSON(http.StatusOK, rep)
	})

	// GET /api/reports/esocial?period=month downloads entregas_esocial.csv
	g.GET("/esocial", func(c echo.Context) error {
		from, err := reportService.Since(c.QueryParam("period"), a.Inventory.Now())
		if err != nil {
			return api.Error(c, log, err, "relatório")
		}
		var buf bytes.Buffer
		if _, err := svc.WriteESocial(c.Request().Context(), from, &buf); err != nil {
			return api.Error(c, log, err, "relatório eSocial")
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="entregas_esocial.csv"`)
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	})
}
