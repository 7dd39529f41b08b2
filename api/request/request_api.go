package request

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
	"focolog/model/entity"
	requestService "focolog/service/request"
)

func init() {
	api.RegisterModule(RegisterRequestRoutes)
}

func RegisterRequestRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/requests")
	reqs := a.Requests
	log := a.Logger
	review := auth.RequireRole(entity.RoleSupervisor)

	// GET /api/requests?status=pending&search=&requester_id=
	g.GET("", func(c echo.Context) error {
		list, err := reqs.List(c.Request().Context(), requestService.Filter{
			Status:      c.QueryParam("status"),
			Search:      c.QueryParam("search"),
			RequesterID: api.QueryID(c, "requester_id"),
		})
		if err != nil {
			return api.Error(c, log, err, "solicitações")
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/counts", func(c echo.Context) error {
		counts, err := reqs.Counts(c.Request().Context())
		if err != nil {
			return api.Error(c, log, err, "solicitações")
		}
		return c.JSON(http.StatusOK, counts)
	})

	g.POST("", func(c echo.Context) error {
		var in requestService.CreateInput
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		if sess, ok := auth.CurrentSession(c); ok {
			in.RequesterID = sess.UserID
			if in.RequesterName == "" {
				in.RequesterName = sess.Name
			}
		}
		req, err := reqs.Create(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, log, err, "solicitação")
		}
		return c.JSON(http.StatusCreated, req)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		req, err := reqs.Get(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, log, err, "solicitação")
		}
		return c.JSON(http.StatusOK, req)
	})

	g.POST("/:id/approve", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		req, err := reqs.Approve(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, log, err, "solicitação")
		}
		return c.JSON(http.StatusOK, req)
	}, review)

	g.POST("/:id/reject", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var body struct {
			Reason string `json:"reason"`
		}
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, err)
		}
		req, err := reqs.Reject(c.Request().Context(), id, body.Reason)
		if err != nil {
			return api.Error(c, log, err, "solicitação")
		}
		return c.JSON(http.StatusOK, req)
	}, review)

	// POST /api/requests/:id/fulfill {"supervisor":"...","signature":"..."}
	g.POST("/:id/fulfill", func(c echo.Context) error {
		id, err := api.ParamID(c)
		if err != nil {
			return api.BadRequest(c, err)
		}
		var in requestService.FulfillInput
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, err)
		}
		req, rec, err := reqs.Fulfill(c.Request().Context(), id, in)
		if err != nil {
			return api.Error(c, log, err, "solicitação")
		}
		a.Alerts.Invalidate(c.Request().Context())
		return c.JSON(http.StatusOK, echo.Map{"request": req, "delivery": rec})
	}, review)
}
