package html

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/service/delivery"
)

func init() {
	api.RegisterRoute(RegisterFichaHTMLRoutes)
}

type fichaPage struct {
	Employee    entity.User
	Holdings    []delivery.Holding
	Deliveries  []entity.DeliveryRecord
	GeneratedAt time.Time
}

type entregaPage struct {
	Delivery *entity.DeliveryRecord
}

// RegisterFichaHTMLRoutes mounts the printable pages behind the API auth.
func RegisterFichaHTMLRoutes(e *echo.Echo, a *app.App) {
	registerPages(e, a, auth.Middleware(a.Config.Auth, a.Sessions), auth.RequireRole(entity.RoleHR, entity.RoleSupervisor))
}

func registerPages(e *echo.Echo, a *app.App, m ...echo.MiddlewareFunc) {
	if e.Renderer == nil {
		e.Renderer = NewTemplate()
	}
	log := a.Logger

	// GET /ficha/:id prints the PPE record of employee :id
	e.GET("/ficha/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.String(http.StatusBadRequest, "Funcionário inválido")
		}
		ctx := c.Request().Context()
		u, err := a.Users.Get(ctx, id)
		if errors.Is(err, rowstore.ErrNotFound) {
			return c.String(http.StatusNotFound, "Funcionário não encontrado")
		}
		if err != nil {
			log.Error("ficha: load employee", zap.Int64("employee_id", id), zap.Error(err))
			return c.String(http.StatusInternalServerError, "Erro ao carregar ficha")
		}
		holdings, err := a.Deliveries.Holdings(ctx, id)
		if err != nil {
			log.Error("ficha: load holdings", zap.Int64("employee_id", id), zap.Error(err))
			return c.String(http.StatusInternalServerError, "Erro ao carregar ficha")
		}
		recs, err := a.Deliveries.List(ctx, id, "")
		if err != nil {
			log.Error("ficha: load deliveries", zap.Int64("employee_id", id), zap.Error(err))
			return c.String(http.StatusInternalServerError, "Erro ao carregar ficha")
		}
		return c.Render(http.StatusOK, "ficha.html", fichaPage{
			Employee:    u.Public(),
			Holdings:    holdings,
			Deliveries:  recs,
			GeneratedAt: time.Now(),
		})
	}, m...)

	// GET /ficha/entrega/:id prints one delivery receipt
	e.GET("/ficha/entrega/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.String(http.StatusBadRequest, "Entrega inválida")
		}
		rec, err := a.Deliveries.Get(c.Request().Context(), id)
		if errors.Is(err, rowstore.ErrNotFound) {
			return c.String(http.StatusNotFound, "Entrega não encontrada")
		}
		if err != nil {
			log.Error("ficha: load delivery", zap.Int64("delivery_id", id), zap.Error(err))
			return c.String(http.StatusInternalServerError, "Erro ao carregar entrega")
		}
		return c.Render(http.StatusOK, "entrega.html", entregaPage{Delivery: rec})
	}, m...)
}
