package html

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/api/apitest"
	"focolog/model/entity"
	"focolog/service/delivery"
	"focolog/service/users"
)

func TestFichaPages(t *testing.T) {
	a := apitest.NewApp(t)
	ctx := context.Background()

	u, err := a.Users.Create(ctx, users.Input{Name: "Ana Costa", Email: "ana@focolog.com", Role: entity.RoleSupervisor, CPF: "529.982.247-25", Department: "Produção"})
	require.NoError(t, err)
	expired := entity.NewDate(time.Now().AddDate(0, 0, -3))
	item, err := a.Repos.Inventory.Create(ctx, &entity.InventoryItem{Name: "Luva", Type: entity.ItemTypeEPI, Size: "G", Quantity: 10, MinStock: 1, CANumber: "15532", CAExpiryDate: &expired})
	require.NoError(t, err)
	rec, err := a.Deliveries.Deliver(ctx, delivery.Input{
		EmployeeID: u.ID, EmployeeName: u.Name, Supervisor: "Carlos", Signature: "Ana Costa",
		Items: []entity.RequestItem{{ItemID: item.ID, ItemName: "Luva", Size: "G", Quantity: 2}},
	})
	require.NoError(t, err)

	e := echo.New()
	registerPages(e, a)

	res := apitest.Do(e, http.MethodGet, "/ficha/"+strconv.FormatInt(u.ID, 10), nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	body := res.Body.String()
	assert.Contains(t, body, "Ficha de Controle de EPI")
	assert.Contains(t, body, "Ana Costa")
	assert.Contains(t, body, "529.982.247-25")
	assert.Contains(t, body, "15532")
	assert.Contains(t, body, "CA vencido")
	assert.Contains(t, body, expired.Format("02/01/2006"))
	assert.Contains(t, body, "2x Luva (G)")

	res = apitest.Do(e, http.MethodGet, "/ficha/entrega/"+strconv.FormatInt(rec.ID, 10), nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Contains(t, res.Body.String(), "Comprovante de Entrega de EPI #"+strconv.FormatInt(rec.ID, 10))

	assert.Equal(t, http.StatusNotFound, apitest.Do(e, http.MethodGet, "/ficha/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, apitest.Do(e, http.MethodGet, "/ficha/x", nil).Code)
	assert.Equal(t, http.StatusNotFound, apitest.Do(e, http.MethodGet, "/ficha/entrega/999", nil).Code)
}

func TestFormatDate(t *testing.T) {
	d := entity.NewDate(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "09/03/2024", formatDate(d))
	assert.Equal(t, "09/03/2024", formatDate(&d))
	assert.Equal(t, "", formatDate((*entity.Date)(nil)))
	assert.Equal(t, "", formatDate(time.Time{}))
}
