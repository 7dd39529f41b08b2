package stock

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/api/apitest"
	"focolog/model/entity"
)

func TestStockImport(t *testing.T) {
	a := apitest.NewApp(t)
	item, err := a.Repos.Inventory.Create(context.Background(), &entity.InventoryItem{Name: "Luva", Type: entity.ItemTypeEPI, Size: "G", Quantity: 2, MinStock: 5})
	require.NoError(t, err)

	e := apitest.Serve(a, entity.RolePurchasing, RegisterStockRoutes)
	rec := apitest.Do(e, http.MethodPost, "/api/stock/import", map[string]interface{}{
		"items": []map[string]interface{}{
			{"name": "Luva", "size": "G", "quantity": 20},
			{"name": "Desconhecido", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
	}
	apitest.Decode(t, rec, &out)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 1, out.Skipped)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Duration-ms"))

	got, err := a.Repos.Inventory.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Quantity)

	rec = apitest.Do(e, http.MethodPost, "/api/stock/import", map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e = apitest.Serve(a, entity.RoleHR, RegisterStockRoutes)
	rec = apitest.Do(e, http.MethodPost, "/api/stock/import", map[string]interface{}{
		"items": []map[string]interface{}{{"name": "Luva", "quantity": 1}},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
