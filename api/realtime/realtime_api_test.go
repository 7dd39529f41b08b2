package realtime

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/api/apitest"
	"focolog/model/entity"
)

func TestAvailability(t *testing.T) {
	a := apitest.NewApp(t)
	item, err := a.Repos.Inventory.Create(context.Background(), &entity.InventoryItem{Name: "Bota", Type: entity.ItemTypeEPI, Size: "42", Quantity: 3, MinStock: 1})
	require.NoError(t, err)
	e := apitest.Serve(a, entity.RoleSupervisor, RegisterRealtimeRoutes)

	rec := apitest.Do(e, http.MethodPost, "/api/realtime/availability", map[string]interface{}{
		"items": []map[string]interface{}{
			{"name": "bota", "size": "42", "quantity": 2},
			{"item_id": item.ID, "quantity": 4},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Enough bool `json:"enough"`
		Items  []struct {
			Enough    bool `json:"enough"`
			Available int  `json:"available"`
		} `json:"items"`
	}
	apitest.Decode(t, rec, &out)
	assert.False(t, out.Enough)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Enough)
	assert.False(t, out.Items[1].Enough)
	assert.Equal(t, 3, out.Items[1].Available)

	rec = apitest.Do(e, http.MethodGet, "/api/realtime/stock?item_id="+strconv.FormatInt(item.ID, 10), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var one struct {
		ItemName    string `json:"item_name"`
		StockStatus string `json:"stock_status"`
	}
	apitest.Decode(t, rec, &one)
	assert.Equal(t, "Bota", one.ItemName)
	assert.Equal(t, "normal", one.StockStatus)

	rec = apitest.Do(e, http.MethodGet, "/api/realtime/stock?name=Capacete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = apitest.Do(e, http.MethodGet, "/api/realtime/stock", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
