package custom

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/api"
	"focolog/api/apitest"
	"focolog/cron"
	"focolog/graphql"
	gqlregistry "focolog/graphql/registry"
	"focolog/model/entity"
)

func TestLowStock(t *testing.T) {
	a := apitest.NewApp(t)
	ctx := context.Background()
	for _, it := range []entity.InventoryItem{
		{Name: "Avental", Type: entity.ItemTypeEPI, Quantity: 9, MinStock: 10},
		{Name: "Bota", Type: entity.ItemTypeEPI, Quantity: 1, MinStock: 10},
		{Name: "Capacete", Type: entity.ItemTypeEPI, Quantity: 30, MinStock: 10},
	} {
		it := it
		_, err := a.Repos.Inventory.Create(ctx, &it)
		require.NoError(t, err)
	}

	got, err := LowStock(ctx, a)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bota", got[0].Name)
	assert.Equal(t, 19, got[0].Suggested)
	assert.Equal(t, "Avental", got[1].Name)
	assert.Equal(t, 11, got[1].Suggested)

	out, err := gqlregistry.Resolve(graphql.WithApp(ctx, a), "lowStock", nil)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	require.NoError(t, cron.RunJob(ctx, a, "lowstockdigest"))
}

func TestInfoRoute(t *testing.T) {
	a := apitest.NewApp(t)
	e := echo.New()
	api.ApplyRoutes(e, a)

	rec := apitest.Do(e, http.MethodGet, "/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var info struct {
		App  string   `json:"app"`
		Jobs []string `json:"jobs"`
	}
	apitest.Decode(t, rec, &info)
	assert.Equal(t, "FocoLog", info.App)
	assert.Contains(t, info.Jobs, "lowstockdigest")
}
