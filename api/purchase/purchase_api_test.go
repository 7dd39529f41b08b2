package purchase

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/api/apitest"
	"focolog/model/entity"
)

func TestPurchaseFlow(t *testing.T) {
	a := apitest.NewApp(t)
	e := apitest.Serve(a, entity.RolePurchasing, RegisterPurchaseRoutes)
	ctx := context.Background()

	item, err := a.Repos.Inventory.Create(ctx, &entity.InventoryItem{Name: "Máscara PFF2", Type: entity.ItemTypeEPI,
		Quantity: 4, MinStock: 10, UnitCost: decimal.NewFromInt(3)})
	require.NoError(t, err)
	sp, err := a.Repos.Suppliers.Create(ctx, &entity.Supplier{Name: "Seg Max"})
	require.NoError(t, err)

	rec := apitest.Do(e, http.MethodPost, "/api/purchase-orders", map[string]interface{}{"item_id": item.ID, "supplier_id": sp.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var po entity.PurchaseOrder
	apitest.Decode(t, rec, &po)
	assert.Equal(t, 16, po.Quantity)
	assert.True(t, decimal.NewFromInt(48).Equal(po.EstimatedCost))

	path := fmt.Sprintf("/api/purchase-orders/%d", po.ID)
	assert.Equal(t, http.StatusConflict, apitest.Do(e, http.MethodPost, path+"/order", nil).Code)
	assert.Equal(t, http.StatusOK, apitest.Do(e, http.MethodPost, path+"/approve", nil).Code)
	assert.Equal(t, http.StatusOK, apitest.Do(e, http.MethodPost, path+"/order", nil).Code)
	assert.Equal(t, http.StatusNotFound, apitest.Do(e, http.MethodPost, "/api/purchase-orders/999/approve", nil).Code)
}

func TestApprovalNeedsPurchasingRole(t *testing.T) {
	a := apitest.NewApp(t)
	e := apitest.Serve(a, entity.RoleSupervisor, RegisterPurchaseRoutes)
	assert.Equal(t, http.StatusForbidden, apitest.Do(e, http.MethodPost, "/api/purchase-orders/1/approve", nil).Code)
}
