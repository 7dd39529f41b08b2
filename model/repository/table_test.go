package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/config"
	"focolog/core/rowstore"
	"focolog/core/rowstore/rowstoretest"
	"focolog/model/entity"
)

func TestDecode_HostedStringValues(t *testing.T) {
	row := rowstore.Row{
		"id":             "7",
		"name":           "Capacete",
		"type":           map[string]interface{}{"id": 1, "value": "epi", "color": "blue"},
		"quantity":       "12",
		"min_stock":      "10.00",
		"unit_cost":      "25.90",
		"ca_number":      "CA-12345",
		"ca_expiry_date": "2025-03-01",
		"last_updated":   "2024-02-01T10:00:00Z",
	}
	var item entity.InventoryItem
	require.NoError(t, Decode(row, &item))

	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, "epi", item.Type)
	assert.Equal(t, 12, item.Quantity)
	assert.Equal(t, 10, item.MinStock)
	assert.True(t, decimal.RequireFromString("25.90").Equal(item.UnitCost))
	require.NotNil(t, item.CAExpiryDate)
	assert.Equal(t, "2025-03-01", item.CAExpiryDate.String())
	assert.Equal(t, 2024, item.LastUpdated.Year())
}

func TestDecode_EmptyOptionalDate(t *testing.T) {
	var item entity.InventoryItem
	require.NoError(t, Decode(rowstore.Row{"ca_expiry_date": "", "unit_cost": ""}, &item))
	assert.Nil(t, item.CAExpiryDate)
	assert.True(t, item.UnitCost.IsZero())
}

func TestEncode_DeliveryItemsAsText(t *testing.T) {
	d := &entity.DeliveryRecord{
		ID:           3,
		EmployeeName: "Ana",
		Items:        []entity.RequestItem{{ItemID: 1, ItemName: "Luvas", Quantity: 2, Size: "M"}},
		DeliveryDate: entity.MustDate("2024-05-02"),
	}
	row, err := Encode(d)
	require.NoError(t, err)
	assert.NotContains(t, row, "id")
	assert.IsType(t, "", row["items"])
	assert.Equal(t, "2024-05-02", row["delivery_date"])

	var back entity.DeliveryRecord
	require.NoError(t, Decode(row, &back))
	require.Len(t, back.Items, 1)
	assert.Equal(t, "Luvas", back.Items[0].ItemName)
}

func TestEncode_RequestDropsItems(t *testing.T) {
	row, err := Encode(&entity.Request{RequesterName: "Ana", Items: []entity.RequestItem{{ItemName: "x"}}})
	require.NoError(t, err)
	assert.NotContains(t, row, "items")
}

func TestTable_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := New(rowstoretest.NewLocalStore(t), config.BaserowConfig{})
	assert.Equal(t, rowstore.TableID(723), repos.Suppliers.ID())

	created, err := repos.Suppliers.Create(ctx, &entity.Supplier{Name: "Protege Ltda", ContactInfo: "vendas@protege.com"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	updated, err := repos.Suppliers.Update(ctx, created.ID, rowstore.Row{"average_rating": 4.5, "total_reviews": 2})
	require.NoError(t, err)
	assert.Equal(t, "Protege Ltda", updated.Name)
	assert.Equal(t, 4.5, updated.AverageRating)

	found, err := repos.Suppliers.FindBy(ctx, "name", "Protege Ltda")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, repos.Suppliers.Delete(ctx, created.ID))
	_, err = repos.Suppliers.Get(ctx, created.ID)
	assert.ErrorIs(t, err, rowstore.ErrNotFound)
}

func TestTable_ListCount(t *testing.T) {
	ctx := context.Background()
	repos := New(rowstoretest.NewLocalStore(t), config.BaserowConfig{})
	for i := 0; i < 3; i++ {
		_, err := repos.Movements.Create(ctx, &entity.StockMovement{ItemID: 1, Kind: entity.MovementIn, Quantity: i + 1, CreatedAt: time.Now()})
		require.NoError(t, err)
	}
	page, count, err := repos.Movements.List(ctx, rowstore.ListOptions{Size: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, 3, count)
}
