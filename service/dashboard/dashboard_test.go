package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"focolog/config"
	"focolog/core/cache"
	"focolog/core/rowstore/rowstoretest"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service/alert"
	"focolog/service/inventory"
	"focolog/service/request"
	"focolog/service/training"
)

var fixedNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func TestMonthStart(t *testing.T) {
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), MonthStart(fixedNow))
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(rowstoretest.NewLocalStore(t), config.BaserowConfig{})
	now := func() time.Time { return fixedNow }
	inv := inventory.NewService(repos, zap.NewNop(), inventory.WithClock(now))
	reqs := request.NewService(repos, nil, zap.NewNop(), now)
	alerts := alert.NewService(inv, training.NewService(repos, zap.NewNop(), 30, now), cache.NewCache(), zap.NewNop())
	svc := NewService(repos, inv, reqs, alerts, zap.NewNop())

	luva, err := inv.Create(ctx, inventory.ItemInput{Name: "Luva", Type: entity.ItemTypeEPI, Category: "Mãos",
		Quantity: 50, MinStock: 10, UnitCost: decimal.NewFromInt(3)})
	require.NoError(t, err)
	_, err = inv.Create(ctx, inventory.ItemInput{Name: "Bota", Type: entity.ItemTypeEPI, Category: "Pés",
		Quantity: 2, MinStock: 10, UnitCost: decimal.NewFromInt(90)})
	require.NoError(t, err)

	_, _, err = inv.Adjust(ctx, luva.ID, inventory.Adjustment{Kind: entity.MovementOut, Quantity: 10, CostCenter: "CC-001"})
	require.NoError(t, err)
	_, err = repos.Movements.Create(ctx, &entity.StockMovement{ItemID: luva.ID, Kind: entity.MovementOut, Quantity: 5,
		UnitCost: decimal.NewFromInt(3), CreatedAt: fixedNow.AddDate(0, -1, 0)})
	require.NoError(t, err)

	for _, u := range []entity.User{
		{Name: "Ana", Email: "ana@focolog.com", Role: entity.RoleAdmin, Active: true},
		{Name: "Bruno", Email: "bruno@focolog.com", Role: entity.RoleHR, Active: false},
	} {
		u := u
		_, err := repos.Users.Create(ctx, &u)
		require.NoError(t, err)
	}
	_, err = reqs.Create(ctx, request.CreateInput{RequesterID: 1, RequesterName: "Ana",
		Items: []entity.RequestItem{{ItemID: luva.ID, ItemName: "Luva", Quantity: 2, Size: "M"}}})
	require.NoError(t, err)

	ov, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, ov.Stats.TotalItems)
	assert.Equal(t, 1, ov.Stats.PendingRequests)
	assert.True(t, decimal.NewFromInt(30).Equal(ov.Stats.MonthlyCost), ov.Stats.MonthlyCost.String())
	assert.Equal(t, 1, ov.Stats.ActiveUsers)
	assert.Len(t, ov.RecentRequests, 1)
	assert.Len(t, ov.Inventory, 2)
	assert.Equal(t, 1, ov.Alerts.Critical)
}
