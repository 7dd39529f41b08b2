package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/model/entity"
)

func TestImportStock(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	luvaP := mustCreate(t, s, ItemInput{Name: "Luva", Type: entity.ItemTypeEPI, Size: "P", Quantity: 5, MinStock: 2})
	luvaG := mustCreate(t, s, ItemInput{Name: "Luva", Type: entity.ItemTypeEPI, Size: "G", Quantity: 5, MinStock: 2})
	bota := mustCreate(t, s, ItemInput{Name: "Bota", Type: entity.ItemTypeEPI, Size: "42", Quantity: 3, MinStock: 1})

	res, err := s.ImportStock(ctx, []StockLine{
		{Name: "luva", Size: "g", Quantity: 12},
		{ItemID: bota.ID, Quantity: 3},
		{Name: "Capacete", Quantity: 4},
		{Name: "Luva", Size: "P", Quantity: -1},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Unchanged)
	assert.Equal(t, 2, res.Skipped)
	assert.Len(t, res.Warnings, 2)

	got, err := s.Get(ctx, luvaG.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)
	got, err = s.Get(ctx, luvaP.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)

	mvs, err := s.Movements(ctx, luvaG.ID)
	require.NoError(t, err)
	require.Len(t, mvs, 1)
	assert.Equal(t, entity.MovementAdjust, mvs[0].Kind)
	assert.Equal(t, 7, mvs[0].Quantity)
	assert.Equal(t, "importação de estoque", mvs[0].Reference)
}

func TestImportStock_RepeatedLines(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	bota := mustCreate(t, s, ItemInput{Name: "Bota", Type: entity.ItemTypeEPI, Size: "42", Quantity: 10, MinStock: 1})

	res, err := s.ImportStock(ctx, []StockLine{
		{ItemID: bota.ID, Quantity: 20},
		{Name: "bota", Size: "42", Quantity: 10},
		{ItemID: bota.ID, Quantity: 10},
	}, "inventário")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Unchanged)

	got, err := s.Get(ctx, bota.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	mvs, err := s.Movements(ctx, bota.ID)
	require.NoError(t, err)
	require.Len(t, mvs, 2)
	deltas := []int{mvs[0].Quantity, mvs[1].Quantity}
	assert.ElementsMatch(t, []int{10, -10}, deltas)
}

func TestImportStock_AmbiguousName(t *testing.T) {
	s, _ := newTestService(t)
	mustCreate(t, s, ItemInput{Name: "Luva", Type: entity.ItemTypeEPI, Size: "P", Quantity: 5})
	mustCreate(t, s, ItemInput{Name: "Luva", Type: entity.ItemTypeEPI, Size: "G", Quantity: 5})

	res, err := s.ImportStock(context.Background(), []StockLine{{Name: "Luva", Quantity: 9}}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "several sizes")
}

func TestCheckAvailability(t *testing.T) {
	s, _ := newTestService(t)
	bota := mustCreate(t, s, ItemInput{Name: "Bota", Type: entity.ItemTypeEPI, Size: "42", Quantity: 3, MinStock: 4})

	got, err := s.CheckAvailability(context.Background(), []StockLine{
		{ItemID: bota.ID, Quantity: 2},
		{Name: "bota", Quantity: 5},
		{Name: "Óculos", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Enough)
	assert.Equal(t, StockLow, got[0].StockStatus)
	assert.False(t, got[1].Enough)
	assert.Equal(t, 3, got[1].Available)
	assert.Equal(t, "Bota", got[1].ItemName)
	assert.False(t, got[2].Found)
}
