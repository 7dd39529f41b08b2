package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"focolog/config"
	"focolog/core/rowstore/rowstoretest"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *Service
	repos *repository.Repositories
	items map[string]*entity.InventoryItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := repository.New(rowstoretest.NewLocalStore(t), config.BaserowConfig{})
	f := &fixture{
		svc:   NewService(repos, zap.NewNop(), func() time.Time { return fixedNow }),
		repos: repos,
		items: map[string]*entity.InventoryItem{},
	}
	for _, item := range []entity.InventoryItem{
		{Name: "Luva", Type: entity.ItemTypeEPI, Quantity: 100, UnitCost: decimal.RequireFromString("2.50"), CostCenter: "CC-001", CANumber: "12345"},
		{Name: "Capacete", Type: entity.ItemTypeEPI, Quantity: 10, UnitCost: decimal.NewFromInt(40), CostCenter: "CC-002", CANumber: "67890"},
		{Name: "Camiseta", Type: entity.ItemTypeUniform, Quantity: 30, UnitCost: decimal.NewFromInt(20)},
	} {
		item := item
		created, err := repos.Inventory.Create(ctx, &item)
		require.NoError(t, err)
		f.items[item.Name] = created
	}
	_, err := repos.CostCenters.Create(ctx, &entity.CostCenter{Code: "CC-001", Name: "Limpeza", Budget: decimal.NewFromInt(100), Active: true})
	require.NoError(t, err)
	return f
}

func (f *fixture) move(t *testing.T, name, kind string, qty int, cc string, at time.Time) {
	t.Helper()
	item := f.items[name]
	_, err := f.repos.Movements.Create(context.Background(), &entity.StockMovement{
		ItemID: item.ID, ItemName: item.Name, Kind: kind, Quantity: qty,
		CostCenter: cc, UnitCost: item.UnitCost, CreatedAt: at,
	})
	require.NoError(t, err)
}

func TestSince(t *testing.T) {
	from, err := Since(PeriodWeek, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC), from)

	from, err = Since("", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC), from)

	_, err = Since("decade", fixedNow)
	assert.True(t, service.IsValidation(err))
}

func TestConsumption(t *testing.T) {
	f := newFixture(t)
	f.move(t, "Luva", entity.MovementOut, 10, "CC-001", fixedNow.AddDate(0, 0, -2))
	f.move(t, "Luva", entity.MovementOut, 4, "CC-001", fixedNow.AddDate(0, 0, -1))
	f.move(t, "Capacete", entity.MovementOut, 1, "", fixedNow.AddDate(0, 0, -1))
	f.move(t, "Luva", entity.MovementIn, 50, "CC-001", fixedNow.AddDate(0, 0, -1))
	f.move(t, "Luva", entity.MovementOut, 99, "CC-001", fixedNow.AddDate(0, -2, 0))

	got, err := f.svc.Consumption(context.Background(), fixedNow.AddDate(0, -1, 0), "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CC-001", got[0].CostCenter)
	assert.Equal(t, 14, got[0].Quantity)
	assert.True(t, decimal.NewFromInt(35).Equal(got[0].Total), got[0].Total.String())
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, noCostCenter, got[1].CostCenter)

	only, err := f.svc.Consumption(context.Background(), fixedNow.AddDate(0, -1, 0), "CC-001")
	require.NoError(t, err)
	assert.Len(t, only, 1)
}

func TestCost(t *testing.T) {
	f := newFixture(t)
	f.move(t, "Luva", entity.MovementOut, 20, "CC-001", fixedNow.AddDate(0, 0, -3))
	f.move(t, "Luva", entity.MovementIn, 40, "CC-001", fixedNow.AddDate(0, 0, -3))

	rep, err := f.svc.Cost(context.Background(), fixedNow.AddDate(0, -1, 0), "")
	require.NoError(t, err)
	require.Len(t, rep.CostCenters, 3)

	var cc1 CostCenterCost
	for _, c := range rep.CostCenters {
		if c.CostCenter == "CC-001" {
			cc1 = c
		}
	}
	assert.True(t, decimal.NewFromInt(250).Equal(cc1.StockValue))
	assert.True(t, decimal.NewFromInt(50).Equal(cc1.Spend))
	assert.True(t, decimal.NewFromInt(100).Equal(cc1.Purchases))
	assert.Equal(t, 50.0, cc1.BudgetUsed)
	assert.True(t, decimal.NewFromInt(1250).Equal(rep.TotalStockValue), rep.TotalStockValue.String())
}

func TestESocialExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	maria, err := f.repos.Users.Create(ctx, &entity.User{Name: "Maria Silva", Email: "maria@focolog.com", Role: entity.RoleSupervisor, CPF: "123.456.789-00", Active: true})
	require.NoError(t, err)
	_, err = f.repos.Deliveries.Create(ctx, &entity.DeliveryRecord{
		EmployeeID: maria.ID, EmployeeName: "Maria Silva", DeliveryDate: entity.MustDate("2024-06-10"), Supervisor: "Ana",
		Items: []entity.RequestItem{
			{ItemID: f.items["Capacete"].ID, ItemName: "Capacete", Quantity: 1},
			{ItemID: f.items["Camiseta"].ID, ItemName: "Camiseta", Quantity: 2},
		},
	})
	require.NoError(t, err)
	_, err = f.repos.Deliveries.Create(ctx, &entity.DeliveryRecord{
		EmployeeName: "Antigo", DeliveryDate: entity.MustDate("2023-01-10"), Supervisor: "Ana",
		Items: []entity.RequestItem{{ItemID: f.items["Luva"].ID, ItemName: "Luva", Quantity: 1}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := f.svc.WriteESocial(ctx, fixedNow.AddDate(0, -1, 0), &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ESocialHeader, records[0])
	assert.Equal(t, []string{"10/06/2024", "Maria Silva", "123.456.789-00", "Capacete", "67890", "10/06/2024", ""}, records[1])
}

func TestConsumptionByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	maria, err := f.repos.Users.Create(ctx, &entity.User{Name: "Maria", Email: "maria@focolog.com", Role: entity.RoleSupervisor, Active: true})
	require.NoError(t, err)
	for _, d := range []entity.DeliveryRecord{
		{EmployeeID: maria.ID, EmployeeName: "Maria", DeliveryDate: entity.MustDate("2024-06-10"),
			Items: []entity.RequestItem{{ItemID: f.items["Capacete"].ID, Quantity: 1}}},
		{EmployeeName: "Visitante", DeliveryDate: entity.MustDate("2024-06-11"),
			Items: []entity.RequestItem{{ItemID: f.items["Luva"].ID, Quantity: 4}}},
	} {
		d := d
		_, err := f.repos.Deliveries.Create(ctx, &d)
		require.NoError(t, err)
	}

	got, err := f.svc.ConsumptionByRole(ctx, fixedNow.AddDate(0, -1, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entity.RoleSupervisor, got[0].Role)
	assert.True(t, decimal.NewFromInt(40).Equal(got[0].Cost))
	assert.Equal(t, noRole, got[1].Role)
	assert.Equal(t, 4, got[1].Quantity)
	assert.Equal(t, 1, got[1].Employees)
}

func TestGenerate(t *testing.T) {
	f := newFixture(t)
	rep, err := f.svc.Generate(context.Background(), Params{Type: TypeMovement, Period: PeriodQuarter})
	require.NoError(t, err)
	assert.Equal(t, "Movimentação de Estoque", rep.Title)
	assert.Equal(t, fixedNow.AddDate(0, -3, 0), rep.From)

	_, err = f.svc.Generate(context.Background(), Params{Type: "pdf"})
	assert.True(t, service.IsValidation(err))
}
