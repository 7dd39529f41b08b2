package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ItemTypeEPI     = "epi"
	ItemTypeUniform = "uniform"
)

// InventoryItem is a PPE or uniform stock line.
type InventoryItem struct {
	ID           int64           `json:"id,omitempty"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	MinStock     int             `json:"min_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Supplier     string          `json:"supplier"`
	CostCenter   string          `json:"cost_center"`
	CANumber     string          `json:"ca_number"`
	CAExpiryDate *Date           `json:"ca_expiry_date"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// StockValue is quantity times unit cost.
func (i InventoryItem) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

const (
	MovementIn     = "in"
	MovementOut    = "out"
	MovementAdjust = "adjust"
)

// StockMovement records a quantity change on an item.
type StockMovement struct {
	ID         int64           `json:"id,omitempty"`
	ItemID     int64           `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Kind       string          `json:"kind"`
	Quantity   int             `json:"quantity"`
	Reference  string          `json:"reference"`
	CostCenter string          `json:"cost_center"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Total is quantity times unit cost.
func (m StockMovement) Total() decimal.Decimal {
	return m.UnitCost.Mul(decimal.NewFromInt(int64(m.Quantity)))
}

// InventoryCount is one divergent line of a physical count.
type InventoryCount struct {
	ID              int64  `json:"id,omitempty"`
	ItemID          int64  `json:"item_id"`
	ItemName        string `json:"item_name"`
	SystemQuantity  int    `json:"system_quantity"`
	CountedQuantity int    `json:"counted_quantity"`
	Divergence      int    `json:"divergence"`
	UserID          int64  `json:"user_id"`
	Date            Date   `json:"date"`
}

// ItemMaintenance is a maintenance entry for a durable item.
type ItemMaintenance struct {
	ID                  int64           `json:"id,omitempty"`
	ItemID              int64           `json:"item_id"`
	MaintenanceDate     Date            `json:"maintenance_date"`
	Cost                decimal.Decimal `json:"cost"`
	Description         string          `json:"description"`
	NextMaintenanceDate *Date           `json:"next_maintenance_date"`
}
