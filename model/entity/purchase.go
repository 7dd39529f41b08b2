package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PurchasePending  = "pending"
	PurchaseApproved = "approved"
	PurchaseOrdered  = "ordered"
)

// PurchaseOrder is a replenishment order for an inventory item.
type PurchaseOrder struct {
	ID            int64           `json:"id,omitempty"`
	ItemID        int64           `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	SupplierID    int64           `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	Status        string          `json:"status"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}
