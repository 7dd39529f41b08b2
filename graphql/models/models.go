// Package models holds the GraphQL view types. Field names match the
// schema through graphql-go field resolvers.
package models

import (
	gql "github.com/graph-gophers/graphql-go"
)

type Stats struct {
	TotalItems      int32
	PendingRequests int32
	MonthlyCost     float64
	ActiveUsers     int32
}

type AlertCounts struct {
	Critical int32
	Warning  int32
	Expired  int32
	Total    int32
}

type Alert struct {
	ID       gql.ID
	Kind     string
	Title    string
	Detail   string
	Severity string
}

type AlertSnapshot struct {
	GeneratedAt string
	Counts      *AlertCounts
	Alerts      []*Alert
}

type InventoryItem struct {
	ID                        gql.ID
	Name                      string
	Type                      string
	Category                  string
	Size                      string
	Quantity                  int32
	MinStock                  int32
	UnitCost                  float64
	Supplier                  string
	CostCenter                string
	CANumber                  *string
	CAExpiryDate              *string
	StockStatus               string
	CAStatus                  *string
	DaysUntilCAExpiry         *int32
	SuggestedPurchaseQuantity int32
}

type CategorySummary struct {
	Category   string
	Items      int32
	Units      int32
	LowStock   int32
	StockValue float64
}
