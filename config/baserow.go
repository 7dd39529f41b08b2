package config

import "strings"

// Logical table names. Values of BaserowConfig.Tables are keyed by these.
const (
	TableUsers           = "users"
	TableInventoryItems  = "inventory_items"
	TableRequests        = "requests"
	TableRequestItems    = "request_items"
	TableCostCenters     = "cost_centers"
	TableSuppliers       = "suppliers"
	TableTrainings       = "trainings"
	TableDeliveryRecords = "delivery_records"
	TableSupplierReviews = "supplier_reviews"
	TableActionPlans     = "action_plans"
	TablePurchaseOrders  = "purchase_orders"
	TableInventoryCounts = "inventory_counts"
	TableMaintenance     = "item_maintenance"
	TableStockMovements  = "stock_movements"
)

// DefaultTableIDs are the table identifiers of the FocoLog database.
var DefaultTableIDs = map[string]int{
	TableUsers:           718,
	TableInventoryItems:  719,
	TableRequests:        720,
	TableRequestItems:    721,
	TableCostCenters:     722,
	TableSuppliers:       723,
	TableTrainings:       724,
	TableDeliveryRecords: 725,
	TableSupplierReviews: 726,
	TableActionPlans:     727,
	TablePurchaseOrders:  728,
	TableInventoryCounts: 729,
	TableMaintenance:     730,
	TableStockMovements:  731,
}

type BaserowConfig struct {
	BaseURL    string
	Token      string
	DatabaseID int
	Tables     map[string]int
}

// TableID returns the configured identifier for a logical table name.
func (b BaserowConfig) TableID(name string) int {
	if id, ok := b.Tables[name]; ok {
		return id
	}
	return DefaultTableIDs[name]
}

// loadBaserow reads BASEROW_* variables. Table IDs can be overridden one by
// one, e.g. BASEROW_TABLE_INVENTORY_ITEMS=901.
func loadBaserow() BaserowConfig {
	tables := make(map[string]int, len(DefaultTableIDs))
	for name, id := range DefaultTableIDs {
		tables[name] = getEnvInt("BASEROW_TABLE_"+strings.ToUpper(name), id)
	}
	return BaserowConfig{
		BaseURL:    strings.TrimRight(GetEnv("BASEROW_URL", "https://api.baserow.io"), "/"),
		Token:      GetEnv("BASEROW_TOKEN", ""),
		DatabaseID: getEnvInt("BASEROW_DATABASE_ID", 178),
		Tables:     tables,
	}
}
