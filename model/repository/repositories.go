package repository

import (
	"focolog/config"
	"focolog/core/rowstore"
	"focolog/model/entity"
)

// Repositories bundles one typed table per entity.
type Repositories struct {
	Store rowstore.Store

	Users           *Table[entity.User]
	CostCenters     *Table[entity.CostCenter]
	Inventory       *Table[entity.InventoryItem]
	Requests        *Table[entity.Request]
	RequestItems    *Table[entity.RequestItem]
	Suppliers       *Table[entity.Supplier]
	SupplierReviews *Table[entity.SupplierReview]
	Trainings       *Table[entity.Training]
	Deliveries      *Table[entity.DeliveryRecord]
	ActionPlans     *Table[entity.ActionPlan]
	PurchaseOrders  *Table[entity.PurchaseOrder]
	InventoryCounts *Table[entity.InventoryCount]
	Maintenance     *Table[entity.ItemMaintenance]
	Movements       *Table[entity.StockMovement]
}

// New resolves table identifiers from cfg.
func New(store rowstore.Store, cfg config.BaserowConfig) *Repositories {
	id := func(name string) rowstore.TableID { return rowstore.TableID(cfg.TableID(name)) }
	return &Repositories{
		Store:           store,
		Users:           NewTable[entity.User](store, config.TableUsers, id(config.TableUsers)),
		CostCenters:     NewTable[entity.CostCenter](store, config.TableCostCenters, id(config.TableCostCenters)),
		Inventory:       NewTable[entity.InventoryItem](store, config.TableInventoryItems, id(config.TableInventoryItems)),
		Requests:        NewTable[entity.Request](store, config.TableRequests, id(config.TableRequests)),
		RequestItems:    NewTable[entity.RequestItem](store, config.TableRequestItems, id(config.TableRequestItems)),
		Suppliers:       NewTable[entity.Supplier](store, config.TableSuppliers, id(config.TableSuppliers)),
		SupplierReviews: NewTable[entity.SupplierReview](store, config.TableSupplierReviews, id(config.TableSupplierReviews)),
		Trainings:       NewTable[entity.Training](store, config.TableTrainings, id(config.TableTrainings)),
		Deliveries:      NewTable[entity.DeliveryRecord](store, config.TableDeliveryRecords, id(config.TableDeliveryRecords)),
		ActionPlans:     NewTable[entity.ActionPlan](store, config.TableActionPlans, id(config.TableActionPlans)),
		PurchaseOrders:  NewTable[entity.PurchaseOrder](store, config.TablePurchaseOrders, id(config.TablePurchaseOrders)),
		InventoryCounts: NewTable[entity.InventoryCount](store, config.TableInventoryCounts, id(config.TableInventoryCounts)),
		Maintenance:     NewTable[entity.ItemMaintenance](store, config.TableMaintenance, id(config.TableMaintenance)),
		Movements:       NewTable[entity.StockMovement](store, config.TableStockMovements, id(config.TableStockMovements)),
	}
}
