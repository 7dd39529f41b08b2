// Package purchase creates and advances replenishment orders.
package purchase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
	"focolog/service/inventory"
)

var next = map[string]string{
	entity.PurchasePending:  entity.PurchaseApproved,
	entity.PurchaseApproved: entity.PurchaseOrdered,
}

type Service struct {
	repos  *repository.Repositories
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repos *repository.Repositories, logger *zap.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repos: repos, logger: logger, now: now}
}

// Input creates an order for an item. A zero Quantity means the suggested
// quantity.
type Input struct {
	ItemID     int64  `json:"item_id"`
	Quantity   int    `json:"quantity"`
	SupplierID int64  `json:"supplier_id"`
	Notes      string `json:"notes"`
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.PurchaseOrder, error) {
	if in.Quantity < 0 {
		return nil, service.Invalid("quantity", "must not be negative")
	}
	if in.SupplierID == 0 {
		return nil, service.Invalid("supplier_id", "is required")
	}
	item, err := s.repos.Inventory.Get(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	sp, err := s.repos.Suppliers.Get(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	qty := in.Quantity
	if qty == 0 {
		qty = inventory.SuggestedQuantity(*item)
	}
	if qty == 0 {
		return nil, service.Invalid("quantity", "stock of %q is already above twice the minimum", item.Name)
	}
	po, err := s.repos.PurchaseOrders.Create(ctx, &entity.PurchaseOrder{
		ItemID:        item.ID,
		ItemName:      item.Name,
		Quantity:      qty,
		SupplierID:    sp.ID,
		SupplierName:  sp.Name,
		Status:        entity.PurchasePending,
		EstimatedCost: item.UnitCost.Mul(decimal.NewFromInt(int64(qty))),
		Notes:         in.Notes,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("purchase order created",
		zap.Int64("order_id", po.ID),
		zap.String("item", po.ItemName),
		zap.Int("quantity", po.Quantity),
		zap.String("estimated_cost", po.EstimatedCost.StringFixed(2)))
	return po, nil
}

// List returns orders, newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]entity.PurchaseOrder, error) {
	opts := rowstore.ListOptions{}
	if status != "" && status != "all" {
		opts.Filters = map[string]string{"status": status}
	}
	pos, err := s.repos.PurchaseOrders.All(ctx, opts)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pos, func(i, j int) bool { return pos[i].CreatedAt.After(pos[j].CreatedAt) })
	return pos, nil
}

// Advance moves an order to status; only pending→approved→ordered is allowed.
func (s *Service) Advance(ctx context.Context, id int64, status string) (*entity.PurchaseOrder, error) {
	po, err := s.repos.PurchaseOrders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if next[po.Status] != status {
		return nil, service.Transition(po.Status, status)
	}
	return s.repos.PurchaseOrders.Update(ctx, id, rowstore.Row{"status": status})
}

func (s *Service) Approve(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return s.Advance(ctx, id, entity.PurchaseApproved)
}

func (s *Service) MarkOrdered(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return s.Advance(ctx, id, entity.PurchaseOrdered)
}
