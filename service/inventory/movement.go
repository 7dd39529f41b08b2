package inventory

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/service"
)

// Adjustment changes an item's quantity. For "in" and "out" Quantity is the
// amount moved; for "adjust" it is the new absolute quantity.
type Adjustment struct {
	Kind       string `json:"kind"`
	Quantity   int    `json:"quantity"`
	Reference  string `json:"reference"`
	CostCenter string `json:"cost_center"`
}

// Adjust applies adj to item id and records the movement. An "adjust"
// movement stores the signed difference.
func (s *Service) Adjust(ctx context.Context, id int64, adj Adjustment) (*entity.InventoryItem, *entity.StockMovement, error) {
	item, err := s.repos.Inventory.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	newQty, moved, err := applyAdjustment(item.Quantity, adj)
	if err != nil {
		return nil, nil, err
	}
	updated, err := s.repos.Inventory.Update(ctx, id, rowstore.Row{
		"quantity":     newQty,
		"last_updated": s.now(),
	})
	if err != nil {
		return nil, nil, err
	}
	mv, err := s.recordMovement(ctx, *item, adj.Kind, moved, adj.Reference, adj.CostCenter)
	if err != nil {
		return updated, nil, err
	}
	return updated, mv, nil
}

func applyAdjustment(current int, adj Adjustment) (newQty, moved int, err error) {
	switch adj.Kind {
	case entity.MovementIn:
		if adj.Quantity <= 0 {
			return 0, 0, service.Invalid("quantity", "must be positive")
		}
		return current + adj.Quantity, adj.Quantity, nil
	case entity.MovementOut:
		if adj.Quantity <= 0 {
			return 0, 0, service.Invalid("quantity", "must be positive")
		}
		if adj.Quantity > current {
			return 0, 0, service.Invalid("quantity", "insufficient stock: %d available, %d requested", current, adj.Quantity)
		}
		return current - adj.Quantity, adj.Quantity, nil
	case entity.MovementAdjust:
		if adj.Quantity < 0 {
			return 0, 0, service.Invalid("quantity", "must not be negative")
		}
		return adj.Quantity, adj.Quantity - current, nil
	}
	return 0, 0, service.Invalid("kind", "must be in, out or adjust")
}

func (s *Service) recordMovement(ctx context.Context, item entity.InventoryItem, kind string, qty int, ref, costCenter string) (*entity.StockMovement, error) {
	if costCenter == "" {
		costCenter = item.CostCenter
	}
	return s.repos.Movements.Create(ctx, &entity.StockMovement{
		ItemID:     item.ID,
		ItemName:   item.Name,
		Kind:       kind,
		Quantity:   qty,
		Reference:  ref,
		CostCenter: costCenter,
		UnitCost:   item.UnitCost,
		CreatedAt:  s.now(),
	})
}

// Movements lists an item's movements, newest first.
func (s *Service) Movements(ctx context.Context, itemID int64) ([]entity.StockMovement, error) {
	mvs, err := s.repos.Movements.FindBy(ctx, "item_id", strconv.FormatInt(itemID, 10))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(mvs, func(i, j int) bool { return mvs[i].CreatedAt.After(mvs[j].CreatedAt) })
	return mvs, nil
}

// Issue takes lines out of stock for a delivery. Every line is checked
// before any quantity changes. Lines without item_id are matched by name
// and size.
func (s *Service) Issue(ctx context.Context, lines []entity.RequestItem, reference, costCenter string) ([]entity.RequestItem, error) {
	if len(lines) == 0 {
		return nil, service.Invalid("items", "at least one item is required")
	}
	type issue struct {
		item *entity.InventoryItem
		qty  int
	}
	plan := make([]*issue, 0, len(lines))
	byID := map[int64]*issue{}
	resolved := make([]entity.RequestItem, 0, len(lines))
	idx, err := s.lookup(ctx)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, service.Invalid("quantity", "must be positive for %q", line.ItemName)
		}
		item, err := s.resolve(ctx, idx, line)
		if err != nil {
			return nil, err
		}
		is, ok := byID[item.ID]
		if !ok {
			is = &issue{item: item}
			byID[item.ID] = is
			plan = append(plan, is)
		}
		is.qty += line.Quantity
		line.ItemID, line.ItemName = item.ID, item.Name
		if line.Size == "" {
			line.Size = item.Size
		}
		resolved = append(resolved, line)
	}
	for _, is := range plan {
		if is.qty > is.item.Quantity {
			return nil, service.Invalid("quantity", "insufficient stock for %q: %d available, %d requested", is.item.Name, is.item.Quantity, is.qty)
		}
	}
	for _, is := range plan {
		if _, _, err := s.Adjust(ctx, is.item.ID, Adjustment{
			Kind:       entity.MovementOut,
			Quantity:   is.qty,
			Reference:  reference,
			CostCenter: costCenter,
		}); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func (s *Service) resolve(ctx context.Context, idx *itemIndex, line entity.RequestItem) (*entity.InventoryItem, error) {
	if line.ItemID > 0 {
		return s.repos.Inventory.Get(ctx, line.ItemID)
	}
	if strings.TrimSpace(line.ItemName) == "" {
		return nil, service.Invalid("item_name", "item_id or item_name is required")
	}
	item, err := idx.find(0, line.ItemName, line.Size)
	switch {
	case errors.Is(err, errItemAmbiguous):
		return nil, service.Invalid("size", "%q exists in several sizes, size is required", line.ItemName)
	case err != nil:
		if line.Size != "" {
			return nil, service.Invalid("item_name", "unknown item %q size %q", line.ItemName, line.Size)
		}
		return nil, service.Invalid("item_name", "unknown item %q", line.ItemName)
	}
	return &item, nil
}
