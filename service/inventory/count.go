package inventory

import (
	"context"
	"fmt"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/service"
)

// CountLine is the counted quantity of one item.
type CountLine struct {
	ItemID  int64 `json:"item_id"`
	Counted int   `json:"counted_quantity"`
}

type CountResult struct {
	Counted     int                     `json:"counted"`
	Divergences []entity.InventoryCount `json:"divergences"`
	Applied     bool                    `json:"applied"`
}

// SubmitCount compares counted quantities with the system and stores a
// record for each divergent item. With apply the counted quantities become
// the new stock, recorded as adjust movements.
func (s *Service) SubmitCount(ctx context.Context, userID int64, lines []CountLine, apply bool) (*CountResult, error) {
	if len(lines) == 0 {
		return nil, service.Invalid("lines", "at least one counted item is required")
	}
	for _, l := range lines {
		if l.Counted < 0 {
			return nil, service.Invalid("counted_quantity", "must not be negative")
		}
	}
	res := &CountResult{Divergences: []entity.InventoryCount{}, Applied: apply}
	today := entity.NewDate(s.now())
	for _, l := range lines {
		item, err := s.repos.Inventory.Get(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		res.Counted++
		divergence := l.Counted - item.Quantity
		if divergence == 0 {
			continue
		}
		rec, err := s.repos.InventoryCounts.Create(ctx, &entity.InventoryCount{
			ItemID:          item.ID,
			ItemName:        item.Name,
			SystemQuantity:  item.Quantity,
			CountedQuantity: l.Counted,
			Divergence:      divergence,
			UserID:          userID,
			Date:            today,
		})
		if err != nil {
			return nil, err
		}
		res.Divergences = append(res.Divergences, *rec)
		if apply {
			ref := fmt.Sprintf("contagem %s", today)
			if _, _, err := s.Adjust(ctx, item.ID, Adjustment{Kind: entity.MovementAdjust, Quantity: l.Counted, Reference: ref}); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// Counts lists stored divergences, newest first.
func (s *Service) Counts(ctx context.Context) ([]entity.InventoryCount, error) {
	return s.repos.InventoryCounts.All(ctx, rowstore.ListOptions{OrderBy: "-date"})
}
