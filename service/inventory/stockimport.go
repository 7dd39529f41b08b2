package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"focolog/model/entity"
)

// StockLine sets the on-hand quantity of one item, found by id or by name
// and size.
type StockLine struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type StockImportResult struct {
	Imported  int      `json:"imported"`
	Unchanged int      `json:"unchanged"`
	Skipped   int      `json:"skipped"`
	Warnings  []string `json:"warnings"`
}

// Availability is the stock answer for one requested line.
type Availability struct {
	ItemID      int64  `json:"item_id"`
	ItemName    string `json:"item_name"`
	Size        string `json:"size"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	Enough      bool   `json:"enough"`
	StockStatus string `json:"stock_status"`
	Found       bool   `json:"found"`
}

type itemIndex struct {
	byID   map[int64]entity.InventoryItem
	byName map[string][]entity.InventoryItem
}

func (s *Service) lookup(ctx context.Context) (*itemIndex, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	idx := &itemIndex{byID: make(map[int64]entity.InventoryItem, len(items)), byName: map[string][]entity.InventoryItem{}}
	for _, it := range items {
		idx.byID[it.ID] = it
		key := strings.ToLower(strings.TrimSpace(it.Name))
		idx.byName[key] = append(idx.byName[key], it)
	}
	return idx, nil
}

var (
	errItemMissing   = errors.New("item not found")
	errItemAmbiguous = errors.New("name matches several sizes")
)

// find matches by id first, then by name and size. A name shared by
// items of different sizes needs a size. A size on the line still matches
// the only item of that name when the item has no size.
func (idx *itemIndex) find(id int64, name, size string) (entity.InventoryItem, error) {
	if id > 0 {
		it, ok := idx.byID[id]
		if !ok {
			return entity.InventoryItem{}, errItemMissing
		}
		return it, nil
	}
	cands := idx.byName[strings.ToLower(strings.TrimSpace(name))]
	if len(cands) == 0 {
		return entity.InventoryItem{}, errItemMissing
	}
	size = strings.TrimSpace(size)
	if size == "" {
		for _, it := range cands[1:] {
			if !strings.EqualFold(it.Size, cands[0].Size) {
				return entity.InventoryItem{}, errItemAmbiguous
			}
		}
		return cands[0], nil
	}
	for _, it := range cands {
		if strings.EqualFold(strings.TrimSpace(it.Size), size) {
			return it, nil
		}
	}
	if len(cands) == 1 && strings.TrimSpace(cands[0].Size) == "" {
		return cands[0], nil
	}
	return entity.InventoryItem{}, errItemMissing
}

// set records a new on-hand quantity for later lookups.
func (idx *itemIndex) set(item entity.InventoryItem) {
	idx.byID[item.ID] = item
	key := strings.ToLower(strings.TrimSpace(item.Name))
	for i := range idx.byName[key] {
		if idx.byName[key][i].ID == item.ID {
			idx.byName[key][i] = item
		}
	}
}

// ImportStock sets absolute quantities in bulk. Each change is recorded as
// an adjust movement with the given reference. Unknown items and negative
// quantities are skipped with a warning.
func (s *Service) ImportStock(ctx context.Context, lines []StockLine, reference string) (*StockImportResult, error) {
	idx, err := s.lookup(ctx)
	if err != nil {
		return nil, err
	}
	if reference == "" {
		reference = "importação de estoque"
	}
	res := &StockImportResult{Warnings: []string{}}
	for i, line := range lines {
		label := line.Name
		if line.ItemID > 0 {
			label = fmt.Sprintf("#%d", line.ItemID)
		}
		if line.Quantity < 0 {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("line %d (%s): negative quantity", i+1, label))
			continue
		}
		item, err := idx.find(line.ItemID, line.Name, line.Size)
		if err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("line %d (%s): %v", i+1, label, err))
			continue
		}
		if item.Quantity == line.Quantity {
			res.Unchanged++
			continue
		}
		updated, _, err := s.Adjust(ctx, item.ID, Adjustment{Kind: entity.MovementAdjust, Quantity: line.Quantity, Reference: reference})
		if err != nil {
			return res, err
		}
		idx.set(*updated)
		res.Imported++
	}
	return res, nil
}

// CheckAvailability answers, for each line, whether stock covers the
// requested quantity. Quantity on StockLine is the requested amount.
func (s *Service) CheckAvailability(ctx context.Context, lines []StockLine) ([]Availability, error) {
	idx, err := s.lookup(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Availability, 0, len(lines))
	for _, line := range lines {
		a := Availability{ItemID: line.ItemID, ItemName: line.Name, Size: line.Size, Requested: line.Quantity}
		if item, err := idx.find(line.ItemID, line.Name, line.Size); err == nil {
			a.Found = true
			a.ItemID, a.ItemName, a.Size = item.ID, item.Name, item.Size
			a.Available = item.Quantity
			a.Enough = item.Quantity >= line.Quantity
			a.StockStatus = StockStatus(item)
		}
		out = append(out, a)
	}
	return out, nil
}
