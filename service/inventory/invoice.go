package inventory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/service"
)

// Invoice is supplier invoice data already extracted from the document.
type Invoice struct {
	Number     string        `json:"number"`
	Supplier   string        `json:"supplier"`
	Date       entity.Date   `json:"date"`
	CostCenter string        `json:"cost_center"`
	Lines      []InvoiceLine `json:"items"`
}

type InvoiceLine struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
}

type InvoiceResult struct {
	Number    string                 `json:"number"`
	Updated   []entity.InventoryItem `json:"updated"`
	Created   []entity.InventoryItem `json:"created"`
	Movements int                    `json:"movements"`
	Total     decimal.Decimal        `json:"total"`
}

func (inv Invoice) validate() error {
	if strings.TrimSpace(inv.Number) == "" {
		return service.Invalid("number", "is required")
	}
	if len(inv.Lines) == 0 {
		return service.Invalid("items", "at least one line is required")
	}
	for _, l := range inv.Lines {
		if strings.TrimSpace(l.Description) == "" {
			return service.Invalid("description", "is required")
		}
		if l.Quantity <= 0 {
			return service.Invalid("quantity", "must be positive for %q", l.Description)
		}
		if l.UnitPrice.IsNegative() {
			return service.Invalid("unit_price", "must not be negative for %q", l.Description)
		}
	}
	return nil
}

// ApplyInvoice brings invoice lines into stock. Lines are matched to items
// by name, ignoring case; unknown descriptions become new items.
func (s *Service) ApplyInvoice(ctx context.Context, inv Invoice) (*InvoiceResult, error) {
	if err := inv.validate(); err != nil {
		return nil, err
	}
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]entity.InventoryItem, len(items))
	for _, item := range items {
		byName[strings.ToLower(strings.TrimSpace(item.Name))] = item
	}

	res := &InvoiceResult{
		Number:  inv.Number,
		Updated: []entity.InventoryItem{},
		Created: []entity.InventoryItem{},
		Total:   decimal.Zero,
	}
	ref := "NF " + strings.TrimSpace(inv.Number)
	for _, line := range inv.Lines {
		key := strings.ToLower(strings.TrimSpace(line.Description))
		res.Total = res.Total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))

		item, ok := byName[key]
		if !ok {
			typ := line.Type
			if typ == "" {
				typ = entity.ItemTypeEPI
			}
			created, err := s.Create(ctx, ItemInput{
				Name:       strings.TrimSpace(line.Description),
				Type:       typ,
				Category:   line.Category,
				UnitCost:   line.UnitPrice,
				Supplier:   inv.Supplier,
				CostCenter: inv.CostCenter,
			})
			if err != nil {
				return nil, err
			}
			item = *created
		}

		fields := rowstore.Row{
			"quantity":     item.Quantity + line.Quantity,
			"unit_cost":    line.UnitPrice.String(),
			"last_updated": s.now(),
		}
		if inv.Supplier != "" {
			fields["supplier"] = inv.Supplier
		}
		updated, err := s.repos.Inventory.Update(ctx, item.ID, fields)
		if err != nil {
			return nil, err
		}
		byName[key] = *updated
		if ok {
			res.Updated = append(res.Updated, *updated)
		} else {
			res.Created = append(res.Created, *updated)
		}
		if _, err := s.recordMovement(ctx, *updated, entity.MovementIn, line.Quantity, ref, inv.CostCenter); err != nil {
			return nil, err
		}
		res.Movements++
		s.index(ctx, *updated)
	}
	return res, nil
}
