// Package inventory manages PPE and uniform stock: items, movements, counts,
// maintenance and invoice entry.
package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
)

// Searcher is the full-text index used for the inventory search box.
type Searcher interface {
	Enabled() bool
	SearchItems(ctx context.Context, query string, size int) ([]int64, error)
	IndexItem(ctx context.Context, item entity.InventoryItem) error
	DeleteItem(ctx context.Context, id int64) error
}

type Service struct {
	repos         *repository.Repositories
	search        Searcher
	logger        *zap.Logger
	caWarningDays int
	now           func() time.Time
}

type Option func(*Service)

func WithSearch(s Searcher) Option { return func(svc *Service) { svc.search = s } }

func WithCAWarningDays(days int) Option {
	return func(svc *Service) {
		if days > 0 {
			svc.caWarningDays = days
		}
	}
}

func WithClock(now func() time.Time) Option { return func(svc *Service) { svc.now = now } }

func NewService(repos *repository.Repositories, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repos:         repos,
		logger:        logger,
		caWarningDays: DefaultCAWarningDays,
		now:           time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Now returns the service clock.
func (s *Service) Now() time.Time { return s.now() }

// CAWarningDays returns the configured CA warning window.
func (s *Service) CAWarningDays() int { return s.caWarningDays }

// ItemView is an item with its derived statuses.
type ItemView struct {
	entity.InventoryItem
	StockStatus       string `json:"stock_status"`
	CAStatus          string `json:"ca_status,omitempty"`
	DaysUntilCAExpiry *int   `json:"days_until_ca_expiry,omitempty"`
	SuggestedPurchase int    `json:"suggested_purchase_quantity"`
}

func (s *Service) View(item entity.InventoryItem) ItemView {
	v := ItemView{
		InventoryItem:     item,
		StockStatus:       StockStatus(item),
		SuggestedPurchase: SuggestedQuantity(item),
	}
	if status, days, ok := CAStatus(item.CAExpiryDate, s.now(), s.caWarningDays); ok {
		v.CAStatus = status
		v.DaysUntilCAExpiry = &days
	}
	return v
}

// Filter narrows the item list. Stock is "all", "low" or "normal".
type Filter struct {
	Search   string
	Type     string
	Category string
	Stock    string
}

// Items returns every item, unfiltered.
func (s *Service) Items(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.repos.Inventory.All(ctx, rowstore.ListOptions{OrderBy: "name"})
}

// List returns the items matching f, sorted by name, or by relevance when
// the search index answered.
func (s *Service) List(ctx context.Context, f Filter) ([]ItemView, error) {
	opts := rowstore.ListOptions{OrderBy: "name", Filters: map[string]string{}}
	if f.Type != "" && f.Type != "all" {
		opts.Filters["type"] = f.Type
	}
	if f.Category != "" && f.Category != "all" {
		opts.Filters["category"] = f.Category
	}
	items, err := s.repos.Inventory.All(ctx, opts)
	if err != nil {
		return nil, err
	}

	search := strings.TrimSpace(f.Search)
	if search != "" {
		items = s.searchItems(ctx, items, search)
	}

	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		switch f.Stock {
		case "low":
			if !IsLow(item) {
				continue
			}
		case "normal":
			if IsLow(item) {
				continue
			}
		}
		out = append(out, s.View(item))
	}
	return out, nil
}

func (s *Service) searchItems(ctx context.Context, items []entity.InventoryItem, query string) []entity.InventoryItem {
	if s.search != nil && s.search.Enabled() {
		ids, err := s.search.SearchItems(ctx, query, len(items))
		if err == nil {
			byID := make(map[int64]entity.InventoryItem, len(items))
			for _, item := range items {
				byID[item.ID] = item
			}
			out := make([]entity.InventoryItem, 0, len(ids))
			for _, id := range ids {
				if item, ok := byID[id]; ok {
					out = append(out, item)
				}
			}
			return out
		}
		s.logger.Warn("search index unavailable, filtering locally", zap.Error(err))
	}
	out := items[:0:0]
	for _, item := range items {
		if service.Contains(item.Name, query) ||
			service.Contains(item.Category, query) ||
			service.Contains(item.Supplier, query) ||
			service.Contains(item.CANumber, query) {
			out = append(out, item)
		}
	}
	return out
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return s.repos.Inventory.Get(ctx, id)
}

// ItemInput is the editable part of an item.
type ItemInput struct {
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
	CAExpiryDate *entity.Date    `json:"ca_expiry_date"`
}

func (in ItemInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return service.Invalid("name", "is required")
	case in.Type != entity.ItemTypeEPI && in.Type != entity.ItemTypeUniform:
		return service.Invalid("type", "must be %q or %q", entity.ItemTypeEPI, entity.ItemTypeUniform)
	case in.Quantity < 0:
		return service.Invalid("quantity", "must not be negative")
	case in.MinStock < 0:
		return service.Invalid("min_stock", "must not be negative")
	case in.UnitCost.IsNegative():
		return service.Invalid("unit_cost", "must not be negative")
	}
	return nil
}

func (in ItemInput) apply(item *entity.InventoryItem) {
	item.Name = strings.TrimSpace(in.Name)
	item.Type = in.Type
	item.Category = in.Category
	item.Size = in.Size
	item.Quantity = in.Quantity
	item.MinStock = in.MinStock
	item.UnitCost = in.UnitCost
	item.Supplier = in.Supplier
	item.CostCenter = in.CostCenter
	item.CANumber = in.CANumber
	item.CAExpiryDate = in.CAExpiryDate
}

func (s *Service) Create(ctx context.Context, in ItemInput) (*entity.InventoryItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := &entity.InventoryItem{LastUpdated: s.now()}
	in.apply(item)
	created, err := s.repos.Inventory.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.index(ctx, *created)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, in ItemInput) (*entity.InventoryItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item, err := s.repos.Inventory.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(item)
	item.LastUpdated = s.now()
	saved, err := s.repos.Inventory.Save(ctx, id, item)
	if err != nil {
		return nil, err
	}
	s.index(ctx, *saved)
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Inventory.Delete(ctx, id); err != nil {
		return err
	}
	if s.search != nil && s.search.Enabled() {
		if err := s.search.DeleteItem(ctx, id); err != nil {
			s.logger.Warn("search delete failed", zap.Int64("item_id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) index(ctx context.Context, item entity.InventoryItem) {
	if s.search == nil || !s.search.Enabled() {
		return
	}
	if err := s.search.IndexItem(ctx, item); err != nil {
		s.logger.Warn("search index failed", zap.Int64("item_id", item.ID), zap.Error(err))
	}
}

// CategorySummary aggregates stock per category.
type CategorySummary struct {
	Category   string          `json:"category"`
	Items      int             `json:"items"`
	Units      int             `json:"units"`
	LowStock   int             `json:"low_stock"`
	StockValue decimal.Decimal `json:"stock_value"`
}

// Summarize groups items by category, sorted by category name.
func Summarize(items []entity.InventoryItem) []CategorySummary {
	byCat := map[string]*CategorySummary{}
	for _, item := range items {
		cat := item.Category
		if cat == "" {
			cat = "Sem categoria"
		}
		sum, ok := byCat[cat]
		if !ok {
			sum = &CategorySummary{Category: cat, StockValue: decimal.Zero}
			byCat[cat] = sum
		}
		sum.Items++
		sum.Units += item.Quantity
		sum.StockValue = sum.StockValue.Add(item.StockValue())
		if IsLow(item) {
			sum.LowStock++
		}
	}
	out := make([]CategorySummary, 0, len(byCat))
	for _, sum := range byCat {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func (s *Service) Summary(ctx context.Context) ([]CategorySummary, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(items), nil
}
