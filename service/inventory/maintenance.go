package inventory

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"focolog/model/entity"
	"focolog/service"
)

type MaintenanceInput struct {
	MaintenanceDate     entity.Date     `json:"maintenance_date"`
	Cost                decimal.Decimal `json:"cost"`
	Description         string          `json:"description"`
	NextMaintenanceDate *entity.Date    `json:"next_maintenance_date"`
}

func (s *Service) AddMaintenance(ctx context.Context, itemID int64, in MaintenanceInput) (*entity.ItemMaintenance, error) {
	switch {
	case in.MaintenanceDate.IsZero():
		return nil, service.Invalid("maintenance_date", "is required")
	case strings.TrimSpace(in.Description) == "":
		return nil, service.Invalid("description", "is required")
	case in.Cost.IsNegative():
		return nil, service.Invalid("cost", "must not be negative")
	case in.NextMaintenanceDate != nil && !in.NextMaintenanceDate.After(in.MaintenanceDate.Time):
		return nil, service.Invalid("next_maintenance_date", "must be after maintenance_date")
	}
	if _, err := s.repos.Inventory.Get(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repos.Maintenance.Create(ctx, &entity.ItemMaintenance{
		ItemID:              itemID,
		MaintenanceDate:     in.MaintenanceDate,
		Cost:                in.Cost,
		Description:         strings.TrimSpace(in.Description),
		NextMaintenanceDate: in.NextMaintenanceDate,
	})
}

// Maintenance lists an item's maintenance records, latest first.
func (s *Service) Maintenance(ctx context.Context, itemID int64) ([]entity.ItemMaintenance, error) {
	recs, err := s.repos.Maintenance.FindBy(ctx, "item_id", strconv.FormatInt(itemID, 10))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].MaintenanceDate.After(recs[j].MaintenanceDate.Time) })
	return recs, nil
}
