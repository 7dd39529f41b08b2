package resolvers

import (
	"strconv"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/shopspring/decimal"

	gqlmodels "focolog/graphql/models"
	"focolog/model/entity"
	"focolog/service/alert"
	"focolog/service/dashboard"
	"focolog/service/inventory"
)

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mapStats(s *dashboard.Stats) *gqlmodels.Stats {
	return &gqlmodels.Stats{
		TotalItems:      int32(s.TotalItems),
		PendingRequests: int32(s.PendingRequests),
		MonthlyCost:     toFloat(s.MonthlyCost),
		ActiveUsers:     int32(s.ActiveUsers),
	}
}

func mapSnapshot(snap *alert.Snapshot) *gqlmodels.AlertSnapshot {
	out := &gqlmodels.AlertSnapshot{
		GeneratedAt: snap.GeneratedAt.Format(time.RFC3339),
		Counts: &gqlmodels.AlertCounts{
			Critical: int32(snap.Counts.Critical),
			Warning:  int32(snap.Counts.Warning),
			Expired:  int32(snap.Counts.Expired),
			Total:    int32(snap.Counts.Total),
		},
		Alerts: make([]*gqlmodels.Alert, 0, len(snap.Alerts)),
	}
	for _, a := range snap.Alerts {
		out.Alerts = append(out.Alerts, &gqlmodels.Alert{
			ID:       gql.ID(a.ID),
			Kind:     a.Kind,
			Title:    a.Title,
			Detail:   a.Detail,
			Severity: a.Severity,
		})
	}
	return out
}

func mapItem(v inventory.ItemView) *gqlmodels.InventoryItem {
	item := &gqlmodels.InventoryItem{
		ID:                        gql.ID(strconv.FormatInt(v.ID, 10)),
		Name:                      v.Name,
		Type:                      v.Type,
		Category:                  v.Category,
		Size:                      v.Size,
		Quantity:                  int32(v.Quantity),
		MinStock:                  int32(v.MinStock),
		UnitCost:                  toFloat(v.UnitCost),
		Supplier:                  v.Supplier,
		CostCenter:                v.CostCenter,
		CANumber:                  strPtr(v.CANumber),
		StockStatus:               v.StockStatus,
		CAStatus:                  strPtr(v.CAStatus),
		SuggestedPurchaseQuantity: int32(v.SuggestedPurchase),
	}
	if v.CAExpiryDate != nil && !v.CAExpiryDate.IsZero() {
		item.CAExpiryDate = strPtr(v.CAExpiryDate.Format(entity.DateLayout))
	}
	if v.DaysUntilCAExpiry != nil {
		d := int32(*v.DaysUntilCAExpiry)
		item.DaysUntilCAExpiry = &d
	}
	return item
}

func mapSummary(s inventory.CategorySummary) *gqlmodels.CategorySummary {
	return &gqlmodels.CategorySummary{
		Category:   s.Category,
		Items:      int32(s.Items),
		Units:      int32(s.Units),
		LowStock:   int32(s.LowStock),
		StockValue: toFloat(s.StockValue),
	}
}
