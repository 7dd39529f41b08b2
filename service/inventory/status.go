package inventory

import (
	"time"

	"focolog/model/entity"
)

const (
	StockCritical = "critical"
	StockLow      = "low"
	StockNormal   = "normal"

	CAValid   = "valid"
	CAWarning = "warning"
	CAExpired = "expired"
)

// DefaultCAWarningDays is the window before expiry in which a CA is flagged.
const DefaultCAWarningDays = 30

// StockStatus classifies an item: critical at or below half the minimum,
// low at or below the minimum.
func StockStatus(item entity.InventoryItem) string {
	switch {
	case float64(item.Quantity) <= float64(item.MinStock)*0.5:
		return StockCritical
	case item.Quantity <= item.MinStock:
		return StockLow
	}
	return StockNormal
}

// IsLow reports quantity at or below the minimum.
func IsLow(item entity.InventoryItem) bool {
	return item.Quantity <= item.MinStock
}

// CAStatus classifies a certificate of approval expiry date. ok is false
// when the item has no expiry date.
func CAStatus(expiry *entity.Date, now time.Time, warningDays int) (status string, days int, ok bool) {
	if expiry == nil || expiry.IsZero() {
		return "", 0, false
	}
	days = expiry.DaysUntil(now)
	switch {
	case days < 0:
		return CAExpired, days, true
	case days <= warningDays:
		return CAWarning, days, true
	}
	return CAValid, days, true
}

// SuggestedQuantity is the purchase quantity that brings stock to twice
// the minimum.
func SuggestedQuantity(item entity.InventoryItem) int {
	q := item.MinStock*2 - item.Quantity
	if q < 0 {
		return 0
	}
	return q
}
