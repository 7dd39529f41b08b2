// Package alert derives stock, CA and training alerts.
package alert

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"focolog/core/cache"
	"focolog/model/entity"
	"focolog/service/inventory"
	"focolog/service/training"
)

const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityExpired  = "expired"

	KindStock    = "stock"
	KindCA       = "ca"
	KindTraining = "training"

	snapshotKey = "alerts:snapshot"
	snapshotTTL = 2 * time.Hour
)

func severityRank(s string) int {
	switch s {
	case SeverityCritical, SeverityExpired:
		return 0
	case SeverityWarning:
		return 1
	}
	return 2
}

type StockAlert struct {
	ID           string `json:"id"`
	ItemID       int64  `json:"item_id"`
	ItemName     string `json:"item_name"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	Severity     string `json:"severity"`
}

type CAAlert struct {
	ID              string      `json:"id"`
	ItemID          int64       `json:"item_id"`
	ItemName        string      `json:"item_name"`
	CANumber        string      `json:"ca_number"`
	ExpiryDate      entity.Date `json:"expiry_date"`
	DaysUntilExpiry int         `json:"days_until_expiry"`
	Severity        string      `json:"severity"`
}

type TrainingAlert struct {
	ID              string      `json:"id"`
	TrainingID      int64       `json:"training_id"`
	UserName        string      `json:"user_name"`
	TrainingType    string      `json:"training_type"`
	ExpiryDate      entity.Date `json:"expiry_date"`
	DaysUntilExpiry int         `json:"days_until_expiry"`
	Severity        string      `json:"severity"`
}

// Alert is the flattened form used by the combined list.
type Alert struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Severity string `json:"severity"`
}

type Counts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Expired  int `json:"expired"`
	Total    int `json:"total"`
}

type Snapshot struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Stock       []StockAlert    `json:"stock"`
	CA          []CAAlert       `json:"ca"`
	Trainings   []TrainingAlert `json:"trainings"`
	Alerts      []Alert         `json:"alerts"`
	Counts      Counts          `json:"counts"`
}

type Service struct {
	inventory *inventory.Service
	trainings *training.Service
	cache     cache.Store
	logger    *zap.Logger
}

func NewService(inv *inventory.Service, trainings *training.Service, c cache.Store, logger *zap.Logger) *Service {
	return &Service{inventory: inv, trainings: trainings, cache: c, logger: logger}
}

// StockAlerts flags items at or below their minimum.
func StockAlerts(items []entity.InventoryItem) []StockAlert {
	out := []StockAlert{}
	for _, item := range items {
		var sev string
		switch inventory.StockStatus(item) {
		case inventory.StockCritical:
			sev = SeverityCritical
		case inventory.StockLow:
			sev = SeverityWarning
		default:
			continue
		}
		out = append(out, StockAlert{
			ID:           fmt.Sprintf("%s-%d", KindStock, item.ID),
			ItemID:       item.ID,
			ItemName:     item.Name,
			CurrentStock: item.Quantity,
			MinStock:     item.MinStock,
			Severity:     sev,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return severityRank(out[i].Severity) < severityRank(out[j].Severity)
	})
	return out
}

// CAAlerts flags certificates expired or inside the warning window.
func CAAlerts(items []entity.InventoryItem, now time.Time, warningDays int) []CAAlert {
	out := []CAAlert{}
	for _, item := range items {
		status, days, ok := inventory.CAStatus(item.CAExpiryDate, now, warningDays)
		if !ok || status == inventory.CAValid {
			continue
		}
		sev := SeverityWarning
		if status == inventory.CAExpired {
			sev = SeverityExpired
		}
		out = append(out, CAAlert{
			ID:              fmt.Sprintf("%s-%d", KindCA, item.ID),
			ItemID:          item.ID,
			ItemName:        item.Name,
			CANumber:        item.CANumber,
			ExpiryDate:      *item.CAExpiryDate,
			DaysUntilExpiry: days,
			Severity:        sev,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntilExpiry < out[j].DaysUntilExpiry })
	return out
}

// TrainingAlerts flags expiring and expired trainings. ts must carry
// derived statuses.
func TrainingAlerts(ts []entity.Training, now time.Time) []TrainingAlert {
	out := []TrainingAlert{}
	for _, t := range ts {
		var sev string
		switch t.Status {
		case entity.TrainingExpired:
			sev = SeverityExpired
		case entity.TrainingExpiring:
			sev = SeverityWarning
		default:
			continue
		}
		out = append(out, TrainingAlert{
			ID:              fmt.Sprintf("%s-%d", KindTraining, t.ID),
			TrainingID:      t.ID,
			UserName:        t.UserName,
			TrainingType:    t.TrainingType,
			ExpiryDate:      t.ExpiryDate,
			DaysUntilExpiry: t.ExpiryDate.DaysUntil(now),
			Severity:        sev,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntilExpiry < out[j].DaysUntilExpiry })
	return out
}

// Build computes a fresh snapshot.
func (s *Service) Build(ctx context.Context) (*Snapshot, error) {
	items, err := s.inventory.Items(ctx)
	if err != nil {
		return nil, err
	}
	ts, err := s.trainings.All(ctx)
	if err != nil {
		return nil, err
	}
	now := s.inventory.Now()
	snap := &Snapshot{
		GeneratedAt: now,
		Stock:       StockAlerts(items),
		CA:          CAAlerts(items, now, s.inventory.CAWarningDays()),
		Trainings:   TrainingAlerts(ts, now),
	}
	snap.combine()
	return snap, nil
}

func (snap *Snapshot) combine() {
	alerts := make([]Alert, 0, len(snap.Stock)+len(snap.CA)+len(snap.Trainings))
	for _, a := range snap.Stock {
		alerts = append(alerts, Alert{
			ID: a.ID, Kind: KindStock, Severity: a.Severity, Title: a.ItemName,
			Detail: fmt.Sprintf("estoque %d / mínimo %d", a.CurrentStock, a.MinStock),
		})
	}
	for _, a := range snap.CA {
		alerts = append(alerts, Alert{
			ID: a.ID, Kind: KindCA, Severity: a.Severity, Title: a.ItemName,
			Detail: fmt.Sprintf("CA %s vence em %s (%d dias)", a.CANumber, a.ExpiryDate, a.DaysUntilExpiry),
		})
	}
	for _, a := range snap.Trainings {
		alerts = append(alerts, Alert{
			ID: a.ID, Kind: KindTraining, Severity: a.Severity, Title: a.UserName,
			Detail: fmt.Sprintf("%s vence em %s", a.TrainingType, a.ExpiryDate),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) < severityRank(alerts[j].Severity)
	})

	var c Counts
	for _, a := range alerts {
		switch a.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityWarning:
			c.Warning++
		case SeverityExpired:
			c.Expired++
		}
	}
	c.Total = len(alerts)
	snap.Alerts = alerts
	snap.Counts = c
}

// Scan builds a snapshot and caches it for readers.
func (s *Service) Scan(ctx context.Context) (*Snapshot, error) {
	snap, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, snapshotKey, snap, snapshotTTL); err != nil {
			s.logger.Warn("alert snapshot not cached", zap.Error(err))
		}
	}
	return snap, nil
}

// Snapshot returns the cached snapshot, scanning when there is none.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s.cache != nil {
		var snap Snapshot
		if cache.GetJSON(ctx, s.cache, snapshotKey, &snap) {
			return &snap, nil
		}
	}
	return s.Scan(ctx)
}

// Invalidate drops the cached snapshot after data changes.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, snapshotKey)
	}
}
