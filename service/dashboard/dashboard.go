// Package dashboard assembles the landing page figures.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service/alert"
	"focolog/service/inventory"
	"focolog/service/request"
)

const recentRequests = 5

type Stats struct {
	TotalItems      int             `json:"total_items"`
	PendingRequests int             `json:"pending_requests"`
	MonthlyCost     decimal.Decimal `json:"monthly_cost"`
	ActiveUsers     int             `json:"active_users"`
}

type Overview struct {
	Stats          Stats                       `json:"stats"`
	RecentRequests []entity.Request            `json:"recent_requests"`
	Inventory      []inventory.CategorySummary `json:"inventory"`
	Alerts         alert.Counts                `json:"alerts"`
}

type Service struct {
	repos     *repository.Repositories
	inventory *inventory.Service
	requests  *request.Service
	alerts    *alert.Service
	logger    *zap.Logger
}

func NewService(repos *repository.Repositories, inv *inventory.Service, requests *request.Service, alerts *alert.Service, logger *zap.Logger) *Service {
	return &Service{repos: repos, inventory: inv, requests: requests, alerts: alerts, logger: logger}
}

// MonthStart is midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Stats loads the four headline figures concurrently.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.inventory.Items(ctx)
		if err != nil {
			return err
		}
		for _, item := range items {
			st.TotalItems += item.Quantity
		}
		return nil
	})
	g.Go(func() error {
		counts, err := s.requests.Counts(ctx)
		if err != nil {
			return err
		}
		st.PendingRequests = counts[entity.RequestPending]
		return nil
	})
	g.Go(func() error {
		moves, err := s.repos.Movements.FindBy(ctx, "kind", entity.MovementOut)
		if err != nil {
			return err
		}
		from := MonthStart(s.inventory.Now())
		total := decimal.Zero
		for _, m := range moves {
			if !m.CreatedAt.Before(from) {
				total = total.Add(m.Total())
			}
		}
		st.MonthlyCost = total
		return nil
	})
	g.Go(func() error {
		users, err := s.repos.Users.All(ctx, rowstore.ListOptions{})
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Active {
				st.ActiveUsers++
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}

// Overview adds recent requests, the inventory summary and alert counts
// to the stats.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.Stats(gctx)
		if err != nil {
			return err
		}
		ov.Stats = *st
		return nil
	})
	g.Go(func() error {
		reqs, err := s.requests.Recent(gctx, recentRequests)
		ov.RecentRequests = reqs
		return err
	})
	g.Go(func() error {
		sum, err := s.inventory.Summary(gctx)
		ov.Inventory = sum
		return err
	})
	g.Go(func() error {
		snap, err := s.alerts.Snapshot(gctx)
		if err != nil {
			return err
		}
		ov.Alerts = snap.Counts
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard overview failed", zap.Error(err))
		return nil, err
	}
	return &ov, nil
}
