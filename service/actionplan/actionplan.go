// Package actionplan tracks corrective actions opened from alerts.
package actionplan

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
)

const (
	UrgencyOverdue = "overdue"
	UrgencyDueSoon = "due_soon"
	UrgencyNormal  = "normal"

	dueSoonDays = 3
)

// Urgency classifies a due date: overdue when past, due soon within three days.
func Urgency(due entity.Date, now time.Time) string {
	days := due.DaysUntil(now)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= dueSoonDays:
		return UrgencyDueSoon
	}
	return UrgencyNormal
}

var statuses = []string{entity.PlanPending, entity.PlanInProgress, entity.PlanCompleted}

func validStatus(s string) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

type Service struct {
	repos  *repository.Repositories
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repos *repository.Repositories, logger *zap.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repos: repos, logger: logger, now: now}
}

// View is a plan with its urgency.
type View struct {
	entity.ActionPlan
	Urgency       string `json:"urgency"`
	DaysRemaining int    `json:"days_remaining"`
}

func (s *Service) view(p entity.ActionPlan) View {
	now := s.now()
	return View{ActionPlan: p, Urgency: Urgency(p.DueDate, now), DaysRemaining: p.DueDate.DaysUntil(now)}
}

type Input struct {
	AlertID            string      `json:"alert_id"`
	Description        string      `json:"description"`
	AssignedToUserID   int64       `json:"assigned_to_user_id"`
	AssignedToUserName string      `json:"assigned_to_user_name"`
	DueDate            entity.Date `json:"due_date"`
}

func (s *Service) Create(ctx context.Context, in Input) (*View, error) {
	switch {
	case strings.TrimSpace(in.AlertID) == "":
		return nil, service.Invalid("alert_id", "is required")
	case strings.TrimSpace(in.Description) == "":
		return nil, service.Invalid("description", "is required")
	case strings.TrimSpace(in.AssignedToUserName) == "" && in.AssignedToUserID == 0:
		return nil, service.Invalid("assigned_to_user_id", "is required")
	case in.DueDate.IsZero():
		return nil, service.Invalid("due_date", "is required")
	}
	name := strings.TrimSpace(in.AssignedToUserName)
	if name == "" {
		u, err := s.repos.Users.Get(ctx, in.AssignedToUserID)
		if err != nil {
			return nil, err
		}
		name = u.Name
	}
	p, err := s.repos.ActionPlans.Create(ctx, &entity.ActionPlan{
		AlertID:            strings.TrimSpace(in.AlertID),
		Description:        strings.TrimSpace(in.Description),
		AssignedToUserID:   in.AssignedToUserID,
		AssignedToUserName: name,
		DueDate:            in.DueDate,
		Status:             entity.PlanPending,
		CreatedAt:          s.now(),
	})
	if err != nil {
		return nil, err
	}
	v := s.view(*p)
	return &v, nil
}

// List filters by status and searches description and assignee; the
// earliest due date comes first.
func (s *Service) List(ctx context.Context, status, search string) ([]View, error) {
	opts := rowstore.ListOptions{}
	if status != "" && status != "all" {
		opts.Filters = map[string]string{"status": status}
	}
	plans, err := s.repos.ActionPlans.All(ctx, opts)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(plans))
	for _, p := range plans {
		if search != "" && !service.Contains(p.Description, search) && !service.Contains(p.AssignedToUserName, search) {
			continue
		}
		out = append(out, s.view(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate.Time) })
	return out, nil
}

// SetStatus moves a plan to any of pending, in_progress or completed.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) (*View, error) {
	if !validStatus(status) {
		return nil, service.Invalid("status", "must be pending, in_progress or completed")
	}
	p, err := s.repos.ActionPlans.Update(ctx, id, rowstore.Row{"status": status})
	if err != nil {
		return nil, err
	}
	v := s.view(*p)
	return &v, nil
}

// Open returns plans not yet completed.
func (s *Service) Open(ctx context.Context) ([]View, error) {
	all, err := s.List(ctx, "", "")
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, v := range all {
		if v.Status != entity.PlanCompleted {
			out = append(out, v)
		}
	}
	return out, nil
}
