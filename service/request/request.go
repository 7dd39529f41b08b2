// Package request handles employee PPE requests and their approval flow.
package request

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
	"focolog/service/delivery"
)

// ErrInvalidTransition is returned for status changes the flow forbids.
var ErrInvalidTransition = service.ErrInvalidTransition

var transitions = map[string][]string{
	entity.RequestPending:  {entity.RequestApproved, entity.RequestRejected},
	entity.RequestApproved: {entity.RequestFulfilled},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Service struct {
	repos      *repository.Repositories
	deliveries *delivery.Service
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(repos *repository.Repositories, deliveries *delivery.Service, logger *zap.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repos: repos, deliveries: deliveries, logger: logger, now: now}
}

type CreateInput struct {
	RequesterID   int64                `json:"requester_id"`
	RequesterName string               `json:"requester_name"`
	Priority      string               `json:"priority"`
	CostCenter    string               `json:"cost_center"`
	Notes         string               `json:"notes"`
	Items         []entity.RequestItem `json:"items"`
}

func validItems(items []entity.RequestItem) []entity.RequestItem {
	out := make([]entity.RequestItem, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.ItemName) == "" || it.Quantity <= 0 || strings.TrimSpace(it.Size) == "" {
			continue
		}
		if it.Urgency != entity.UrgencyUrgent {
			it.Urgency = entity.UrgencyNormal
		}
		out = append(out, it)
	}
	return out
}

// Create stores a pending request. Incomplete item lines are dropped; at
// least one complete line must remain.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Request, error) {
	if strings.TrimSpace(in.RequesterName) == "" {
		return nil, service.Invalid("requester_name", "is required")
	}
	items := validItems(in.Items)
	if len(items) == 0 {
		return nil, service.Invalid("items", "at least one item with name, quantity and size is required")
	}
	switch in.Priority {
	case "":
		in.Priority = entity.PriorityMedium
	case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh:
	default:
		return nil, service.Invalid("priority", "must be low, medium or high")
	}

	req, err := s.repos.Requests.Create(ctx, &entity.Request{
		RequesterID:   in.RequesterID,
		RequesterName: strings.TrimSpace(in.RequesterName),
		Status:        entity.RequestPending,
		Priority:      in.Priority,
		CostCenter:    in.CostCenter,
		Notes:         in.Notes,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		it.RequestID = req.ID
		saved, err := s.repos.RequestItems.Create(ctx, &it)
		if err != nil {
			return nil, err
		}
		req.Items = append(req.Items, *saved)
	}
	s.logger.Info("request created", zap.Int64("request_id", req.ID), zap.Int("items", len(req.Items)))
	return req, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Request, error) {
	req, err := s.repos.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.RequestItems.FindBy(ctx, "request_id", strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}
	req.Items = items
	return req, nil
}

// Filter selects requests. Status "all" or empty matches every status.
type Filter struct {
	Status      string
	Search      string
	RequesterID int64
}

func (f Filter) match(r entity.Request) bool {
	if f.Status != "" && f.Status != "all" && r.Status != f.Status {
		return false
	}
	if f.RequesterID > 0 && r.RequesterID != f.RequesterID {
		return false
	}
	if f.Search == "" {
		return true
	}
	return service.Contains(r.RequesterName, f.Search) ||
		service.Contains(strconv.FormatInt(r.ID, 10), f.Search) ||
		service.Contains(r.CostCenter, f.Search)
}

// List returns matching requests with their items, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]entity.Request, error) {
	reqs, err := s.repos.Requests.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	items, err := s.repos.RequestItems.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]entity.RequestItem)
	for _, it := range items {
		byRequest[it.RequestID] = append(byRequest[it.RequestID], it)
	}

	out := make([]entity.Request, 0, len(reqs))
	for _, r := range reqs {
		if !f.match(r) {
			continue
		}
		r.Items = byRequest[r.ID]
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Recent returns the latest n requests.
func (s *Service) Recent(ctx context.Context, n int) ([]entity.Request, error) {
	reqs, err := s.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	if n > 0 && len(reqs) > n {
		reqs = reqs[:n]
	}
	return reqs, nil
}

// Counts returns the number of requests per status plus "all".
func (s *Service) Counts(ctx context.Context) (map[string]int, error) {
	reqs, err := s.repos.Requests.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{
		"all":                   len(reqs),
		entity.RequestPending:   0,
		entity.RequestApproved:  0,
		entity.RequestRejected:  0,
		entity.RequestFulfilled: 0,
	}
	for _, r := range reqs {
		counts[r.Status]++
	}
	return counts, nil
}

func (s *Service) transition(ctx context.Context, id int64, to string, extra rowstore.Row) (*entity.Request, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(req.Status, to) {
		return nil, service.Transition(req.Status, to)
	}
	fields := rowstore.Row{"status": to}
	for k, v := range extra {
		fields[k] = v
	}
	updated, err := s.repos.Requests.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	updated.Items = req.Items
	s.logger.Info("request status changed",
		zap.Int64("request_id", id),
		zap.String("from", req.Status),
		zap.String("to", to))
	return updated, nil
}

func (s *Service) Approve(ctx context.Context, id int64) (*entity.Request, error) {
	return s.transition(ctx, id, entity.RequestApproved, nil)
}

// Reject refuses a pending request; a non-empty reason replaces the notes.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (*entity.Request, error) {
	var extra rowstore.Row
	if strings.TrimSpace(reason) != "" {
		extra = rowstore.Row{"notes": strings.TrimSpace(reason)}
	}
	return s.transition(ctx, id, entity.RequestRejected, extra)
}

// FulfillInput is the delivery confirmation of an approved request.
type FulfillInput struct {
	Supervisor string `json:"supervisor"`
	Signature  string `json:"signature"`
}

// Fulfill delivers an approved request: stock is issued, a delivery record
// is stored and the request becomes fulfilled.
func (s *Service) Fulfill(ctx context.Context, id int64, in FulfillInput) (*entity.Request, *entity.DeliveryRecord, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !CanTransition(req.Status, entity.RequestFulfilled) {
		return nil, nil, service.Transition(req.Status, entity.RequestFulfilled)
	}
	if strings.TrimSpace(in.Signature) == "" {
		return nil, nil, service.Invalid("signature", "is required")
	}
	rec, err := s.deliveries.Deliver(ctx, delivery.Input{
		RequestID:    req.ID,
		EmployeeID:   req.RequesterID,
		EmployeeName: req.RequesterName,
		Supervisor:   in.Supervisor,
		Signature:    in.Signature,
		CostCenter:   req.CostCenter,
		Items:        req.Items,
	})
	if err != nil {
		return nil, nil, err
	}
	updated, err := s.transition(ctx, id, entity.RequestFulfilled, nil)
	if err != nil {
		return nil, rec, err
	}
	return updated, rec, nil
}
