package users

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/service"
)

type CostCenterInput struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	Active *bool           `json:"active"`
}

func (in CostCenterInput) validate() error {
	switch {
	case strings.TrimSpace(in.Code) == "":
		return service.Invalid("code", "is required")
	case strings.TrimSpace(in.Name) == "":
		return service.Invalid("name", "is required")
	case in.Budget.IsNegative():
		return service.Invalid("budget", "must not be negative")
	}
	return nil
}

// CostCenters lists cost centers sorted by code.
func (s *Service) CostCenters(ctx context.Context) ([]entity.CostCenter, error) {
	ccs, err := s.repos.CostCenters.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ccs, func(i, j int) bool { return ccs[i].Code < ccs[j].Code })
	return ccs, nil
}

func (s *Service) codeTaken(ctx context.Context, code string, self int64) (bool, error) {
	ccs, err := s.repos.CostCenters.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return false, err
	}
	for _, cc := range ccs {
		if cc.ID != self && strings.EqualFold(cc.Code, strings.TrimSpace(code)) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) CreateCostCenter(ctx context.Context, in CostCenterInput) (*entity.CostCenter, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	taken, err := s.codeTaken(ctx, in.Code, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, service.Invalid("code", "is already in use")
	}
	return s.repos.CostCenters.Create(ctx, &entity.CostCenter{
		Code:   strings.TrimSpace(in.Code),
		Name:   strings.TrimSpace(in.Name),
		Budget: in.Budget,
		Active: in.Active == nil || *in.Active,
	})
}

func (s *Service) UpdateCostCenter(ctx context.Context, id int64, in CostCenterInput) (*entity.CostCenter, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	taken, err := s.codeTaken(ctx, in.Code, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, service.Invalid("code", "is already in use")
	}
	fields := rowstore.Row{
		"code":   strings.TrimSpace(in.Code),
		"name":   strings.TrimSpace(in.Name),
		"budget": in.Budget.String(),
	}
	if in.Active != nil {
		fields["active"] = *in.Active
	}
	return s.repos.CostCenters.Update(ctx, id, fields)
}

func (s *Service) DeleteCostCenter(ctx context.Context, id int64) error {
	return s.repos.CostCenters.Delete(ctx, id)
}
