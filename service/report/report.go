// Package report aggregates movements and deliveries into reports.
package report

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

const (
	TypeConsumption       = "consumption"
	TypeCost              = "cost"
	TypeMovement          = "movement"
	TypeESocial           = "esocial"
	TypeConsumptionByRole = "consumption-by-role"

	noCostCenter = "Sem centro de custo"
	noRole       = "não informado"
)

var titles = map[string]string{
	TypeConsumption:       "Consumo por Centro de Custo",
	TypeCost:              "Relatório de Custos",
	TypeMovement:          "Movimentação de Estoque",
	TypeESocial:           "Entregas eSocial",
	TypeConsumptionByRole: "Consumo por Função",
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

type Params struct {
	Type       string `query:"type" json:"type"`
	Period     string `query:"period" json:"period"`
	CostCenter string `query:"cost_center" json:"cost_center"`
}

type Report struct {
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Period      string      `json:"period"`
	CostCenter  string      `json:"cost_center,omitempty"`
	From        time.Time   `json:"from"`
	GeneratedAt time.Time   `json:"generated_at"`
	Data        interface{} `json:"data"`
}

// Generate builds the report named by p.Type.
func (s *Service) Generate(ctx context.Context, p Params) (*Report, error) {
	now := s.now()
	from, err := Since(p.Period, now)
	if err != nil {
		return nil, err
	}
	rep := &Report{
		Type:        p.Type,
		Title:       titles[p.Type],
		Period:      p.Period,
		CostCenter:  p.CostCenter,
		From:        from,
		GeneratedAt: now,
	}
	if rep.Period == "" {
		rep.Period = PeriodMonth
	}
	switch p.Type {
	case TypeConsumption:
		rep.Data, err = s.Consumption(ctx, from, p.CostCenter)
	case TypeCost:
		rep.Data, err = s.Cost(ctx, from, p.CostCenter)
	case TypeMovement:
		rep.Data, err = s.MovementHistory(ctx, from, p.CostCenter, "")
	case TypeESocial:
		rep.Data, err = s.ESocialRows(ctx, from)
	case TypeConsumptionByRole:
		rep.Data, err = s.ConsumptionByRole(ctx, from)
	default:
		return nil, service.Invalid("type", "unknown report %q", p.Type)
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func costCenterOf(name string) string {
	if strings.TrimSpace(name) == "" {
		return noCostCenter
	}
	return name
}

func (s *Service) movementsSince(ctx context.Context, from time.Time, costCenter, kind string) ([]entity.StockMovement, error) {
	all, err := s.repos.Movements.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]entity.StockMovement, 0, len(all))
	for _, m := range all {
		if m.CreatedAt.Before(from) {
			continue
		}
		if kind != "" && m.Kind != kind {
			continue
		}
		if costCenter != "" && costCenterOf(m.CostCenter) != costCenter {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type ItemConsumption struct {
	ItemID   int64           `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

type CostCenterConsumption struct {
	CostCenter string            `json:"cost_center"`
	Items      []ItemConsumption `json:"items"`
	Quantity   int               `json:"quantity"`
	Total      decimal.Decimal   `json:"total"`
}

// Consumption groups out movements by cost center and item.
func (s *Service) Consumption(ctx context.Context, from time.Time, costCenter string) ([]CostCenterConsumption, error) {
	moves, err := s.movementsSince(ctx, from, costCenter, entity.MovementOut)
	if err != nil {
		return nil, err
	}
	type key struct {
		cc   string
		item int64
	}
	groups := map[string]*CostCenterConsumption{}
	lines := map[key]*ItemConsumption{}
	var order []string
	lineOrder := map[string][]key{}
	for _, m := range moves {
		cc := costCenterOf(m.CostCenter)
		g, ok := groups[cc]
		if !ok {
			g = &CostCenterConsumption{CostCenter: cc}
			groups[cc] = g
			order = append(order, cc)
		}
		k := key{cc, m.ItemID}
		l, ok := lines[k]
		if !ok {
			l = &ItemConsumption{ItemID: m.ItemID, ItemName: m.ItemName}
			lines[k] = l
			lineOrder[cc] = append(lineOrder[cc], k)
		}
		l.Quantity += m.Quantity
		l.Cost = l.Cost.Add(m.Total())
		g.Quantity += m.Quantity
		g.Total = g.Total.Add(m.Total())
	}

	sort.Strings(order)
	out := make([]CostCenterConsumption, 0, len(order))
	for _, cc := range order {
		g := groups[cc]
		for _, k := range lineOrder[cc] {
			g.Items = append(g.Items, *lines[k])
		}
		sort.SliceStable(g.Items, func(i, j int) bool { return g.Items[i].Cost.GreaterThan(g.Items[j].Cost) })
		out = append(out, *g)
	}
	return out, nil
}

type CostCenterCost struct {
	CostCenter string          `json:"cost_center"`
	StockValue decimal.Decimal `json:"stock_value"`
	Spend      decimal.Decimal `json:"spend"`
	Purchases  decimal.Decimal `json:"purchases"`
	Budget     decimal.Decimal `json:"budget"`
	BudgetUsed float64         `json:"budget_used_percent"`
}

type CostReport struct {
	CostCenters     []CostCenterCost `json:"cost_centers"`
	TotalStockValue decimal.Decimal  `json:"total_stock_value"`
	TotalSpend      decimal.Decimal  `json:"total_spend"`
	TotalPurchases  decimal.Decimal  `json:"total_purchases"`
}

// Cost reports stock value from items and spend from movements per cost
// center. Budgets come from the cost center table matched by code or name.
func (s *Service) Cost(ctx context.Context, from time.Time, costCenter string) (*CostReport, error) {
	items, err := s.repos.Inventory.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	moves, err := s.movementsSince(ctx, from, costCenter, "")
	if err != nil {
		return nil, err
	}
	centers, err := s.repos.CostCenters.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}

	rows := map[string]*CostCenterCost{}
	get := func(cc string) *CostCenterCost {
		r, ok := rows[cc]
		if !ok {
			r = &CostCenterCost{CostCenter: cc}
			rows[cc] = r
		}
		return r
	}
	for _, item := range items {
		cc := costCenterOf(item.CostCenter)
		if costCenter != "" && cc != costCenter {
			continue
		}
		r := get(cc)
		r.StockValue = r.StockValue.Add(item.StockValue())
	}
	for _, m := range moves {
		r := get(costCenterOf(m.CostCenter))
		switch m.Kind {
		case entity.MovementOut:
			r.Spend = r.Spend.Add(m.Total())
		case entity.MovementIn:
			r.Purchases = r.Purchases.Add(m.Total())
		}
	}
	for _, c := range centers {
		for _, name := range []string{c.Code, c.Name, c.Code + " - " + c.Name} {
			if r, ok := rows[name]; ok {
				r.Budget = c.Budget
				if c.Budget.IsPositive() {
					r.BudgetUsed, _ = r.Spend.Div(c.Budget).Mul(decimal.NewFromInt(100)).Round(1).Float64()
				}
				break
			}
		}
	}

	rep := &CostReport{CostCenters: make([]CostCenterCost, 0, len(rows))}
	for _, r := range rows {
		rep.CostCenters = append(rep.CostCenters, *r)
		rep.TotalStockValue = rep.TotalStockValue.Add(r.StockValue)
		rep.TotalSpend = rep.TotalSpend.Add(r.Spend)
		rep.TotalPurchases = rep.TotalPurchases.Add(r.Purchases)
	}
	sort.Slice(rep.CostCenters, func(i, j int) bool {
		return rep.CostCenters[i].CostCenter < rep.CostCenters[j].CostCenter
	})
	return rep, nil
}

// MovementHistory lists movements in the period, newest first.
func (s *Service) MovementHistory(ctx context.Context, from time.Time, costCenter, kind string) ([]entity.StockMovement, error) {
	moves, err := s.movementsSince(ctx, from, costCenter, kind)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].CreatedAt.After(moves[j].CreatedAt) })
	return moves, nil
}

type RoleConsumption struct {
	Role       string          `json:"role"`
	Employees  int             `json:"employees"`
	Deliveries int             `json:"deliveries"`
	Quantity   int             `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
}

// ConsumptionByRole joins deliveries with the employee's role and the
// current unit cost of each item.
func (s *Service) ConsumptionByRole(ctx context.Context, from time.Time) ([]RoleConsumption, error) {
	deliveries, err := s.deliveriesSince(ctx, from)
	if err != nil {
		return nil, err
	}
	users, err := s.usersByID(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.Inventory.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	costs := make(map[int64]decimal.Decimal, len(items))
	for _, item := range items {
		costs[item.ID] = item.UnitCost
	}

	rows := map[string]*RoleConsumption{}
	employees := map[string]map[string]bool{}
	for _, d := range deliveries {
		role := noRole
		if u, ok := users[d.EmployeeID]; ok && u.Role != "" {
			role = u.Role
		}
		r, ok := rows[role]
		if !ok {
			r = &RoleConsumption{Role: role}
			rows[role] = r
			employees[role] = map[string]bool{}
		}
		r.Deliveries++
		employees[role][strings.ToLower(d.EmployeeName)] = true
		for _, line := range d.Items {
			r.Quantity += line.Quantity
			r.Cost = r.Cost.Add(costs[line.ItemID].Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}

	out := make([]RoleConsumption, 0, len(rows))
	for role, r := range rows {
		r.Employees = len(employees[role])
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Cost.Equal(out[j].Cost) {
			return out[i].Cost.GreaterThan(out[j].Cost)
		}
		return out[i].Role < out[j].Role
	})
	return out, nil
}

func (s *Service) deliveriesSince(ctx context.Context, from time.Time) ([]entity.DeliveryRecord, error) {
	all, err := s.repos.Deliveries.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	day := entity.NewDate(from)
	out := make([]entity.DeliveryRecord, 0, len(all))
	for _, d := range all {
		if d.DeliveryDate.Before(day.Time) {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeliveryDate.Before(out[j].DeliveryDate.Time) })
	return out, nil
}

func (s *Service) usersByID(ctx context.Context) (map[int64]entity.User, error) {
	users, err := s.repos.Users.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	m := make(map[int64]entity.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m, nil
}
