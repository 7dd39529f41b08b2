// Package seed loads a small demo dataset through the regular services so
// every row passes the same validation as API writes.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"focolog/model/entity"
	"focolog/service/inventory"
	"focolog/service/supplier"
	"focolog/service/training"
	"focolog/service/users"
)

// ErrAlreadySeeded is returned when the store already holds inventory.
var ErrAlreadySeeded = errors.New("seed: store already has inventory items")

type Services struct {
	Users     *users.Service
	Inventory *inventory.Service
	Suppliers *supplier.Service
	Trainings *training.Service
}

// Result counts created rows per table.
type Result struct {
	CostCenters int `json:"cost_centers"`
	Users       int `json:"users"`
	Items       int `json:"items"`
	Suppliers   int `json:"suppliers"`
	Trainings   int `json:"trainings"`
}

const demoPassword = "focolog123"

// Run creates the demo rows. Without force it refuses a store that already
// has inventory.
func Run(ctx context.Context, svc Services, now time.Time, force bool, logger *zap.Logger) (*Result, error) {
	if !force {
		items, err := svc.Inventory.Items(ctx)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return nil, ErrAlreadySeeded
		}
	}
	res := &Result{}

	for _, cc := range []users.CostCenterInput{
		{Code: "CC-001", Name: "Produção", Budget: decimal.NewFromInt(15000)},
		{Code: "CC-002", Name: "Manutenção", Budget: decimal.NewFromInt(8000)},
		{Code: "CC-003", Name: "Logística", Budget: decimal.NewFromInt(5000)},
	} {
		if _, err := svc.Users.CreateCostCenter(ctx, cc); err != nil {
			return res, fmt.Errorf("seed cost center %s: %w", cc.Code, err)
		}
		res.CostCenters++
	}

	people := []users.Input{
		{Name: "Marina Souza", Email: "rh@focolog.com", Role: entity.RoleHR, Department: "RH", CPF: "111.444.777-35"},
		{Name: "Carlos Lima", Email: "compras@focolog.com", Role: entity.RolePurchasing, Department: "Compras", CPF: "390.533.447-05"},
		{Name: "João Pereira", Email: "supervisor@focolog.com", Role: entity.RoleSupervisor, Department: "Produção", CPF: "529.982.247-25"},
	}
	created := make([]*entity.User, 0, len(people))
	for _, in := range people {
		in.Password = demoPassword
		u, err := svc.Users.Create(ctx, in)
		if err != nil {
			return res, fmt.Errorf("seed user %s: %w", in.Email, err)
		}
		created = append(created, u)
		res.Users++
	}

	soon := entity.NewDate(now.AddDate(0, 0, 20))
	later := entity.NewDate(now.AddDate(1, 0, 0))
	for _, in := range []inventory.ItemInput{
		{Name: "Capacete de Segurança", Type: entity.ItemTypeEPI, Category: "Proteção da Cabeça", Size: "Único", Quantity: 40, MinStock: 10, UnitCost: decimal.RequireFromString("35.90"), Supplier: "Protege EPI", CostCenter: "CC-001", CANumber: "31469", CAExpiryDate: &later},
		{Name: "Luva de Vaqueta", Type: entity.ItemTypeEPI, Category: "Proteção das Mãos", Size: "G", Quantity: 8, MinStock: 20, UnitCost: decimal.RequireFromString("18.50"), Supplier: "Protege EPI", CostCenter: "CC-002", CANumber: "15532", CAExpiryDate: &soon},
		{Name: "Bota de Segurança", Type: entity.ItemTypeEPI, Category: "Calçados", Size: "42", Quantity: 15, MinStock: 12, UnitCost: decimal.RequireFromString("129.00"), Supplier: "Calçados Forte", CostCenter: "CC-001", CANumber: "40122", CAExpiryDate: &later},
		{Name: "Protetor Auricular", Type: entity.ItemTypeEPI, Category: "Proteção Auditiva", Size: "Único", Quantity: 200, MinStock: 50, UnitCost: decimal.RequireFromString("1.20"), Supplier: "Protege EPI", CostCenter: "CC-003", CANumber: "5745", CAExpiryDate: &later},
		{Name: "Camisa Uniforme", Type: entity.ItemTypeUniform, Category: "Uniformes", Size: "M", Quantity: 30, MinStock: 10, UnitCost: decimal.RequireFromString("45.00"), Supplier: "Têxtil Sul", CostCenter: "CC-001"},
		{Name: "Calça Uniforme", Type: entity.ItemTypeUniform, Category: "Uniformes", Size: "42", Quantity: 4, MinStock: 10, UnitCost: decimal.RequireFromString("59.90"), Supplier: "Têxtil Sul", CostCenter: "CC-003"},
	} {
		if _, err := svc.Inventory.Create(ctx, in); err != nil {
			return res, fmt.Errorf("seed item %s: %w", in.Name, err)
		}
		res.Items++
	}

	for _, in := range []supplier.Input{
		{Name: "Protege EPI", ContactInfo: "vendas@protegeepi.com.br"},
		{Name: "Calçados Forte", ContactInfo: "(11) 4002-8922"},
		{Name: "Têxtil Sul", ContactInfo: "contato@textilsul.com.br"},
	} {
		if _, err := svc.Suppliers.Create(ctx, in); err != nil {
			return res, fmt.Errorf("seed supplier %s: %w", in.Name, err)
		}
		res.Suppliers++
	}

	for i, in := range []training.Input{
		{TrainingType: "NR-35 Trabalho em Altura", IssueDate: entity.NewDate(now.AddDate(-2, 0, -10)), ExpiryDate: entity.NewDate(now.AddDate(0, 0, -10))},
		{TrainingType: "NR-10 Segurança em Eletricidade", IssueDate: entity.NewDate(now.AddDate(-2, 0, 15)), ExpiryDate: entity.NewDate(now.AddDate(0, 0, 15))},
		{TrainingType: "NR-06 Uso de EPI", IssueDate: entity.NewDate(now.AddDate(0, -1, 0)), ExpiryDate: entity.NewDate(now.AddDate(1, 0, 0))},
	} {
		u := created[i%len(created)]
		in.UserID, in.UserName = u.ID, u.Name
		if _, err := svc.Trainings.Create(ctx, in); err != nil {
			return res, fmt.Errorf("seed training %s: %w", in.TrainingType, err)
		}
		res.Trainings++
	}

	logger.Info("demo data seeded",
		zap.Int("users", res.Users),
		zap.Int("items", res.Items),
		zap.Int("suppliers", res.Suppliers),
		zap.Int("trainings", res.Trainings),
	)
	return res, nil
}
