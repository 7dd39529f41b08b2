package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"focolog/core/rowstore"
	"focolog/model/entity"
)

// ESocialHeader is the column layout of the eSocial delivery export.
var ESocialHeader = []string{"Data", "Funcionario", "CPF", "EPI", "CA", "Entrega", "Devolucao"}

const brDate = "02/01/2006"

// ESocialRow is one delivered item. Returned is empty until returns are
// tracked.
type ESocialRow struct {
	Date     string `json:"data"`
	Employee string `json:"funcionario"`
	CPF      string `json:"cpf"`
	EPI      string `json:"epi"`
	CA       string `json:"ca"`
	Delivery string `json:"entrega"`
	Returned string `json:"devolucao"`
}

func (r ESocialRow) record() []string {
	return []string{r.Date, r.Employee, r.CPF, r.EPI, r.CA, r.Delivery, r.Returned}
}

// ESocialRows flattens deliveries since from into one row per item line.
// Uniform lines are skipped since they carry no CA.
func (s *Service) ESocialRows(ctx context.Context, from time.Time) ([]ESocialRow, error) {
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
	byID := make(map[int64]entity.InventoryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	rows := []ESocialRow{}
	for _, d := range deliveries {
		day := d.DeliveryDate.Format(brDate)
		cpf := users[d.EmployeeID].CPF
		for _, line := range d.Items {
			item, ok := byID[line.ItemID]
			if ok && item.Type == entity.ItemTypeUniform {
				continue
			}
			name := line.ItemName
			if name == "" {
				name = item.Name
			}
			rows = append(rows, ESocialRow{
				Date:     day,
				Employee: d.EmployeeName,
				CPF:      cpf,
				EPI:      name,
				CA:       item.CANumber,
				Delivery: day,
			})
		}
	}
	return rows, nil
}

// WriteESocial writes the eSocial CSV for deliveries since from.
func (s *Service) WriteESocial(ctx context.Context, from time.Time, w io.Writer) (int, error) {
	rows, err := s.ESocialRows(ctx, from)
	if err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ESocialHeader); err != nil {
		return 0, err
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return 0, fmt.Errorf("esocial: write: %w", err)
		}
	}
	cw.Flush()
	return len(rows), cw.Error()
}
