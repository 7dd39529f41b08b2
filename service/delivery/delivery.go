// Package delivery records PPE hand-overs to employees.
package delivery

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
	"focolog/service/inventory"
)

// signedImage is stored in the signature column when the signature was
// captured as an image.
const signedImage = "assinatura digital"

type Service struct {
	repos      *repository.Repositories
	inventory  *inventory.Service
	signatures *SignatureStore
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(repos *repository.Repositories, inv *inventory.Service, signatures *SignatureStore, logger *zap.Logger) *Service {
	return &Service{
		repos:      repos,
		inventory:  inv,
		signatures: signatures,
		logger:     logger,
		now:        inv.Now,
	}
}

// Input describes a hand-over. Signature is either a typed name or a
// base64 image data URL.
type Input struct {
	RequestID    int64                `json:"request_id"`
	EmployeeID   int64                `json:"employee_id"`
	EmployeeName string               `json:"employee_name"`
	Supervisor   string               `json:"supervisor"`
	Signature    string               `json:"signature"`
	CostCenter   string               `json:"cost_center"`
	Items        []entity.RequestItem `json:"items"`
}

func (in Input) validate() error {
	switch {
	case strings.TrimSpace(in.EmployeeName) == "":
		return service.Invalid("employee_name", "is required")
	case strings.TrimSpace(in.Supervisor) == "":
		return service.Invalid("supervisor", "is required")
	case strings.TrimSpace(in.Signature) == "":
		return service.Invalid("signature", "is required")
	case len(in.Items) == 0:
		return service.Invalid("items", "at least one item is required")
	}
	return nil
}

// Deliver takes the items out of stock and stores the delivery record.
func (s *Service) Deliver(ctx context.Context, in Input) (*entity.DeliveryRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	ref := "ENTREGA"
	if in.RequestID > 0 {
		ref = fmt.Sprintf("REQ-%d", in.RequestID)
	}
	issued, err := s.inventory.Issue(ctx, in.Items, ref, in.CostCenter)
	if err != nil {
		return nil, err
	}

	rec := &entity.DeliveryRecord{
		RequestID:    in.RequestID,
		EmployeeID:   in.EmployeeID,
		EmployeeName: strings.TrimSpace(in.EmployeeName),
		Items:        issued,
		DeliveryDate: entity.NewDate(s.now()),
		Signature:    in.Signature,
		Supervisor:   strings.TrimSpace(in.Supervisor),
	}
	img, isImage := DecodeDataURL(in.Signature)
	if isImage {
		rec.Signature = signedImage
	}
	created, err := s.repos.Deliveries.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	if isImage && s.signatures != nil {
		updated, err := s.attachSignature(ctx, created.ID, img)
		if err != nil {
			s.logger.Warn("signature image not stored", zap.Int64("delivery_id", created.ID), zap.Error(err))
			return created, nil
		}
		return updated, nil
	}
	return created, nil
}

// QuickDeliver is the scan-based delivery: repeated scans of the same item
// and size count once.
func (s *Service) QuickDeliver(ctx context.Context, in Input) (*entity.DeliveryRecord, error) {
	in.Items = collapse(in.Items)
	return s.Deliver(ctx, in)
}

func collapse(items []entity.RequestItem) []entity.RequestItem {
	seen := make(map[string]bool, len(items))
	out := make([]entity.RequestItem, 0, len(items))
	for _, it := range items {
		key := strings.ToLower(strings.TrimSpace(it.ItemName))
		if it.ItemID > 0 {
			key = strconv.FormatInt(it.ItemID, 10)
		}
		key += "|" + strings.ToLower(strings.TrimSpace(it.Size))
		if seen[key] {
			continue
		}
		seen[key] = true
		if it.Quantity <= 0 {
			it.Quantity = 1
		}
		out = append(out, it)
	}
	return out
}

// UploadSignature stores an uploaded signature image for a delivery.
func (s *Service) UploadSignature(ctx context.Context, id int64, r io.Reader) (*entity.DeliveryRecord, error) {
	if _, err := s.repos.Deliveries.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.attachSignature(ctx, id, r)
}

func (s *Service) attachSignature(ctx context.Context, id int64, r io.Reader) (*entity.DeliveryRecord, error) {
	if s.signatures == nil {
		return nil, service.Invalid("signature", "signature storage is not configured")
	}
	url, err := s.signatures.Save(r)
	if err != nil {
		return nil, service.Invalid("signature", "%v", err)
	}
	return s.repos.Deliveries.Update(ctx, id, rowstore.Row{"signature_image_url": url})
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.DeliveryRecord, error) {
	return s.repos.Deliveries.Get(ctx, id)
}

// List returns deliveries, newest first. employeeID 0 means everyone.
func (s *Service) List(ctx context.Context, employeeID int64, search string) ([]entity.DeliveryRecord, error) {
	opts := rowstore.ListOptions{}
	if employeeID > 0 {
		opts.Filters = map[string]string{"employee_id": strconv.FormatInt(employeeID, 10)}
	}
	recs, err := s.repos.Deliveries.All(ctx, opts)
	if err != nil {
		return nil, err
	}
	out := recs[:0:0]
	for _, r := range recs {
		if search != "" && !service.Contains(r.EmployeeName, search) && !service.Contains(r.Supervisor, search) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DeliveryDate.Equal(out[j].DeliveryDate.Time) {
			return out[i].DeliveryDate.After(out[j].DeliveryDate.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

const (
	HoldingActive   = "active"
	HoldingExpiring = "expiring"
	HoldingExpired  = "expired"
)

// Holding is one PPE item currently with an employee.
type Holding struct {
	DeliveryID   int64        `json:"delivery_id"`
	ItemID       int64        `json:"item_id"`
	Name         string       `json:"name"`
	Size         string       `json:"size"`
	Quantity     int          `json:"quantity"`
	CANumber     string       `json:"ca_number,omitempty"`
	DeliveryDate entity.Date  `json:"delivery_date"`
	ExpiryDate   *entity.Date `json:"expiry_date,omitempty"`
	Status       string       `json:"status"`
}

// Holdings lists what an employee has received, with the CA validity of
// each item.
func (s *Service) Holdings(ctx context.Context, employeeID int64) ([]Holding, error) {
	recs, err := s.List(ctx, employeeID, "")
	if err != nil {
		return nil, err
	}
	items, err := s.inventory.Items(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entity.InventoryItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := []Holding{}
	for _, r := range recs {
		for _, line := range r.Items {
			h := Holding{
				DeliveryID:   r.ID,
				ItemID:       line.ItemID,
				Name:         line.ItemName,
				Size:         line.Size,
				Quantity:     line.Quantity,
				DeliveryDate: r.DeliveryDate,
				Status:       HoldingActive,
			}
			if item, ok := byID[line.ItemID]; ok {
				h.CANumber = item.CANumber
				h.ExpiryDate = item.CAExpiryDate
				if status, _, ok := inventory.CAStatus(item.CAExpiryDate, s.now(), s.inventory.CAWarningDays()); ok {
					switch status {
					case inventory.CAExpired:
						h.Status = HoldingExpired
					case inventory.CAWarning:
						h.Status = HoldingExpiring
					}
				}
			}
			out = append(out, h)
		}
	}
	return out, nil
}
