// Package supplier manages suppliers and their user ratings.
package supplier

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
)

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

// List returns suppliers sorted by name, optionally filtered by name.
func (s *Service) List(ctx context.Context, search string) ([]entity.Supplier, error) {
	all, err := s.repos.Suppliers.All(ctx, rowstore.ListOptions{OrderBy: "name"})
	if err != nil {
		return nil, err
	}
	if search == "" {
		return all, nil
	}
	out := all[:0]
	for _, sp := range all {
		if service.Contains(sp.Name, search) {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Supplier, error) {
	return s.repos.Suppliers.Get(ctx, id)
}

type Input struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, service.Invalid("name", "is required")
	}
	return s.repos.Suppliers.Create(ctx, &entity.Supplier{
		Name:        strings.TrimSpace(in.Name),
		ContactInfo: in.ContactInfo,
	})
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*entity.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, service.Invalid("name", "is required")
	}
	return s.repos.Suppliers.Update(ctx, id, rowstore.Row{
		"name":         strings.TrimSpace(in.Name),
		"contact_info": in.ContactInfo,
	})
}

type ReviewInput struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// AddReview stores a rating and recomputes the supplier's average from all
// of its reviews.
func (s *Service) AddReview(ctx context.Context, supplierID int64, in ReviewInput) (*entity.SupplierReview, *entity.Supplier, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, nil, service.Invalid("rating", "must be between 1 and 5")
	}
	if _, err := s.repos.Suppliers.Get(ctx, supplierID); err != nil {
		return nil, nil, err
	}
	review, err := s.repos.SupplierReviews.Create(ctx, &entity.SupplierReview{
		SupplierID: supplierID,
		UserID:     in.UserID,
		UserName:   in.UserName,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		CreatedAt:  s.now(),
	})
	if err != nil {
		return nil, nil, err
	}
	reviews, err := s.Reviews(ctx, supplierID)
	if err != nil {
		return review, nil, err
	}
	avg, total := AverageRating(reviews)
	updated, err := s.repos.Suppliers.Update(ctx, supplierID, rowstore.Row{
		"average_rating": avg,
		"total_reviews":  total,
	})
	if err != nil {
		return review, nil, err
	}
	return review, updated, nil
}

// AverageRating is the mean rating rounded to one decimal.
func AverageRating(reviews []entity.SupplierReview) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)*10/float64(len(reviews))) / 10, len(reviews)
}

// Reviews lists a supplier's reviews, newest first.
func (s *Service) Reviews(ctx context.Context, supplierID int64) ([]entity.SupplierReview, error) {
	rs, err := s.repos.SupplierReviews.FindBy(ctx, "supplier_id", strconv.FormatInt(supplierID, 10))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
	return rs, nil
}
