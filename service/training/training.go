// Package training tracks employee certifications and their validity.
package training

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

const DefaultWarningDays = 30

// Status derives a training status from its expiry date.
func Status(expiry entity.Date, now time.Time, warningDays int) string {
	days := expiry.DaysUntil(now)
	switch {
	case days < 0:
		return entity.TrainingExpired
	case days <= warningDays:
		return entity.TrainingExpiring
	}
	return entity.TrainingValid
}

type Service struct {
	repos       *repository.Repositories
	logger      *zap.Logger
	warningDays int
	now         func() time.Time
}

func NewService(repos *repository.Repositories, logger *zap.Logger, warningDays int, now func() time.Time) *Service {
	if warningDays <= 0 {
		warningDays = DefaultWarningDays
	}
	if now == nil {
		now = time.Now
	}
	return &Service{repos: repos, logger: logger, warningDays: warningDays, now: now}
}

func (s *Service) WarningDays() int { return s.warningDays }

type Input struct {
	UserID         int64       `json:"user_id"`
	UserName       string      `json:"user_name"`
	TrainingType   string      `json:"training_type"`
	IssueDate      entity.Date `json:"issue_date"`
	ExpiryDate     entity.Date `json:"expiry_date"`
	CertificateURL string      `json:"certificate_url"`
}

func (in Input) validate() error {
	switch {
	case strings.TrimSpace(in.UserName) == "":
		return service.Invalid("user_name", "is required")
	case strings.TrimSpace(in.TrainingType) == "":
		return service.Invalid("training_type", "is required")
	case in.IssueDate.IsZero():
		return service.Invalid("issue_date", "is required")
	case in.ExpiryDate.IsZero():
		return service.Invalid("expiry_date", "is required")
	case !in.ExpiryDate.After(in.IssueDate.Time):
		return service.Invalid("expiry_date", "must be after issue_date")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.Training, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repos.Trainings.Create(ctx, &entity.Training{
		UserID:         in.UserID,
		UserName:       strings.TrimSpace(in.UserName),
		TrainingType:   strings.TrimSpace(in.TrainingType),
		IssueDate:      in.IssueDate,
		ExpiryDate:     in.ExpiryDate,
		CertificateURL: in.CertificateURL,
		Status:         Status(in.ExpiryDate, s.now(), s.warningDays),
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repos.Trainings.Delete(ctx, id)
}

// All returns every training with its status derived at call time.
func (s *Service) All(ctx context.Context) ([]entity.Training, error) {
	ts, err := s.repos.Trainings.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range ts {
		ts[i].Status = Status(ts[i].ExpiryDate, now, s.warningDays)
	}
	return ts, nil
}

// List filters by status ("all" or empty for every status) and searches user
// name and training type. Results are ordered by expiry date.
func (s *Service) List(ctx context.Context, status, search string) ([]entity.Training, error) {
	ts, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := ts[:0]
	for _, t := range ts {
		if status != "" && status != "all" && t.Status != status {
			continue
		}
		if search != "" && !service.Contains(t.UserName, search) && !service.Contains(t.TrainingType, search) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate.Time) })
	return out, nil
}

// Counts returns the number of trainings per status.
func (s *Service) Counts(ctx context.Context) (map[string]int, error) {
	ts, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{
		entity.TrainingValid:    0,
		entity.TrainingExpiring: 0,
		entity.TrainingExpired:  0,
	}
	for _, t := range ts {
		counts[t.Status]++
	}
	return counts, nil
}

// RefreshStatuses rewrites stored statuses that no longer match the expiry
// date and returns how many rows changed.
func (s *Service) RefreshStatuses(ctx context.Context) (int, error) {
	stored, err := s.repos.Trainings.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return 0, err
	}
	now := s.now()
	changed := 0
	for _, t := range stored {
		want := Status(t.ExpiryDate, now, s.warningDays)
		if t.Status == want {
			continue
		}
		if _, err := s.repos.Trainings.Update(ctx, t.ID, rowstore.Row{"status": want}); err != nil {
			return changed, err
		}
		changed++
	}
	if changed > 0 {
		s.logger.Info("training statuses refreshed", zap.Int("changed", changed))
	}
	return changed, nil
}
