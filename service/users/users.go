// Package users manages accounts and cost centers.
package users

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"focolog/core/rowstore"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const minPassword = 6

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

// Input creates or updates a user. An empty Password keeps the current
// hash on update. A nil Active means true on create and unchanged on
// update.
type Input struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	CPF        string `json:"cpf"`
	Password   string `json:"password"`
	Active     *bool  `json:"active"`
}

func (in Input) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return service.Invalid("name", "is required")
	case !strings.Contains(in.Email, "@"):
		return service.Invalid("email", "is invalid")
	case !entity.ValidRole(in.Role):
		return service.Invalid("role", "must be one of %s", strings.Join(entity.Roles, ", "))
	case in.Password != "" && len(in.Password) < minPassword:
		return service.Invalid("password", "must have at least %d characters", minPassword)
	}
	return nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func publicAll(us []entity.User) []entity.User {
	for i := range us {
		us[i] = us[i].Public()
	}
	return us
}

// List returns users without credentials, sorted by name.
func (s *Service) List(ctx context.Context, search string) ([]entity.User, error) {
	all, err := s.repos.Users.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(all))
	for _, u := range all {
		if search != "" && !service.Contains(u.Name, search) && !service.Contains(u.Email, search) &&
			!service.Contains(u.Department, search) {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return publicAll(out), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.repos.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*entity.User, error) {
	all, err := s.repos.Users.All(ctx, rowstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	email = normalizeEmail(email)
	for i := range all {
		if normalizeEmail(all[i].Email) == email {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, service.Invalid("email", "is already in use")
	}
	u := &entity.User{
		Name:       strings.TrimSpace(in.Name),
		Email:      normalizeEmail(in.Email),
		Role:       in.Role,
		Department: in.Department,
		CPF:        in.CPF,
		Active:     in.Active == nil || *in.Active,
		CreatedAt:  s.now(),
	}
	if in.Password != "" {
		if u.PasswordHash, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	created, err := s.repos.Users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.Int64("id", created.ID), zap.String("role", created.Role))
	pub := created.Public()
	return &pub, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*entity.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, service.Invalid("email", "is already in use")
	}
	fields := rowstore.Row{
		"name":       strings.TrimSpace(in.Name),
		"email":      normalizeEmail(in.Email),
		"role":       in.Role,
		"department": in.Department,
		"cpf":        in.CPF,
	}
	if in.Active != nil {
		fields["active"] = *in.Active
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	u, err := s.repos.Users.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repos.Users.Delete(ctx, id)
}

// Authenticate checks credentials of an active user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active || u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	pub := u.Public()
	return &pub, nil
}

// EnsureAdmin creates the bootstrap admin unless a user with that email
// exists. created reports whether a row was written.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (u *entity.User, created bool, err error) {
	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		pub := existing.Public()
		return &pub, false, nil
	}
	u, err = s.Create(ctx, Input{Name: "Administrador", Email: email, Role: entity.RoleAdmin, Password: password})
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}
