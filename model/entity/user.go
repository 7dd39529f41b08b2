package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleAdmin      = "admin"
	RoleHR         = "hr"
	RolePurchasing = "purchasing"
	RoleSupervisor = "supervisor"
)

// Roles lists the valid user roles.
var Roles = []string{RoleAdmin, RoleHR, RolePurchasing, RoleSupervisor}

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	for _, role := range Roles {
		if role == r {
			return true
		}
	}
	return false
}

// User is a row of the users table.
type User struct {
	ID           int64     `json:"id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	CPF          string    `json:"cpf"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns a copy without credentials.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// CostCenter is a row of the cost_centers table.
type CostCenter struct {
	ID     int64           `json:"id,omitempty"`
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	Active bool            `json:"active"`
}
