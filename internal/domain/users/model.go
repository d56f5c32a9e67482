// Package users manages system accounts and their roles.
package users

import (
	"strings"
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
)

// Role controls what an account may do. Admins manage catalogs, users
// and purchase orders; cashiers process sales.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// User is a system account. PasswordHash holds the bcrypt hash and is
// never serialized.
type User struct {
	ID           id.ID     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return apperror.NewValidation("user name is required")
	}
	if !strings.Contains(u.Email, "@") {
		return apperror.NewValidation("user email is invalid")
	}
	if !u.Role.Valid() {
		return apperror.NewValidation("user role must be either admin or cashier")
	}
	return nil
}
