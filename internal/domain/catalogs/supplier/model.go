// Package supplier manages the supplier catalog used by purchase orders.
package supplier

import (
	"strings"
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
)

type Supplier struct {
	ID           id.ID     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ContactName  string    `json:"contact_name" db:"contact_name"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	ContactPhone string    `json:"contact_phone" db:"contact_phone"`
	Address      string    `json:"address" db:"address"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return apperror.NewValidation("supplier name is required")
	}
	return nil
}
