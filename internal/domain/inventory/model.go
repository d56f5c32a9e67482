// Package inventory processes manual stock adjustments and keeps their
// history.
package inventory

import (
	"strings"
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
)

// AdjustmentType is the direction of a manual stock adjustment.
type AdjustmentType string

const (
	AdjustmentIncrease AdjustmentType = "increase"
	AdjustmentDecrease AdjustmentType = "decrease"
)

// Valid reports whether t is a known adjustment type.
func (t AdjustmentType) Valid() bool {
	return t == AdjustmentIncrease || t == AdjustmentDecrease
}

// Adjustment is a recorded manual stock correction.
type Adjustment struct {
	ID             id.ID          `json:"id" db:"id"`
	ProductID      id.ID          `json:"product_id" db:"product_id"`
	ProductName    string         `json:"product_name" db:"product_name"`
	AdjustmentType AdjustmentType `json:"adjustment_type" db:"adjustment_type"`
	Quantity       int            `json:"quantity" db:"quantity"`
	Reason         string         `json:"reason" db:"reason"`
	PreviousStock  int            `json:"previous_stock" db:"previous_stock"`
	NewStock       int            `json:"new_stock" db:"new_stock"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// CreateAdjustmentInput holds the fields for a requested adjustment.
type CreateAdjustmentInput struct {
	ProductID      id.ID
	AdjustmentType AdjustmentType
	Quantity       int
	Reason         string
}

func (in CreateAdjustmentInput) Validate() error {
	if id.IsNil(in.ProductID) {
		return apperror.NewValidation("adjustment product_id is required")
	}
	if !in.AdjustmentType.Valid() {
		return apperror.NewValidation("adjustment_type must be either increase or decrease")
	}
	if in.Quantity < 1 {
		return apperror.NewValidation("adjustment quantity must be at least 1")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return apperror.NewValidation("adjustment reason is required")
	}
	return nil
}
