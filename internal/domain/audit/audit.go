// Package audit records stock-mutating operations for later review.
package audit

import (
	"context"
	"time"

	"retailcore/internal/core/id"
)

// Entry describes a single audited operation.
type Entry struct {
	ID         id.ID          `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   id.ID          `json:"entity_id"`
	ActorID    id.ID          `json:"actor_id,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Recorder persists audit entries. Implementations must not fail the
// business operation: callers record best-effort after commit.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Actions recorded by the engine.
const (
	ActionSaleCreated    = "sale.created"
	ActionOrderReceived  = "purchase_order.received"
	ActionOrderCancelled = "purchase_order.cancelled"
	ActionStockAdjusted  = "inventory.adjusted"
)
