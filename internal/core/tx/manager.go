// Package tx defines the transaction management contract.
// Domain services depend on this interface; the implementation lives in
// infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs functions inside database transactions.
type Manager interface {
	// RunInTransaction executes fn within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	// Nested calls reuse the transaction already present in ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// ReadOnly executes fn in a read-only transaction. Attempts to modify
	// data inside fn will fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
