package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"retailcore/internal/core/tx"
	"retailcore/pkg/logger"
)

type txKey struct{}

// Tx wraps pgx.Tx for type safety in context.
type Tx struct {
	pgx.Tx
}

// Querier is the common interface of pgxpool.Pool and pgx.Tx
// used by repositories.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxManager runs functions inside database transactions. Repositories
// resolve their querier through GetQuerier so that all statements issued
// within a RunInTransaction callback share the same transaction.
type TxManager struct {
	pool *pgxpool.Pool
}

var _ tx.Manager = (*TxManager)(nil)

func NewTxManager(pool *Pool) *TxManager {
	return &TxManager{pool: pool.Pool}
}

// GetTx extracts the transaction from context, if any.
func GetTx(ctx context.Context) (*Tx, bool) {
	t, ok := ctx.Value(txKey{}).(*Tx)
	return t, ok
}

// GetQuerier returns the active transaction if present, otherwise the pool.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if t, ok := GetTx(ctx); ok {
		return t.Tx
	}
	return m.pool
}

type txOptions struct {
	isoLevel         pgx.TxIsoLevel
	accessMode       pgx.TxAccessMode
	statementTimeout time.Duration
}

// TxOption configures a transaction.
type TxOption func(*txOptions)

// WithIsoLevel sets the transaction isolation level.
func WithIsoLevel(level pgx.TxIsoLevel) TxOption {
	return func(o *txOptions) { o.isoLevel = level }
}

// WithStatementTimeout sets a per-transaction statement timeout.
func WithStatementTimeout(d time.Duration) TxOption {
	return func(o *txOptions) { o.statementTimeout = d }
}

var tracer = otel.Tracer("retailcore/tx")

// RunInTransaction executes fn inside a read-write transaction. If a
// transaction is already active in ctx the call joins it instead of
// opening a nested one.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, pgx.ReadWrite, fn)
}

// RunWithOptions is RunInTransaction with explicit transaction options.
func (m *TxManager) RunWithOptions(ctx context.Context, fn func(ctx context.Context) error, opts ...TxOption) error {
	return m.run(ctx, pgx.ReadWrite, fn, opts...)
}

// ReadOnly executes fn inside a read-only transaction.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, pgx.ReadOnly, fn)
}

func (m *TxManager) run(ctx context.Context, mode pgx.TxAccessMode, fn func(ctx context.Context) error, opts ...TxOption) error {
	if _, ok := GetTx(ctx); ok {
		return fn(ctx)
	}

	options := txOptions{
		isoLevel:         pgx.ReadCommitted,
		accessMode:       mode,
		statementTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}

	ctx, span := tracer.Start(ctx, "tx.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.tx.isolation", string(options.isoLevel)),
		attribute.String("db.tx.access_mode", string(options.accessMode)),
	)

	pgxTx, err := m.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   options.isoLevel,
		AccessMode: options.accessMode,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "begin failed")
		return fmt.Errorf("begin transaction: %w", err)
	}

	if options.statementTimeout > 0 {
		timeoutMs := options.statementTimeout.Milliseconds()
		if _, err := pgxTx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", timeoutMs)); err != nil {
			_ = pgxTx.Rollback(context.Background())
			return fmt.Errorf("set statement timeout: %w", err)
		}
	}

	txCtx := context.WithValue(ctx, txKey{}, &Tx{Tx: pgxTx})

	if err := fn(txCtx); err != nil {
		// Rollback with a fresh context so a cancelled ctx does not
		// leave the transaction open.
		if rbErr := pgxTx.Rollback(context.Background()); rbErr != nil && rbErr != pgx.ErrTxClosed {
			logger.Error(ctx, "transaction rollback failed", "error", rbErr)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "rolled back")
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
