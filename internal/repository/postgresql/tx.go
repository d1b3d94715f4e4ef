package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cardledger/payroll-backend-go/internal/domain/payroll"
	"github.com/cardledger/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// WithTransaction executes fn inside a database transaction. The transaction
// is carried in the context so every repository call inside fn joins it via
// GetQuerier.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				slog.Error("rollback failed during panic recovery", "error", rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns the ambient transaction when one is in flight, the pool
// otherwise.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

// TxRunner adapts WithTransaction to the recompute service contract.
type TxRunner struct {
	db *database.DB
}

func NewTxRunner(db *database.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, fn)
}

// lockMonth serializes writers per month code. Two recomputes for the same
// month must not interleave their replace writes; different months proceed
// independently. The lock is released with the surrounding transaction, and
// a holder already present means another recompute is mid-flight, so the
// caller bails out instead of queueing behind it.
func lockMonth(ctx context.Context, q database.Querier, month string) error {
	var acquired bool
	row := q.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock(hashtext($1))`, month)
	if err := row.Scan(&acquired); err != nil {
		return fmt.Errorf("acquire month lock: %w", err)
	}
	if !acquired {
		return payroll.ErrRecomputeConflict
	}
	return nil
}
