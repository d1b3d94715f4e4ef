package transaction

import (
	"context"

	"github.com/shopspring/decimal"
)

// TransactionRepository is the store contract for the month snapshot. The
// store guarantees no ordering; callers re-sort as needed.
type TransactionRepository interface {
	// ListByMonth returns one page of the month's transactions. A short page
	// (fewer rows than limit) signals the end of the set.
	ListByMonth(ctx context.Context, month string, limit, offset int) ([]Transaction, error)

	// GetMonthlyExpenses returns the recorded organizational expense total
	// for the month, decimal zero when absent.
	GetMonthlyExpenses(ctx context.Context, month string) (decimal.Decimal, error)

	// UpdateNetProfits writes recomputed per-transaction net profit values.
	UpdateNetProfits(ctx context.Context, month string, netByID map[string]decimal.Decimal) error
}
