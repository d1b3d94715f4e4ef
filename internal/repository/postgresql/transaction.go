package postgresql

import (
	"context"
	"fmt"

	"github.com/cardledger/payroll-backend-go/internal/domain/transaction"
	"github.com/cardledger/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type transactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) transaction.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) ListByMonth(ctx context.Context, month string, limit, offset int) ([]transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	// Malformed numerics from ingestion are coerced to zero rather than
	// failing the page: aggregate correctness over a month outweighs a
	// single bad row.
	query := `
		SELECT id, employee_id, month, casino_name, card_number,
			   COALESCE(deposit_amount, 0), COALESCE(withdrawal_amount, 0),
			   COALESCE(gross_profit, 0), COALESCE(net_profit, COALESCE(gross_profit, 0)),
			   occurred_at
		FROM transactions
		WHERE month = $1
		ORDER BY occurred_at, id
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, month, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var result []transaction.Transaction
	for rows.Next() {
		var t transaction.Transaction
		err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.Month, &t.CasinoName, &t.CardNumber,
			&t.DepositAmount, &t.WithdrawalAmount,
			&t.GrossProfit, &t.NetProfit,
			&t.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return result, nil
}

func (r *transactionRepository) GetMonthlyExpenses(ctx context.Context, month string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT total_amount
		FROM monthly_expenses
		WHERE month = $1
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, month).Scan(&total)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get monthly expenses: %w", err)
	}

	return total, nil
}

func (r *transactionRepository) UpdateNetProfits(ctx context.Context, month string, netByID map[string]decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	for id, net := range netByID {
		batch.Queue(`UPDATE transactions SET net_profit = $1 WHERE id = $2 AND month = $3`, net, id, month)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range netByID {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to update net profit: %w", err)
		}
	}

	return nil
}
