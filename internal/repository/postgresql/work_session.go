package postgresql

import (
	"context"
	"fmt"

	"github.com/cardledger/payroll-backend-go/internal/domain/session"
	"github.com/cardledger/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workSessionRepository struct {
	db *database.DB
}

func NewWorkSessionRepository(db *database.DB) session.WorkSessionRepository {
	return &workSessionRepository{db: db}
}

// ReplaceForMonth supersedes the month's sessions with the new generation.
// Must run inside WithTransaction, same as the salary replace.
func (r *workSessionRepository) ReplaceForMonth(ctx context.Context, month, generationID string, sessions []session.WorkSession) error {
	q := GetQuerier(ctx, r.db)

	if err := lockMonth(ctx, q, month); err != nil {
		return err
	}

	if _, err := q.Exec(ctx, `DELETE FROM work_sessions WHERE month = $1`, month); err != nil {
		return fmt.Errorf("failed to delete superseded work sessions: %w", err)
	}

	batch := &pgx.Batch{}
	for _, ws := range sessions {
		batch.Queue(`
			INSERT INTO work_sessions (
				employee_id, month, generation_id, card_number, casino_name,
				deposit_amount, withdrawal_amount, deposit_time, withdrawal_time,
				duration_minutes, gross_profit, is_completed
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, ws.EmployeeID, month, generationID, ws.CardNumber, ws.CasinoName,
			ws.DepositAmount, ws.WithdrawalAmount, ws.DepositTime, ws.WithdrawalTime,
			ws.DurationMinutes, ws.GrossProfit, ws.IsCompleted)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range sessions {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert work session: %w", err)
		}
	}

	return nil
}

func (r *workSessionRepository) ListByMonth(ctx context.Context, month string) ([]session.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, card_number, casino_name,
			   deposit_amount, withdrawal_amount, deposit_time, withdrawal_time,
			   duration_minutes, gross_profit, is_completed, created_at
		FROM work_sessions
		WHERE month = $1
		ORDER BY deposit_time, id
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list work sessions: %w", err)
	}
	defer rows.Close()

	var result []session.WorkSession
	for rows.Next() {
		var ws session.WorkSession
		err := rows.Scan(
			&ws.ID, &ws.EmployeeID, &ws.Month, &ws.CardNumber, &ws.CasinoName,
			&ws.DepositAmount, &ws.WithdrawalAmount, &ws.DepositTime, &ws.WithdrawalTime,
			&ws.DurationMinutes, &ws.GrossProfit, &ws.IsCompleted, &ws.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work session: %w", err)
		}
		result = append(result, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read work sessions: %w", err)
	}

	return result, nil
}
