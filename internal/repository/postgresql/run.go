package postgresql

import (
	"context"
	"fmt"

	"github.com/cardledger/payroll-backend-go/internal/domain/payroll"
	"github.com/cardledger/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type runRepository struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) payroll.RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) SaveRun(ctx context.Context, run payroll.RecomputeRun) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO recompute_runs (
			generation_id, month, total_gross, total_net, total_expenses,
			leader_employee_id, salaries_created, sessions_complete, sessions_open
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
	`, run.GenerationID, run.Month, run.TotalGross, run.TotalNet, run.TotalExpenses,
		run.LeaderEmployeeID, run.SalariesCreated, run.SessionsComplete, run.SessionsOpen)
	if err != nil {
		return fmt.Errorf("failed to save recompute run: %w", err)
	}

	return nil
}

func (r *runRepository) GetLatestRun(ctx context.Context, month string) (payroll.RecomputeRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT generation_id, month, total_gross, total_net, total_expenses,
			   COALESCE(leader_employee_id, ''), salaries_created,
			   sessions_complete, sessions_open, created_at
		FROM recompute_runs
		WHERE month = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var run payroll.RecomputeRun
	err := q.QueryRow(ctx, query, month).Scan(
		&run.GenerationID, &run.Month, &run.TotalGross, &run.TotalNet, &run.TotalExpenses,
		&run.LeaderEmployeeID, &run.SalariesCreated,
		&run.SessionsComplete, &run.SessionsOpen, &run.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.RecomputeRun{}, payroll.ErrSalaryNotFound
		}
		return payroll.RecomputeRun{}, fmt.Errorf("failed to get latest recompute run: %w", err)
	}

	return run, nil
}
