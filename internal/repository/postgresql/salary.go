package postgresql

import (
	"context"
	"fmt"

	"github.com/cardledger/payroll-backend-go/internal/domain/payroll"
	"github.com/cardledger/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) GetPaidFlags(ctx context.Context, month string) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT employee_id, is_paid FROM salaries WHERE month = $1`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to read paid flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]bool)
	for rows.Next() {
		var employeeID string
		var isPaid bool
		if err := rows.Scan(&employeeID, &isPaid); err != nil {
			return nil, fmt.Errorf("failed to scan paid flag: %w", err)
		}
		flags[employeeID] = isPaid
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read paid flags: %w", err)
	}

	return flags, nil
}

// ReplaceForMonth supersedes the month's rows with the new generation. It
// must run inside WithTransaction: the month lock and the delete+insert pair
// commit or roll back together, so a failed write never leaves the month
// without payroll rows.
func (r *salaryRepository) ReplaceForMonth(ctx context.Context, month, generationID string, salaries []payroll.Salary) error {
	q := GetQuerier(ctx, r.db)

	if err := lockMonth(ctx, q, month); err != nil {
		return err
	}

	if _, err := q.Exec(ctx, `DELETE FROM salaries WHERE month = $1`, month); err != nil {
		return fmt.Errorf("failed to delete superseded salaries: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range salaries {
		batch.Queue(`
			INSERT INTO salaries (employee_id, month, generation_id, base_salary, bonus, leader_bonus, total_salary, is_paid)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, s.EmployeeID, month, generationID, s.BaseSalary, s.Bonus, s.LeaderBonus, s.TotalSalary, s.IsPaid)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range salaries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert salary: %w", err)
		}
	}

	return nil
}

func (r *salaryRepository) ListByMonth(ctx context.Context, month string) ([]payroll.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.month, s.base_salary, s.bonus, s.leader_bonus,
			   s.total_salary, s.is_paid, s.created_at, s.updated_at, e.username
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.month = $1
		ORDER BY e.username
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	var result []payroll.Salary
	for rows.Next() {
		var s payroll.Salary
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Month, &s.BaseSalary, &s.Bonus, &s.LeaderBonus,
			&s.TotalSalary, &s.IsPaid, &s.CreatedAt, &s.UpdatedAt, &s.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read salaries: %w", err)
	}

	return result, nil
}

func (r *salaryRepository) SetPaid(ctx context.Context, month, employeeID string, isPaid bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE salaries SET is_paid = $1, updated_at = NOW()
		WHERE month = $2 AND employee_id = $3
	`, isPaid, month, employeeID)
	if err != nil {
		return fmt.Errorf("failed to set paid flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSalaryNotFound
	}

	return nil
}
