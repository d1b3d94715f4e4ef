package payroll

import "context"

// SalaryRepository persists computed salaries. ReplaceForMonth supersedes
// every prior row for the month in a single transaction so a failed write
// never leaves the month without payroll rows.
type SalaryRepository interface {
	// GetPaidFlags returns the is_paid flag per employee for the month's
	// current rows, used to carry the flag across a recompute.
	GetPaidFlags(ctx context.Context, month string) (map[string]bool, error)

	// ReplaceForMonth atomically swaps the month's salary rows for the given
	// set, tagged with a generation marker.
	ReplaceForMonth(ctx context.Context, month, generationID string, salaries []Salary) error

	ListByMonth(ctx context.Context, month string) ([]Salary, error)
	SetPaid(ctx context.Context, month, employeeID string, isPaid bool) error
}

// RunRepository records recompute generations.
type RunRepository interface {
	SaveRun(ctx context.Context, run RecomputeRun) error
	GetLatestRun(ctx context.Context, month string) (RecomputeRun, error)
}
