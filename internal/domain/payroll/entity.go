package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is one employee's compensation for one month. Rows are recomputed
// wholesale per month; IsPaid is flipped externally and survives recomputes.
type Salary struct {
	ID          string
	EmployeeID  string
	Month       string
	BaseSalary  decimal.Decimal
	Bonus       decimal.Decimal
	LeaderBonus decimal.Decimal
	TotalSalary decimal.Decimal
	IsPaid      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	Username *string
}

// Stats aggregates one ComputeMonth run.
type Stats struct {
	TotalGross       decimal.Decimal
	TotalNet         decimal.Decimal
	TotalExpenses    decimal.Decimal
	LeaderEmployeeID string
	SalariesCreated  int
}

// RecomputeRun records one recompute generation for a month. The latest run
// is the visible generation; its stats back the reporting endpoints.
type RecomputeRun struct {
	GenerationID     string
	Month            string
	TotalGross       decimal.Decimal
	TotalNet         decimal.Decimal
	TotalExpenses    decimal.Decimal
	LeaderEmployeeID string
	SalariesCreated  int
	SessionsComplete int
	SessionsOpen     int
	CreatedAt        time.Time
}
