package payroll

import "errors"

var (
	ErrSalaryNotFound    = errors.New("salary record not found")
	ErrRecomputeConflict = errors.New("recompute already running for this month")
)
