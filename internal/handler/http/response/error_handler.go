package response

import (
	"errors"
	"net/http"

	"github.com/cardledger/payroll-backend-go/internal/domain/employee"
	"github.com/cardledger/payroll-backend-go/internal/domain/payroll"
	"github.com/cardledger/payroll-backend-go/internal/domain/session"
	"github.com/cardledger/payroll-backend-go/internal/domain/transaction"
	"github.com/cardledger/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, transaction.ErrInvalidMonthCode):
		BadRequest(w, "Invalid month code, expected YYYY-MM", nil)

	// Empty-month states are expected and reportable, not failures.
	case errors.Is(err, transaction.ErrNoTransactionsForMonth):
		EmptyMonth(w, "No transactions for this month")
	case errors.Is(err, employee.ErrNoActiveEmployees):
		EmptyMonth(w, "No active employees")
	case errors.Is(err, session.ErrNoSessionsForMonth):
		EmptyMonth(w, "No work sessions for this month")

	case errors.Is(err, payroll.ErrSalaryNotFound):
		NotFound(w, "No payroll rows for this month")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrRecomputeConflict):
		Conflict(w, "A recompute is already running for this month")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
