package payroll

import (
	"github.com/cardledger/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SalaryResponse struct {
	EmployeeID  string          `json:"employee_id"`
	Username    string          `json:"username,omitempty"`
	Month       string          `json:"month"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Bonus       decimal.Decimal `json:"bonus"`
	LeaderBonus decimal.Decimal `json:"leader_bonus"`
	TotalSalary decimal.Decimal `json:"total_salary"`
	IsPaid      bool            `json:"is_paid"`
}

type StatsResponse struct {
	TotalGross       decimal.Decimal `json:"total_gross"`
	TotalNet         decimal.Decimal `json:"total_net"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	LeaderEmployeeID string          `json:"leader_employee_id,omitempty"`
	SalariesCreated  int             `json:"salaries_created"`
}

type MonthPayrollResponse struct {
	Month    string           `json:"month"`
	Salaries []SalaryResponse `json:"salaries"`
	Stats    StatsResponse    `json:"stats"`
}

type MarkPaidRequest struct {
	IsPaid *bool `json:"is_paid"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.IsPaid == nil {
		errs = append(errs, validator.ValidationError{Field: "is_paid", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
