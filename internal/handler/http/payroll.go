package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cardledger/payroll-backend-go/internal/domain/payroll"
	"github.com/cardledger/payroll-backend-go/internal/handler/http/response"
	"github.com/cardledger/payroll-backend-go/internal/service/recompute"
	"github.com/go-chi/chi/v5"
)

// PayrollService is the slice of the recompute service the payroll handler
// needs.
type PayrollService interface {
	RecomputeMonth(ctx context.Context, month string) (recompute.Result, error)
	GetMonthPayroll(ctx context.Context, month string) ([]payroll.Salary, payroll.Stats, error)
	MarkPaid(ctx context.Context, month, employeeID string, isPaid bool) error
}

type PayrollHandler interface {
	Recompute(w http.ResponseWriter, r *http.Request)
	GetMonth(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	service PayrollService
}

func NewPayrollHandler(service PayrollService) PayrollHandler {
	return &payrollHandlerImpl{service: service}
}

type recomputeRequest struct {
	Month string `json:"month"`
}

type recomputeResponse struct {
	Month            string                `json:"month"`
	GenerationID     string                `json:"generation_id"`
	Stats            payroll.StatsResponse `json:"stats"`
	SessionsComplete int                   `json:"sessions_completed"`
	SessionsOpen     int                   `json:"sessions_incomplete"`
}

func (h *payrollHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	var req recomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.RecomputeMonth(r.Context(), req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month recomputed", recomputeResponse{
		Month:            result.Month,
		GenerationID:     result.GenerationID,
		Stats:            mapStats(result.Payroll),
		SessionsComplete: result.Sessions.CompletedCount,
		SessionsOpen:     result.Sessions.IncompleteCount,
	})
}

func (h *payrollHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	salaries, stats, err := h.service.GetMonthPayroll(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := payroll.MonthPayrollResponse{
		Month:    month,
		Salaries: make([]payroll.SalaryResponse, 0, len(salaries)),
		Stats:    mapStats(stats),
	}
	for _, s := range salaries {
		username := ""
		if s.Username != nil {
			username = *s.Username
		}
		resp.Salaries = append(resp.Salaries, payroll.SalaryResponse{
			EmployeeID:  s.EmployeeID,
			Username:    username,
			Month:       s.Month,
			BaseSalary:  s.BaseSalary,
			Bonus:       s.Bonus,
			LeaderBonus: s.LeaderBonus,
			TotalSalary: s.TotalSalary,
			IsPaid:      s.IsPaid,
		})
	}

	response.Success(w, resp)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req payroll.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.service.MarkPaid(r.Context(), month, employeeID, *req.IsPaid); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Paid flag updated", nil)
}

func mapStats(stats payroll.Stats) payroll.StatsResponse {
	return payroll.StatsResponse{
		TotalGross:       stats.TotalGross,
		TotalNet:         stats.TotalNet,
		TotalExpenses:    stats.TotalExpenses,
		LeaderEmployeeID: stats.LeaderEmployeeID,
		SalariesCreated:  stats.SalariesCreated,
	}
}
