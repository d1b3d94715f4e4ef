package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cardledger/payroll-backend-go/internal/domain/activity"
	"github.com/cardledger/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ActivityService interface {
	GetMonthActivity(ctx context.Context, month string) ([]activity.EmployeeActivity, error)
}

type ActivityHandler interface {
	GetMonth(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	service ActivityService
}

func NewActivityHandler(service ActivityService) ActivityHandler {
	return &activityHandlerImpl{service: service}
}

func (h *activityHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	summaries, err := h.service.GetMonthActivity(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := activity.MonthActivityResponse{
		Month:     month,
		Employees: make([]activity.EmployeeActivityResponse, 0, len(summaries)),
	}
	for _, s := range summaries {
		resp.Employees = append(resp.Employees, mapEmployeeActivity(s))
	}

	response.Success(w, resp)
}

func mapEmployeeActivity(s activity.EmployeeActivity) activity.EmployeeActivityResponse {
	r := activity.EmployeeActivityResponse{
		EmployeeID:     s.EmployeeID,
		Days:           make([]activity.DailyActivityResponse, 0, len(s.Days)),
		AvgCardsPerDay: s.AvgCardsPerDay,
		LastActivity:   s.LastActivity.UTC().Format(time.RFC3339),
	}
	for _, d := range s.Days {
		r.Days = append(r.Days, mapDailyActivity(d))
	}
	if s.BestDay != nil {
		best := mapDailyActivity(*s.BestDay)
		r.BestDay = &best
	}
	return r
}

func mapDailyActivity(d activity.DailyActivity) activity.DailyActivityResponse {
	return activity.DailyActivityResponse{
		Date:            d.Date.Format("2006-01-02"),
		UniqueCardCount: d.UniqueCardCount,
		DepositCount:    d.DepositCount,
		WithdrawalCount: d.WithdrawalCount,
		TotalDeposit:    d.TotalDeposit,
		TotalWithdrawal: d.TotalWithdrawal,
	}
}
