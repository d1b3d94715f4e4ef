package http

import (
	"context"
	"net/http"

	"github.com/cardledger/payroll-backend-go/internal/domain/session"
	"github.com/cardledger/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SessionService interface {
	GetMonthSessions(ctx context.Context, month string) ([]session.WorkSession, session.Stats, error)
}

type SessionHandler interface {
	GetMonth(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct {
	service SessionService
}

func NewSessionHandler(service SessionService) SessionHandler {
	return &sessionHandlerImpl{service: service}
}

func (h *sessionHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	sessions, stats, err := h.service.GetMonthSessions(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := session.MonthSessionsResponse{
		Month:           month,
		Sessions:        make([]session.WorkSessionResponse, 0, len(sessions)),
		CompletedCount:  stats.CompletedCount,
		IncompleteCount: stats.IncompleteCount,
	}
	for _, ws := range sessions {
		resp.Sessions = append(resp.Sessions, session.WorkSessionResponse{
			EmployeeID:       ws.EmployeeID,
			CardNumber:       ws.CardNumber,
			CasinoName:       ws.CasinoName,
			DepositAmount:    ws.DepositAmount,
			WithdrawalAmount: ws.WithdrawalAmount,
			DepositTime:      ws.DepositTime,
			WithdrawalTime:   ws.WithdrawalTime,
			DurationMinutes:  ws.DurationMinutes,
			GrossProfit:      ws.GrossProfit,
			IsCompleted:      ws.IsCompleted,
		})
	}

	response.Success(w, resp)
}
