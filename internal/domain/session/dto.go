package session

import (
	"time"

	"github.com/shopspring/decimal"
)

type WorkSessionResponse struct {
	EmployeeID       string           `json:"employee_id"`
	CardNumber       string           `json:"card_number"`
	CasinoName       string           `json:"casino_name"`
	DepositAmount    decimal.Decimal  `json:"deposit_amount"`
	WithdrawalAmount *decimal.Decimal `json:"withdrawal_amount,omitempty"`
	DepositTime      time.Time        `json:"deposit_time"`
	WithdrawalTime   *time.Time       `json:"withdrawal_time,omitempty"`
	DurationMinutes  *int             `json:"duration_minutes,omitempty"`
	GrossProfit      *decimal.Decimal `json:"gross_profit,omitempty"`
	IsCompleted      bool             `json:"is_completed"`
}

type MonthSessionsResponse struct {
	Month           string                `json:"month"`
	Sessions        []WorkSessionResponse `json:"sessions"`
	CompletedCount  int                   `json:"completed_count"`
	IncompleteCount int                   `json:"incomplete_count"`
}
