package activity

import (
	"github.com/shopspring/decimal"
)

type DailyActivityResponse struct {
	Date            string          `json:"date"`
	UniqueCardCount int             `json:"unique_card_count"`
	DepositCount    int             `json:"deposit_count"`
	WithdrawalCount int             `json:"withdrawal_count"`
	TotalDeposit    decimal.Decimal `json:"total_deposit"`
	TotalWithdrawal decimal.Decimal `json:"total_withdrawal"`
}

type EmployeeActivityResponse struct {
	EmployeeID     string                  `json:"employee_id"`
	Days           []DailyActivityResponse `json:"days"`
	AvgCardsPerDay decimal.Decimal         `json:"avg_cards_per_day"`
	BestDay        *DailyActivityResponse  `json:"best_day,omitempty"`
	LastActivity   string                  `json:"last_activity"`
}

type MonthActivityResponse struct {
	Month     string                     `json:"month"`
	Employees []EmployeeActivityResponse `json:"employees"`
}
