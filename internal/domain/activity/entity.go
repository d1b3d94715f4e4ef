package activity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyActivity is one employee's activity rollup for one UTC calendar day.
type DailyActivity struct {
	Date            time.Time
	UniqueCardCount int
	DepositCount    int
	WithdrawalCount int
	TotalDeposit    decimal.Decimal
	TotalWithdrawal decimal.Decimal
}

// EmployeeActivity is the month-level view assembled from daily rollups.
type EmployeeActivity struct {
	EmployeeID     string
	Days           []DailyActivity
	AvgCardsPerDay decimal.Decimal
	BestDay        *DailyActivity
	LastActivity   time.Time
}
