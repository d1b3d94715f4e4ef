package session

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkSession is one reconstructed deposit→withdrawal pairing on a single
// card. When IsCompleted is false the withdrawal side never happened and all
// withdrawal-derived fields are nil.
type WorkSession struct {
	ID               string
	EmployeeID       string
	Month            string
	CardNumber       string
	CasinoName       string
	DepositAmount    decimal.Decimal
	WithdrawalAmount *decimal.Decimal
	DepositTime      time.Time
	WithdrawalTime   *time.Time
	DurationMinutes  *int
	GrossProfit      *decimal.Decimal
	IsCompleted      bool
	CreatedAt        time.Time
}

// Stats aggregates one reconstruction run.
type Stats struct {
	CompletedCount  int
	IncompleteCount int
}
