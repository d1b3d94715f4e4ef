package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	Username         string
	IsManager        bool
	ManagerKind      ManagerKind
	ProfitPercentage decimal.Decimal
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ManagerKind string

const (
	ManagerKindNone   ManagerKind = "none"
	ManagerKindTest   ManagerKind = "test_manager"
	ManagerKindProfit ManagerKind = "profit_manager"
)

// DefaultProfitPercentage applies when a manager row carries no explicit
// percentage.
var DefaultProfitPercentage = decimal.NewFromInt(10)
