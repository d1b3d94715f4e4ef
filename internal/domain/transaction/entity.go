package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one casino deposit/withdrawal record keyed by payment card.
// Rows are produced by the ingestion pipeline and are immutable here except
// for NetProfit, which is recomputed when the monthly expense ratio is known.
type Transaction struct {
	ID               string
	EmployeeID       string
	Month            string
	CasinoName       string
	CardNumber       string
	DepositAmount    decimal.Decimal
	WithdrawalAmount decimal.Decimal
	GrossProfit      decimal.Decimal
	NetProfit        decimal.Decimal
	OccurredAt       time.Time
}

// IsActive reports whether the transaction carries any money movement.
func (t Transaction) IsActive() bool {
	return t.DepositAmount.IsPositive() || t.WithdrawalAmount.IsPositive()
}
