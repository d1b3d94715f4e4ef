package transaction

import "errors"

var (
	ErrNoTransactionsForMonth = errors.New("no transactions for month")
	ErrInvalidMonthCode       = errors.New("invalid month code")
)
