package session

import (
	"testing"
	"time"

	"github.com/cardledger/payroll-backend-go/internal/domain/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 7, 15, hour, minute, 0, 0, time.UTC)
}

func deposit(emp, card string, amount float64, when time.Time) transaction.Transaction {
	return transaction.Transaction{
		ID:            emp + card + when.String() + "d",
		EmployeeID:    emp,
		Month:         "2026-07",
		CasinoName:    "lucky-spin",
		CardNumber:    card,
		DepositAmount: decimal.NewFromFloat(amount),
		OccurredAt:    when,
	}
}

func withdrawal(emp, card string, amount float64, when time.Time) transaction.Transaction {
	return transaction.Transaction{
		ID:               emp + card + when.String() + "w",
		EmployeeID:       emp,
		Month:            "2026-07",
		CasinoName:       "lucky-spin",
		CardNumber:       card,
		WithdrawalAmount: decimal.NewFromFloat(amount),
		OccurredAt:       when,
	}
}

func TestReconstructor_PairsDepositWithLaterWithdrawal(t *testing.T) {
	// Scenario: deposit 100 at 10:00, withdrawal 150 at 10:30 on one card.
	r := NewReconstructor(Options{})
	sessions, stats := r.Reconstruct([]transaction.Transaction{
		deposit("A", "1111", 100, at(10, 0)),
		withdrawal("A", "1111", 150, at(10, 30)),
	})

	require.Len(t, sessions, 1)
	ws := sessions[0]
	assert.True(t, ws.IsCompleted)
	require.NotNil(t, ws.DurationMinutes)
	assert.Equal(t, 35, *ws.DurationMinutes)
	require.NotNil(t, ws.GrossProfit)
	assert.Equal(t, "50.00", ws.GrossProfit.StringFixed(2))
	assert.Equal(t, 1, stats.CompletedCount)
	assert.Equal(t, 0, stats.IncompleteCount)
}

func TestReconstructor_LoneDepositStaysIncomplete(t *testing.T) {
	r := NewReconstructor(Options{})
	sessions, stats := r.Reconstruct([]transaction.Transaction{
		deposit("A", "1111", 100, at(10, 0)),
	})

	require.Len(t, sessions, 1)
	ws := sessions[0]
	assert.False(t, ws.IsCompleted)
	assert.Nil(t, ws.WithdrawalAmount)
	assert.Nil(t, ws.WithdrawalTime)
	assert.Nil(t, ws.DurationMinutes)
	assert.Nil(t, ws.GrossProfit)
	assert.Equal(t, 0, stats.CompletedCount)
	assert.Equal(t, 1, stats.IncompleteCount)
}

func TestReconstructor_WithdrawalConsumedAtMostOnce(t *testing.T) {
	// Two deposits, one withdrawal: only the first deposit closes.
	r := NewReconstructor(Options{})
	sessions, stats := r.Reconstruct([]transaction.Transaction{
		deposit("A", "1111", 100, at(10, 0)),
		deposit("A", "1111", 50, at(10, 15)),
		withdrawal("A", "1111", 300, at(11, 0)),
	})

	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].IsCompleted)
	assert.False(t, sessions[1].IsCompleted)
	assert.Equal(t, 1, stats.CompletedCount)
	assert.Equal(t, 1, stats.IncompleteCount)
}

func TestReconstructor_LegacyWithdrawalReuse(t *testing.T) {
	// Historical behavior: the same withdrawal closes both deposits.
	r := NewReconstructor(Options{AllowWithdrawalReuse: true})
	sessions, stats := r.Reconstruct([]transaction.Transaction{
		deposit("A", "1111", 100, at(10, 0)),
		deposit("A", "1111", 50, at(10, 15)),
		withdrawal("A", "1111", 300, at(11, 0)),
	})

	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].IsCompleted)
	assert.True(t, sessions[1].IsCompleted)
	assert.Equal(t, 2, stats.CompletedCount)
	assert.Equal(t, 0, stats.IncompleteCount)
}

func TestReconstructor_EarliestWithdrawalWins(t *testing.T) {
	r := NewReconstructor(Options{})
	sessions, _ := r.Reconstruct([]transaction.Transaction{
		deposit("A", "1111", 100, at(10, 0)),
		withdrawal("A", "1111", 120, at(10, 10)),
		withdrawal("A", "1111", 500, at(12, 0)),
	})

	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].WithdrawalAmount)
	assert.Equal(t, "120.00", sessions[0].WithdrawalAmount.StringFixed(2))
}

func TestReconstructor_GroupsByEmployeeAndCard(t *testing.T) {
	// A withdrawal on another card or by another employee never closes
	// this deposit.
	r := NewReconstructor(Options{})
	sessions, stats := r.Reconstruct([]transaction.Transaction{
		deposit("A", "1111", 100, at(10, 0)),
		withdrawal("A", "2222", 150, at(10, 30)),
		withdrawal("B", "1111", 150, at(10, 45)),
	})

	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].IsCompleted)
	assert.Equal(t, 1, stats.IncompleteCount)
}

func TestReconstructor_CardNumberFormattingIgnored(t *testing.T) {
	// "1111-2222" and "11112222" are the same card.
	r := NewReconstructor(Options{})
	sessions, _ := r.Reconstruct([]transaction.Transaction{
		deposit("A", "1111-2222", 100, at(10, 0)),
		withdrawal("A", "11112222", 150, at(10, 30)),
	})

	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].IsCompleted)
	assert.Equal(t, "11112222", sessions[0].CardNumber)
}

func TestReconstructor_SortsOutOfOrderInput(t *testing.T) {
	// The store guarantees no ordering; pairing must still work.
	r := NewReconstructor(Options{})
	sessions, _ := r.Reconstruct([]transaction.Transaction{
		withdrawal("A", "1111", 150, at(10, 30)),
		deposit("A", "1111", 100, at(10, 0)),
	})

	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].IsCompleted)
	assert.Equal(t, 35, *sessions[0].DurationMinutes)
}

func TestReconstructor_DurationFloor(t *testing.T) {
	// Same-instant pairs still get the registration overhead floor.
	r := NewReconstructor(Options{})
	sessions, _ := r.Reconstruct([]transaction.Transaction{
		deposit("A", "1111", 100, at(10, 0)),
		withdrawal("A", "1111", 150, at(10, 0)),
	})

	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].DurationMinutes)
	assert.Equal(t, 5, *sessions[0].DurationMinutes)
}

func TestReconstructor_DurationRoundsSeconds(t *testing.T) {
	r := NewReconstructor(Options{})
	withdrawalAt := at(10, 0).Add(90 * time.Second) // 1.5 min rounds to 2
	sessions, _ := r.Reconstruct([]transaction.Transaction{
		deposit("A", "1111", 100, at(10, 0)),
		{
			EmployeeID:       "A",
			Month:            "2026-07",
			CardNumber:       "1111",
			WithdrawalAmount: decimal.NewFromInt(150),
			OccurredAt:       withdrawalAt,
		},
	})

	require.Len(t, sessions, 1)
	assert.Equal(t, 7, *sessions[0].DurationMinutes)
}

func TestReconstructor_TransactionWithBothSidesOpensAndCloses(t *testing.T) {
	// A record carrying both a deposit and a withdrawal opens a session but
	// never closes itself; only a later record can.
	r := NewReconstructor(Options{})
	sessions, stats := r.Reconstruct([]transaction.Transaction{
		{
			EmployeeID:       "A",
			Month:            "2026-07",
			CardNumber:       "1111",
			DepositAmount:    decimal.NewFromInt(100),
			WithdrawalAmount: decimal.NewFromInt(40),
			OccurredAt:       at(9, 0),
		},
		deposit("A", "1111", 60, at(9, 30)),
	})

	require.Len(t, sessions, 2)
	assert.False(t, sessions[0].IsCompleted)
	assert.False(t, sessions[1].IsCompleted)
	assert.Equal(t, 2, stats.IncompleteCount)
}

func TestReconstructor_EmptyInput(t *testing.T) {
	r := NewReconstructor(Options{})
	sessions, stats := r.Reconstruct(nil)
	assert.Empty(t, sessions)
	assert.Equal(t, 0, stats.CompletedCount)
	assert.Equal(t, 0, stats.IncompleteCount)
}
