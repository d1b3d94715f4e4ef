package session

import (
	"math"
	"sort"
	"time"

	"github.com/cardledger/payroll-backend-go/internal/domain/session"
	"github.com/cardledger/payroll-backend-go/internal/domain/transaction"
	"github.com/cardledger/payroll-backend-go/internal/pkg/validator"
)

// registrationOverheadMinutes models the fixed signup/cashier time around a
// card session; it is added to every completed duration and also acts as the
// floor for degenerate intervals.
const registrationOverheadMinutes = 5

// Options tune reconstruction behavior.
type Options struct {
	// AllowWithdrawalReuse reproduces the historical scan in which one
	// withdrawal could close several deposits. Off by default: each
	// withdrawal is consumed by at most one session.
	AllowWithdrawalReuse bool
}

// Reconstructor pairs raw deposit and withdrawal events per (employee, card)
// into discrete work sessions. Pure over the given snapshot.
type Reconstructor struct {
	opts Options
}

func NewReconstructor(opts Options) *Reconstructor {
	return &Reconstructor{opts: opts}
}

type groupKey struct {
	employeeID string
	cardNumber string
}

// Reconstruct scans each card's chronological sequence: a positive deposit
// opens a candidate session, closed by the earliest later unconsumed positive
// withdrawal on the same card. Deposits with no later withdrawal become
// incomplete sessions.
func (r *Reconstructor) Reconstruct(transactions []transaction.Transaction) ([]session.WorkSession, session.Stats) {
	groups := make(map[groupKey][]transaction.Transaction)
	var order []groupKey

	for _, t := range transactions {
		key := groupKey{
			employeeID: t.EmployeeID,
			cardNumber: validator.NormalizeCardNumber(t.CardNumber),
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	var sessions []session.WorkSession
	var stats session.Stats

	for _, key := range order {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].OccurredAt.Before(group[j].OccurredAt)
		})

		consumed := make(map[int]bool, len(group))
		for i, t := range group {
			if !t.DepositAmount.IsPositive() {
				continue
			}

			matched := -1
			for j := i + 1; j < len(group); j++ {
				if !group[j].WithdrawalAmount.IsPositive() {
					continue
				}
				if consumed[j] && !r.opts.AllowWithdrawalReuse {
					continue
				}
				matched = j
				break
			}

			ws := session.WorkSession{
				EmployeeID:    t.EmployeeID,
				Month:         t.Month,
				CardNumber:    key.cardNumber,
				CasinoName:    t.CasinoName,
				DepositAmount: t.DepositAmount,
				DepositTime:   t.OccurredAt,
			}

			if matched >= 0 {
				consumed[matched] = true
				w := group[matched]
				amount := w.WithdrawalAmount
				when := w.OccurredAt
				duration := durationMinutes(t.OccurredAt, when)
				profit := amount.Sub(t.DepositAmount)

				ws.WithdrawalAmount = &amount
				ws.WithdrawalTime = &when
				ws.DurationMinutes = &duration
				ws.GrossProfit = &profit
				ws.IsCompleted = true
				stats.CompletedCount++
			} else {
				stats.IncompleteCount++
			}

			sessions = append(sessions, ws)
		}
	}

	return sessions, stats
}

func durationMinutes(depositTime, withdrawalTime time.Time) int {
	minutes := int(math.Round(withdrawalTime.Sub(depositTime).Minutes())) + registrationOverheadMinutes
	if minutes < registrationOverheadMinutes {
		return registrationOverheadMinutes
	}
	return minutes
}
