package activity

import (
	"sort"
	"time"

	"github.com/cardledger/payroll-backend-go/internal/domain/activity"
	"github.com/cardledger/payroll-backend-go/internal/domain/transaction"
	"github.com/cardledger/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Analyzer derives per-employee daily and monthly activity rollups for
// dashboards. Pure over the given snapshot.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

type dayAccumulator struct {
	activity.DailyActivity
	cards map[string]bool
}

// Analyze filters to transactions with any money movement, groups them per
// employee and UTC calendar day, and derives the month-level figures.
func (a *Analyzer) Analyze(transactions []transaction.Transaction) map[string]activity.EmployeeActivity {
	type empAccumulator struct {
		days         map[time.Time]*dayAccumulator
		lastActivity time.Time
	}
	perEmployee := make(map[string]*empAccumulator)

	for _, t := range transactions {
		if !t.IsActive() {
			continue
		}

		acc, ok := perEmployee[t.EmployeeID]
		if !ok {
			acc = &empAccumulator{days: make(map[time.Time]*dayAccumulator)}
			perEmployee[t.EmployeeID] = acc
		}

		day := t.OccurredAt.UTC().Truncate(24 * time.Hour)
		d, ok := acc.days[day]
		if !ok {
			d = &dayAccumulator{
				DailyActivity: activity.DailyActivity{Date: day},
				cards:         make(map[string]bool),
			}
			acc.days[day] = d
		}

		d.cards[validator.NormalizeCardNumber(t.CardNumber)] = true
		if t.DepositAmount.IsPositive() {
			d.DepositCount++
			d.TotalDeposit = d.TotalDeposit.Add(t.DepositAmount)
		}
		if t.WithdrawalAmount.IsPositive() {
			d.WithdrawalCount++
			d.TotalWithdrawal = d.TotalWithdrawal.Add(t.WithdrawalAmount)
		}

		if t.OccurredAt.After(acc.lastActivity) {
			acc.lastActivity = t.OccurredAt
		}
	}

	result := make(map[string]activity.EmployeeActivity, len(perEmployee))
	for employeeID, acc := range perEmployee {
		days := make([]activity.DailyActivity, 0, len(acc.days))
		for _, d := range acc.days {
			d.UniqueCardCount = len(d.cards)
			days = append(days, d.DailyActivity)
		}
		sort.Slice(days, func(i, j int) bool {
			return days[i].Date.Before(days[j].Date)
		})

		summary := activity.EmployeeActivity{
			EmployeeID:   employeeID,
			Days:         days,
			LastActivity: acc.lastActivity,
		}

		totalCards := 0
		for i := range days {
			totalCards += days[i].UniqueCardCount
			// First-encountered day wins exact ties, in date order.
			if summary.BestDay == nil || days[i].UniqueCardCount > summary.BestDay.UniqueCardCount {
				summary.BestDay = &days[i]
			}
		}
		if len(days) > 0 {
			summary.AvgCardsPerDay = decimal.NewFromInt(int64(totalCards)).
				Div(decimal.NewFromInt(int64(len(days)))).Round(2)
		}

		result[employeeID] = summary
	}

	return result
}
