package payroll

import (
	"log/slog"

	"github.com/cardledger/payroll-backend-go/internal/domain/employee"
	"github.com/cardledger/payroll-backend-go/internal/domain/payroll"
	"github.com/cardledger/payroll-backend-go/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

var (
	// workerShare is the cut a regular worker earns on their own gross.
	workerShare = decimal.NewFromFloat(0.10)
	// teamShare is the test manager's cut on the non-manager team gross.
	teamShare = decimal.NewFromFloat(0.10)
	// leaderShare is the one-off cut on the month's single largest transaction.
	leaderShare = decimal.NewFromFloat(0.10)
	// expenseRatioCap: above this share of gross, expenses change the profit
	// manager's base and cap the net-profit adjustment.
	expenseRatioCap = decimal.NewFromFloat(0.20)

	flatBonus      = decimal.NewFromInt(200)
	bonusThreshold = decimal.NewFromInt(200)
	oneHundred     = decimal.NewFromInt(100)
)

// Calculator converts a month's transaction snapshot into salary rows under
// the tiered role rules. It performs no I/O; callers hand it an already
// materialized snapshot and persist the result.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// ComputeMonth computes one salary row per qualifying active employee plus
// run aggregates. Given identical inputs it yields identical output rows.
func (c *Calculator) ComputeMonth(
	month string,
	employees []employee.Employee,
	transactions []transaction.Transaction,
	totalExpenses decimal.Decimal,
) ([]payroll.Salary, payroll.Stats) {
	roster := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		if emp.IsActive {
			roster[emp.ID] = emp
		}
	}

	totalGross := decimal.Zero
	perGross := make(map[string]decimal.Decimal, len(roster))
	var maxTx *transaction.Transaction

	for i := range transactions {
		t := transactions[i]
		totalGross = totalGross.Add(t.GrossProfit)

		// Strict > keeps the first-encountered transaction on exact ties.
		if maxTx == nil || t.GrossProfit.GreaterThan(maxTx.GrossProfit) {
			maxTx = &transactions[i]
		}

		if _, ok := roster[t.EmployeeID]; !ok {
			slog.Warn("transaction references unknown or inactive employee, skipping for per-employee aggregates",
				"transaction_id", t.ID, "employee_id", t.EmployeeID, "month", month)
			continue
		}
		perGross[t.EmployeeID] = perGross[t.EmployeeID].Add(t.GrossProfit)
	}

	nonManagerGross := decimal.Zero
	for id, gross := range perGross {
		if !roster[id].IsManager {
			nonManagerGross = nonManagerGross.Add(gross)
		}
	}

	// The leader bonus goes to the owner of the single largest transaction,
	// and only when that owner is a rostered non-manager.
	leaderID := ""
	leaderBonus := decimal.Zero
	if maxTx != nil {
		if owner, ok := roster[maxTx.EmployeeID]; ok && !owner.IsManager {
			leaderID = owner.ID
			leaderBonus = round2(maxTx.GrossProfit.Mul(leaderShare))
		}
	}

	var salaries []payroll.Salary
	for _, emp := range employees {
		if !emp.IsActive {
			continue
		}

		ownGross := perGross[emp.ID]

		base := decimal.Zero
		bonus := decimal.Zero
		leader := decimal.Zero

		switch emp.ManagerKind {
		case employee.ManagerKindTest:
			base = nonManagerGross.Mul(teamShare).Add(ownGross.Mul(workerShare))
		case employee.ManagerKindProfit:
			pct := emp.ProfitPercentage
			if pct.IsZero() {
				pct = employee.DefaultProfitPercentage
			}
			pct = pct.Div(oneHundred)
			if totalExpenses.GreaterThan(totalGross.Mul(expenseRatioCap)) {
				base = totalGross.Sub(totalExpenses).Mul(pct)
			} else {
				base = totalGross.Mul(pct)
			}
		default:
			base = ownGross.Mul(workerShare)
			if ownGross.GreaterThan(bonusThreshold) {
				bonus = flatBonus
			}
			if emp.ID == leaderID {
				leader = leaderBonus
			}
		}

		// Round each component once, here; the total is the sum of the
		// rounded components so repeated runs emit identical rows.
		base = round2(base)
		bonus = round2(bonus)
		leader = round2(leader)
		total := base.Add(bonus).Add(leader)

		if !total.IsPositive() && !emp.IsManager {
			continue
		}

		salaries = append(salaries, payroll.Salary{
			EmployeeID:  emp.ID,
			Month:       month,
			BaseSalary:  base,
			Bonus:       bonus,
			LeaderBonus: leader,
			TotalSalary: total,
		})
	}

	stats := payroll.Stats{
		TotalGross:       totalGross,
		TotalNet:         netTotal(totalGross, totalExpenses),
		TotalExpenses:    totalExpenses,
		LeaderEmployeeID: leaderID,
		SalariesCreated:  len(salaries),
	}

	return salaries, stats
}

// AdjustedNetProfits recomputes per-transaction net profit when the month's
// expenses exceed the 20% threshold. It returns nil below the threshold,
// meaning net profit stays equal to gross.
func (c *Calculator) AdjustedNetProfits(
	transactions []transaction.Transaction,
	totalExpenses decimal.Decimal,
) map[string]decimal.Decimal {
	totalGross := decimal.Zero
	for _, t := range transactions {
		totalGross = totalGross.Add(t.GrossProfit)
	}

	if !totalExpenses.GreaterThan(totalGross.Mul(expenseRatioCap)) {
		return nil
	}

	factor := decimal.NewFromInt(1).Sub(cappedExpenseRatio(totalGross, totalExpenses))
	netByID := make(map[string]decimal.Decimal, len(transactions))
	for _, t := range transactions {
		netByID[t.ID] = round2(t.GrossProfit.Mul(factor))
	}
	return netByID
}

func netTotal(totalGross, totalExpenses decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(cappedExpenseRatio(totalGross, totalExpenses))
	return round2(totalGross.Mul(factor))
}

func cappedExpenseRatio(totalGross, totalExpenses decimal.Decimal) decimal.Decimal {
	if !totalGross.IsPositive() || !totalExpenses.IsPositive() {
		return decimal.Zero
	}
	ratio := totalExpenses.Div(totalGross)
	if ratio.GreaterThan(expenseRatioCap) {
		return expenseRatioCap
	}
	return ratio
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
