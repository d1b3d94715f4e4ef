package payroll

import (
	"testing"
	"time"

	"github.com/cardledger/payroll-backend-go/internal/domain/employee"
	"github.com/cardledger/payroll-backend-go/internal/domain/payroll"
	"github.com/cardledger/payroll-backend-go/internal/domain/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMonth = "2026-07"

var baseTime = time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)

func worker(id string) employee.Employee {
	return employee.Employee{
		ID:          id,
		Username:    id,
		ManagerKind: employee.ManagerKindNone,
		IsActive:    true,
	}
}

func profitManager(id string, percentage int64) employee.Employee {
	return employee.Employee{
		ID:               id,
		Username:         id,
		IsManager:        true,
		ManagerKind:      employee.ManagerKindProfit,
		ProfitPercentage: decimal.NewFromInt(percentage),
		IsActive:         true,
	}
}

func testManager(id string) employee.Employee {
	return employee.Employee{
		ID:          id,
		Username:    id,
		IsManager:   true,
		ManagerKind: employee.ManagerKindTest,
		IsActive:    true,
	}
}

func tx(id, employeeID string, deposit, withdrawal float64) transaction.Transaction {
	dep := decimal.NewFromFloat(deposit)
	wd := decimal.NewFromFloat(withdrawal)
	return transaction.Transaction{
		ID:               id,
		EmployeeID:       employeeID,
		Month:            testMonth,
		CardNumber:       "4111111111111111",
		DepositAmount:    dep,
		WithdrawalAmount: wd,
		GrossProfit:      wd.Sub(dep),
		OccurredAt:       baseTime,
	}
}

func requireSalary(t *testing.T, salaries []payroll.Salary, id string) payroll.Salary {
	t.Helper()
	for _, s := range salaries {
		if s.EmployeeID == id {
			return s
		}
	}
	t.Fatalf("no salary row for employee %s", id)
	return payroll.Salary{}
}

func TestCalculator_WorkerBonus(t *testing.T) {
	// Scenario: worker A grosses 250 but does not own the month's largest
	// transaction, so only base and flat bonus apply.
	calc := NewCalculator()
	employees := []employee.Employee{worker("A"), worker("B")}
	transactions := []transaction.Transaction{
		tx("t1", "A", 100, 350), // gross 250
		tx("t2", "B", 100, 400), // gross 300, month leader
	}

	salaries, stats := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)
	require.Len(t, salaries, 2)

	a := salaries[0]
	require.Equal(t, "A", a.EmployeeID)
	assert.Equal(t, "25.00", a.BaseSalary.StringFixed(2))
	assert.Equal(t, "200.00", a.Bonus.StringFixed(2))
	assert.Equal(t, "0.00", a.LeaderBonus.StringFixed(2))
	assert.Equal(t, "225.00", a.TotalSalary.StringFixed(2))

	b := salaries[1]
	require.Equal(t, "B", b.EmployeeID)
	assert.Equal(t, "30.00", b.BaseSalary.StringFixed(2))
	assert.Equal(t, "200.00", b.Bonus.StringFixed(2))
	assert.Equal(t, "30.00", b.LeaderBonus.StringFixed(2))
	assert.Equal(t, "B", stats.LeaderEmployeeID)
}

func TestCalculator_BonusThreshold(t *testing.T) {
	calc := NewCalculator()

	cases := []struct {
		name      string
		gross     float64
		wantBonus string
	}{
		{"below threshold", 150, "0.00"},
		{"exactly at threshold", 200, "0.00"},
		{"just above threshold", 200.01, "200.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			employees := []employee.Employee{worker("A"), worker("B")}
			transactions := []transaction.Transaction{
				tx("t1", "A", 0, tc.gross),
				tx("t2", "B", 0, 10000), // keeps the leader bonus away from A
			}

			salaries, _ := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)
			require.NotEmpty(t, salaries)
			require.Equal(t, "A", salaries[0].EmployeeID)
			assert.Equal(t, tc.wantBonus, salaries[0].Bonus.StringFixed(2))
		})
	}
}

func TestCalculator_ManagerExpenseThreshold(t *testing.T) {
	// Scenario: totalGross 10000, expenses 2500 (25% > 20%), 10% manager.
	calc := NewCalculator()
	employees := []employee.Employee{worker("A"), profitManager("M", 10)}
	transactions := []transaction.Transaction{
		tx("t1", "A", 0, 10000),
	}

	salaries, _ := calc.ComputeMonth(testMonth, employees, transactions, decimal.NewFromInt(2500))

	m := requireSalary(t, salaries, "M")
	assert.Equal(t, "750.00", m.BaseSalary.StringFixed(2))
	assert.Equal(t, "750.00", m.TotalSalary.StringFixed(2))
}

func TestCalculator_ManagerBelowExpenseThreshold(t *testing.T) {
	calc := NewCalculator()
	employees := []employee.Employee{worker("A"), profitManager("M", 10)}
	transactions := []transaction.Transaction{
		tx("t1", "A", 0, 10000),
	}

	// 15% expense ratio: the manager is paid on full gross.
	salaries, _ := calc.ComputeMonth(testMonth, employees, transactions, decimal.NewFromInt(1500))

	m := requireSalary(t, salaries, "M")
	assert.Equal(t, "1000.00", m.BaseSalary.StringFixed(2))
}

func TestCalculator_ZeroProfitManagerStillEmitted(t *testing.T) {
	// Scenario: nothing earned anywhere, the manager row still appears.
	calc := NewCalculator()
	employees := []employee.Employee{profitManager("M", 5)}

	salaries, stats := calc.ComputeMonth(testMonth, employees, nil, decimal.Zero)

	require.Len(t, salaries, 1)
	assert.Equal(t, "M", salaries[0].EmployeeID)
	assert.Equal(t, "0.00", salaries[0].BaseSalary.StringFixed(2))
	assert.Equal(t, "0.00", salaries[0].TotalSalary.StringFixed(2))
	assert.Equal(t, 1, stats.SalariesCreated)
}

func TestCalculator_ZeroProfitWorkerOmitted(t *testing.T) {
	calc := NewCalculator()
	employees := []employee.Employee{worker("A"), worker("B")}
	transactions := []transaction.Transaction{
		tx("t1", "B", 0, 500),
	}

	salaries, _ := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)

	for _, s := range salaries {
		assert.NotEqual(t, "A", s.EmployeeID)
	}
}

func TestCalculator_LosingWorkerOmitted(t *testing.T) {
	calc := NewCalculator()
	employees := []employee.Employee{worker("A"), worker("B")}
	transactions := []transaction.Transaction{
		tx("t1", "A", 500, 100), // gross -400
		tx("t2", "B", 0, 900),
	}

	salaries, _ := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)

	require.Len(t, salaries, 1)
	assert.Equal(t, "B", salaries[0].EmployeeID)
}

func TestCalculator_TestManagerHybrid(t *testing.T) {
	// Base is 10% of the non-manager team gross plus 10% of own gross.
	calc := NewCalculator()
	employees := []employee.Employee{worker("A"), testManager("TM")}
	transactions := []transaction.Transaction{
		tx("t1", "A", 0, 1000),
		tx("t2", "TM", 0, 200),
	}

	salaries, _ := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)

	tm := requireSalary(t, salaries, "TM")
	assert.Equal(t, "120.00", tm.BaseSalary.StringFixed(2))
	assert.Equal(t, "0.00", tm.Bonus.StringFixed(2))
	assert.Equal(t, "0.00", tm.LeaderBonus.StringFixed(2))
}

func TestCalculator_LeaderUniqueness(t *testing.T) {
	calc := NewCalculator()
	employees := []employee.Employee{worker("A"), worker("B"), worker("C")}
	// B and C tie at 400; the first-encountered transaction wins.
	transactions := []transaction.Transaction{
		tx("t1", "A", 0, 300),
		tx("t2", "B", 0, 400),
		tx("t3", "C", 0, 400),
	}

	salaries, stats := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)

	assert.Equal(t, "B", stats.LeaderEmployeeID)
	withLeaderBonus := 0
	for _, s := range salaries {
		if s.LeaderBonus.IsPositive() {
			withLeaderBonus++
			assert.Equal(t, "B", s.EmployeeID)
			assert.Equal(t, "40.00", s.LeaderBonus.StringFixed(2))
		}
	}
	assert.Equal(t, 1, withLeaderBonus)
}

func TestCalculator_LeaderBonusSkippedForManagerOwnedMax(t *testing.T) {
	calc := NewCalculator()
	employees := []employee.Employee{worker("A"), testManager("TM")}
	transactions := []transaction.Transaction{
		tx("t1", "A", 0, 300),
		tx("t2", "TM", 0, 5000), // largest, but manager-owned
	}

	salaries, stats := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)

	assert.Empty(t, stats.LeaderEmployeeID)
	for _, s := range salaries {
		assert.Equal(t, "0.00", s.LeaderBonus.StringFixed(2))
	}
}

func TestCalculator_UnknownEmployeeContributesToGlobalsOnly(t *testing.T) {
	calc := NewCalculator()
	employees := []employee.Employee{profitManager("M", 10)}
	transactions := []transaction.Transaction{
		tx("t1", "ghost", 0, 1000),
	}

	salaries, stats := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)

	assert.Equal(t, "1000", stats.TotalGross.String())
	// The ghost's transaction is the largest, but it cannot take the leader
	// bonus: its owner is not on the roster.
	assert.Empty(t, stats.LeaderEmployeeID)

	m := requireSalary(t, salaries, "M")
	assert.Equal(t, "100.00", m.BaseSalary.StringFixed(2))
}

func TestCalculator_InactiveEmployeeExcluded(t *testing.T) {
	calc := NewCalculator()
	inactive := worker("A")
	inactive.IsActive = false
	employees := []employee.Employee{inactive, worker("B")}
	transactions := []transaction.Transaction{
		tx("t1", "A", 0, 1000),
		tx("t2", "B", 0, 500),
	}

	salaries, _ := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)

	for _, s := range salaries {
		assert.NotEqual(t, "A", s.EmployeeID)
	}
}

func TestCalculator_Idempotence(t *testing.T) {
	calc := NewCalculator()
	employees := []employee.Employee{
		worker("A"), worker("B"), profitManager("M", 12), testManager("TM"),
	}
	transactions := []transaction.Transaction{
		tx("t1", "A", 100, 450.55),
		tx("t2", "B", 50, 320.10),
		tx("t3", "A", 200, 180),
		tx("t4", "TM", 0, 75.25),
	}
	expenses := decimal.NewFromFloat(333.33)

	first, firstStats := calc.ComputeMonth(testMonth, employees, transactions, expenses)
	second, secondStats := calc.ComputeMonth(testMonth, employees, transactions, expenses)

	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
}

func TestCalculator_DefaultProfitPercentage(t *testing.T) {
	calc := NewCalculator()
	m := profitManager("M", 0) // unset percentage falls back to 10
	employees := []employee.Employee{worker("A"), m}
	transactions := []transaction.Transaction{
		tx("t1", "A", 0, 1000),
	}

	salaries, _ := calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)

	got := requireSalary(t, salaries, "M")
	assert.Equal(t, "100.00", got.BaseSalary.StringFixed(2))
}

func TestCalculator_StatsNetTotal(t *testing.T) {
	calc := NewCalculator()
	employees := []employee.Employee{worker("A")}
	transactions := []transaction.Transaction{
		tx("t1", "A", 0, 10000),
	}

	// 25% expense ratio caps at 20%: net is 80% of gross.
	_, stats := calc.ComputeMonth(testMonth, employees, transactions, decimal.NewFromInt(2500))
	assert.Equal(t, "8000.00", stats.TotalNet.StringFixed(2))

	// 10% ratio is applied as-is.
	_, stats = calc.ComputeMonth(testMonth, employees, transactions, decimal.NewFromInt(1000))
	assert.Equal(t, "9000.00", stats.TotalNet.StringFixed(2))

	// No expenses: net equals gross.
	_, stats = calc.ComputeMonth(testMonth, employees, transactions, decimal.Zero)
	assert.Equal(t, "10000.00", stats.TotalNet.StringFixed(2))
}

func TestCalculator_AdjustedNetProfits(t *testing.T) {
	calc := NewCalculator()
	transactions := []transaction.Transaction{
		tx("t1", "A", 0, 600),
		tx("t2", "A", 0, 400),
	}

	// Below the threshold nothing is rewritten.
	assert.Nil(t, calc.AdjustedNetProfits(transactions, decimal.NewFromInt(100)))

	// Above the threshold every transaction is scaled by 0.8.
	netByID := calc.AdjustedNetProfits(transactions, decimal.NewFromInt(500))
	require.Len(t, netByID, 2)
	assert.Equal(t, "480.00", netByID["t1"].StringFixed(2))
	assert.Equal(t, "320.00", netByID["t2"].StringFixed(2))
}
