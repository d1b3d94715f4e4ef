package recompute

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cardledger/payroll-backend-go/internal/domain/activity"
	"github.com/cardledger/payroll-backend-go/internal/domain/employee"
	"github.com/cardledger/payroll-backend-go/internal/domain/payroll"
	"github.com/cardledger/payroll-backend-go/internal/domain/session"
	"github.com/cardledger/payroll-backend-go/internal/domain/transaction"
	"github.com/cardledger/payroll-backend-go/internal/pkg/validator"
	activitySvc "github.com/cardledger/payroll-backend-go/internal/service/activity"
	payrollSvc "github.com/cardledger/payroll-backend-go/internal/service/payroll"
	sessionSvc "github.com/cardledger/payroll-backend-go/internal/service/session"
	"github.com/google/uuid"
)

// TxRunner executes fn atomically. The postgresql implementation runs fn
// inside one database transaction; test fakes run fn directly.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result summarizes one recompute run for a month.
type Result struct {
	Month        string
	GenerationID string
	Payroll      payroll.Stats
	Sessions     session.Stats
}

// Service materializes the month snapshot, runs the three computations over
// it, and replaces the month's derived rows. All I/O lives here; the
// computations themselves are pure.
type Service struct {
	txRunner      TxRunner
	txRepo        transaction.TransactionRepository
	employeeRepo  employee.EmployeeRepository
	salaryRepo    payroll.SalaryRepository
	sessionRepo   session.WorkSessionRepository
	runRepo       payroll.RunRepository
	calculator    *payrollSvc.Calculator
	reconstructor *sessionSvc.Reconstructor
	analyzer      *activitySvc.Analyzer
	pageSize      int
}

func NewService(
	txRunner TxRunner,
	txRepo transaction.TransactionRepository,
	employeeRepo employee.EmployeeRepository,
	salaryRepo payroll.SalaryRepository,
	sessionRepo session.WorkSessionRepository,
	runRepo payroll.RunRepository,
	calculator *payrollSvc.Calculator,
	reconstructor *sessionSvc.Reconstructor,
	analyzer *activitySvc.Analyzer,
	pageSize int,
) *Service {
	return &Service{
		txRunner:      txRunner,
		txRepo:        txRepo,
		employeeRepo:  employeeRepo,
		salaryRepo:    salaryRepo,
		sessionRepo:   sessionRepo,
		runRepo:       runRepo,
		calculator:    calculator,
		reconstructor: reconstructor,
		analyzer:      analyzer,
		pageSize:      pageSize,
	}
}

// RecomputeMonth recomputes every derived row for the month from a fresh
// snapshot. Prior rows are superseded atomically; the is_paid flag on
// existing salary rows survives the swap.
func (s *Service) RecomputeMonth(ctx context.Context, month string) (Result, error) {
	if !validator.IsValidMonthCode(month) {
		return Result{}, transaction.ErrInvalidMonthCode
	}

	snapshot, err := s.loadSnapshot(ctx, month)
	if err != nil {
		return Result{}, err
	}

	employees, err := s.employeeRepo.List(ctx, true)
	if err != nil {
		return Result{}, fmt.Errorf("list employees: %w", err)
	}
	if len(employees) == 0 {
		return Result{}, employee.ErrNoActiveEmployees
	}
	if len(snapshot) == 0 {
		return Result{}, transaction.ErrNoTransactionsForMonth
	}

	expenses, err := s.txRepo.GetMonthlyExpenses(ctx, month)
	if err != nil {
		return Result{}, fmt.Errorf("get monthly expenses: %w", err)
	}

	sessions, sessionStats := s.reconstructor.Reconstruct(snapshot)
	salaries, payrollStats := s.calculator.ComputeMonth(month, employees, snapshot, expenses)
	netByID := s.calculator.AdjustedNetProfits(snapshot, expenses)

	generationID := uuid.NewString()

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		paidFlags, err := s.salaryRepo.GetPaidFlags(ctx, month)
		if err != nil {
			return fmt.Errorf("read paid flags: %w", err)
		}
		for i := range salaries {
			salaries[i].IsPaid = paidFlags[salaries[i].EmployeeID]
		}

		if err := s.salaryRepo.ReplaceForMonth(ctx, month, generationID, salaries); err != nil {
			return fmt.Errorf("replace salaries: %w", err)
		}
		if err := s.sessionRepo.ReplaceForMonth(ctx, month, generationID, sessions); err != nil {
			return fmt.Errorf("replace work sessions: %w", err)
		}
		if netByID != nil {
			if err := s.txRepo.UpdateNetProfits(ctx, month, netByID); err != nil {
				return fmt.Errorf("update net profits: %w", err)
			}
		}

		run := payroll.RecomputeRun{
			GenerationID:     generationID,
			Month:            month,
			TotalGross:       payrollStats.TotalGross,
			TotalNet:         payrollStats.TotalNet,
			TotalExpenses:    payrollStats.TotalExpenses,
			LeaderEmployeeID: payrollStats.LeaderEmployeeID,
			SalariesCreated:  payrollStats.SalariesCreated,
			SessionsComplete: sessionStats.CompletedCount,
			SessionsOpen:     sessionStats.IncompleteCount,
		}
		if err := s.runRepo.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("save recompute run: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	slog.Info("month recomputed",
		"month", month,
		"generation_id", generationID,
		"salaries", payrollStats.SalariesCreated,
		"sessions_completed", sessionStats.CompletedCount,
		"sessions_incomplete", sessionStats.IncompleteCount,
		"total_gross", payrollStats.TotalGross,
	)

	return Result{
		Month:        month,
		GenerationID: generationID,
		Payroll:      payrollStats,
		Sessions:     sessionStats,
	}, nil
}

// loadSnapshot pages through the store until the month's transactions are
// fully in memory. The aggregates need the complete set, so streaming
// computation is not an option here.
func (s *Service) loadSnapshot(ctx context.Context, month string) ([]transaction.Transaction, error) {
	var snapshot []transaction.Transaction
	for offset := 0; ; offset += s.pageSize {
		page, err := s.txRepo.ListByMonth(ctx, month, s.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list transactions page at offset %d: %w", offset, err)
		}
		snapshot = append(snapshot, page...)
		if len(page) < s.pageSize {
			return snapshot, nil
		}
	}
}

// GetMonthPayroll returns the month's stored salary rows plus the stats of
// the run that produced them.
func (s *Service) GetMonthPayroll(ctx context.Context, month string) ([]payroll.Salary, payroll.Stats, error) {
	if !validator.IsValidMonthCode(month) {
		return nil, payroll.Stats{}, transaction.ErrInvalidMonthCode
	}

	salaries, err := s.salaryRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, payroll.Stats{}, err
	}
	if len(salaries) == 0 {
		return nil, payroll.Stats{}, payroll.ErrSalaryNotFound
	}

	run, err := s.runRepo.GetLatestRun(ctx, month)
	if err != nil {
		return nil, payroll.Stats{}, err
	}

	stats := payroll.Stats{
		TotalGross:       run.TotalGross,
		TotalNet:         run.TotalNet,
		TotalExpenses:    run.TotalExpenses,
		LeaderEmployeeID: run.LeaderEmployeeID,
		SalariesCreated:  run.SalariesCreated,
	}
	return salaries, stats, nil
}

// GetMonthSessions returns the month's stored work sessions with counts.
func (s *Service) GetMonthSessions(ctx context.Context, month string) ([]session.WorkSession, session.Stats, error) {
	if !validator.IsValidMonthCode(month) {
		return nil, session.Stats{}, transaction.ErrInvalidMonthCode
	}

	sessions, err := s.sessionRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, session.Stats{}, err
	}
	if len(sessions) == 0 {
		return nil, session.Stats{}, session.ErrNoSessionsForMonth
	}

	var stats session.Stats
	for _, ws := range sessions {
		if ws.IsCompleted {
			stats.CompletedCount++
		} else {
			stats.IncompleteCount++
		}
	}
	return sessions, stats, nil
}

// GetMonthActivity derives the per-employee activity summaries on demand from
// a fresh snapshot. Activity is never stored; it is cheap to recompute.
func (s *Service) GetMonthActivity(ctx context.Context, month string) ([]activity.EmployeeActivity, error) {
	if !validator.IsValidMonthCode(month) {
		return nil, transaction.ErrInvalidMonthCode
	}

	snapshot, err := s.loadSnapshot(ctx, month)
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, transaction.ErrNoTransactionsForMonth
	}

	byEmployee := s.analyzer.Analyze(snapshot)
	result := make([]activity.EmployeeActivity, 0, len(byEmployee))
	for _, summary := range byEmployee {
		result = append(result, summary)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result, nil
}

// MarkPaid flips the externally owned is_paid flag on one salary row.
func (s *Service) MarkPaid(ctx context.Context, month, employeeID string, isPaid bool) error {
	if !validator.IsValidMonthCode(month) {
		return transaction.ErrInvalidMonthCode
	}
	return s.salaryRepo.SetPaid(ctx, month, employeeID, isPaid)
}
