package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cardledger/payroll-backend-go/internal/domain/employee"
	"github.com/cardledger/payroll-backend-go/internal/domain/transaction"
	"github.com/cardledger/payroll-backend-go/internal/service/recompute"
)

// Recomputer is the slice of the recompute service the cron jobs need.
type Recomputer interface {
	RecomputeMonth(ctx context.Context, month string) (recompute.Result, error)
}

// RecomputeJobs keeps the current month's derived rows fresh as new
// transactions arrive from ingestion.
type RecomputeJobs struct {
	service  Recomputer
	interval time.Duration
	now      func() time.Time
}

func NewRecomputeJobs(service Recomputer, interval time.Duration) *RecomputeJobs {
	return &RecomputeJobs{
		service:  service,
		interval: interval,
		now:      time.Now,
	}
}

func (j *RecomputeJobs) RegisterJobs(scheduler *Scheduler) {
	if j.interval <= 0 {
		slog.Info("auto recompute disabled")
		return
	}
	scheduler.AddJob("recompute_current_month", j.interval, j.RecomputeCurrentMonth)
}

// RecomputeCurrentMonth recomputes the month the clock currently sits in.
// Months with no data yet are an expected state, not a failure.
func (j *RecomputeJobs) RecomputeCurrentMonth(ctx context.Context) error {
	month := j.now().UTC().Format("2006-01")

	result, err := j.service.RecomputeMonth(ctx, month)
	if err != nil {
		if errors.Is(err, transaction.ErrNoTransactionsForMonth) || errors.Is(err, employee.ErrNoActiveEmployees) {
			slog.Info("cron: nothing to recompute yet", "month", month)
			return nil
		}
		return err
	}

	slog.Info("cron: current month recomputed",
		"month", month,
		"generation_id", result.GenerationID,
		"salaries", result.Payroll.SalariesCreated,
	)
	return nil
}
