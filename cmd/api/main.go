package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/cardledger/payroll-backend-go/internal/config"
	appHTTP "github.com/cardledger/payroll-backend-go/internal/handler/http"
	"github.com/cardledger/payroll-backend-go/internal/pkg/cron"
	"github.com/cardledger/payroll-backend-go/internal/pkg/database"
	"github.com/cardledger/payroll-backend-go/internal/repository/postgresql"
	activityService "github.com/cardledger/payroll-backend-go/internal/service/activity"
	payrollService "github.com/cardledger/payroll-backend-go/internal/service/payroll"
	recomputeService "github.com/cardledger/payroll-backend-go/internal/service/recompute"
	sessionService "github.com/cardledger/payroll-backend-go/internal/service/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	transactionRepo := postgresql.NewTransactionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	workSessionRepo := postgresql.NewWorkSessionRepository(db)
	runRepo := postgresql.NewRunRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	calculator := payrollService.NewCalculator()
	reconstructor := sessionService.NewReconstructor(sessionService.Options{
		AllowWithdrawalReuse: cfg.Recompute.AllowWithdrawalReuse,
	})
	analyzer := activityService.NewAnalyzer()

	recomputeSvc := recomputeService.NewService(
		txRunner,
		transactionRepo,
		employeeRepo,
		salaryRepo,
		workSessionRepo,
		runRepo,
		calculator,
		reconstructor,
		analyzer,
		cfg.Recompute.PageSize,
	)

	payrollHandler := appHTTP.NewPayrollHandler(recomputeSvc)
	sessionHandler := appHTTP.NewSessionHandler(recomputeSvc)
	activityHandler := appHTTP.NewActivityHandler(recomputeSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			Env:            cfg.App.Env,
			LogLevel:       cfg.App.LogLevel,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		payrollHandler,
		sessionHandler,
		activityHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewRecomputeJobs(recomputeSvc, cfg.Recompute.AutoInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
