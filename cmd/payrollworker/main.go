package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwendo-logistics/payroll-backend-go/internal/config"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/cron"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
	"github.com/mwendo-logistics/payroll-backend-go/internal/repository/postgresql"
	paymentService "github.com/mwendo-logistics/payroll-backend-go/internal/service/payment"
	payrollService "github.com/mwendo-logistics/payroll-backend-go/internal/service/payroll"
)

func main() {
	runOnce := flag.Bool("once", false, "run all jobs once and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	setupLogger(cfg.App.LogLevel)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	staffRepo := postgresql.NewStaffRepository(db)
	deliveryRepo := postgresql.NewDeliveryRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)

	engine := payrollService.NewEngine(cfg.Payroll.FallbackTurnboyPool)
	payrollSvc := payrollService.NewService(txManager, deliveryRepo, assignmentRepo, ledgerRepo, engine)
	paymentSvc := paymentService.NewService(txManager, ledgerRepo, paymentRepo, staffRepo)

	scheduler := cron.NewScheduler()
	payrollJobs := cron.NewPayrollJobs(paymentSvc, payrollSvc, deliveryRepo, cfg.Payroll.MaterializeInterval)
	payrollJobs.RegisterJobs(scheduler)

	if *runOnce {
		if err := scheduler.RunOnce(context.Background()); err != nil {
			slog.Error("Batch run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	scheduler.Start()
	slog.Info("Payroll worker started", "env", cfg.App.Env, "interval", cfg.Payroll.MaterializeInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	scheduler.Stop()
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}
