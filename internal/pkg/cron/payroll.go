package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
	paymentsvc "github.com/mwendo-logistics/payroll-backend-go/internal/service/payment"
	payrollsvc "github.com/mwendo-logistics/payroll-backend-go/internal/service/payroll"
)

type PayrollJobs struct {
	paymentSvc   *paymentsvc.Service
	payrollSvc   *payrollsvc.Service
	deliveryRepo delivery.DeliveryRepository
	interval     time.Duration
}

func NewPayrollJobs(
	paymentSvc *paymentsvc.Service,
	payrollSvc *payrollsvc.Service,
	deliveryRepo delivery.DeliveryRepository,
	interval time.Duration,
) *PayrollJobs {
	return &PayrollJobs{
		paymentSvc:   paymentSvc,
		payrollSvc:   payrollSvc,
		deliveryRepo: deliveryRepo,
		interval:     interval,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("materialize_monthly_payments", j.interval, j.MaterializeMonthlyPayments)
	scheduler.AddJob("reconcile_recent_ledger", j.interval, j.ReconcileRecentLedger)
}

// MaterializeMonthlyPayments refreshes monthly summaries for every active
// staff member. The current month is always refreshed; during the first three
// days of a month the previous month is refreshed too, catching deliveries
// entered after the month rolled over.
func (j *PayrollJobs) MaterializeMonthlyPayments(ctx context.Context) error {
	now := time.Now().UTC()

	slog.Info("Cron: Starting monthly payment materialization", "year", now.Year(), "month", int(now.Month()))

	payments, err := j.paymentSvc.MaterializeMonthlyAll(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return fmt.Errorf("failed to materialize current month: %w", err)
	}

	if now.Day() <= 3 {
		prev := now.AddDate(0, -1, 0)
		if _, err := j.paymentSvc.MaterializeMonthlyAll(ctx, prev.Year(), int(prev.Month())); err != nil {
			return fmt.Errorf("failed to materialize previous month: %w", err)
		}
	}

	slog.Info("Cron: Monthly payment materialization completed", "staff_count", len(payments))
	return nil
}

// ReconcileRecentLedger sweeps the last 31 days of deliveries and recomputes
// any whose ledger line set no longer matches the assignment set.
func (j *PayrollJobs) ReconcileRecentLedger(ctx context.Context) error {
	from := time.Now().UTC().AddDate(0, 0, -31).Format("2006-01-02")

	deliveries, err := j.deliveryRepo.List(ctx, delivery.ListDeliveriesFilter{From: &from})
	if err != nil {
		return fmt.Errorf("failed to list recent deliveries: %w", err)
	}

	reconciled := 0
	for _, d := range deliveries {
		if err := j.payrollSvc.CheckConsistency(ctx, d.ID); err == nil {
			continue
		}

		slog.Warn("Cron: Ledger divergence detected", "delivery_id", d.ID)
		if err := j.payrollSvc.Reconcile(ctx, d.ID); err != nil {
			slog.Error("Cron: Failed to reconcile ledger", "delivery_id", d.ID, "error", err)
			continue
		}
		reconciled++
	}

	if reconciled > 0 {
		slog.Info("Cron: Ledger reconciliation completed", "reconciled", reconciled)
	}
	return nil
}
