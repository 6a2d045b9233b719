package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/payroll"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/validator"
)

// Service rolls ledger lines into monthly and custom-period payment
// summaries. Aggregation is read-only; materialization upserts a summary row
// without touching its payment status.
type Service struct {
	tx          database.Transactor
	ledgerRepo  payroll.LedgerRepository
	paymentRepo payroll.PaymentRepository
	staffRepo   staff.StaffRepository
}

func NewService(
	tx database.Transactor,
	ledgerRepo payroll.LedgerRepository,
	paymentRepo payroll.PaymentRepository,
	staffRepo staff.StaffRepository,
) *Service {
	return &Service{
		tx:          tx,
		ledgerRepo:  ledgerRepo,
		paymentRepo: paymentRepo,
		staffRepo:   staffRepo,
	}
}

// Aggregate sums the staff member's ledger lines whose delivery date falls
// within [from, to] inclusive. Zero totals when no lines exist; no side
// effects, safe for any number of concurrent callers.
func (s *Service) Aggregate(ctx context.Context, staffID string, from, to time.Time) (payroll.PayTotals, error) {
	if to.Before(from) {
		return payroll.PayTotals{}, validator.ValidationErrors{
			{Field: "to", Message: "must not be before from"},
		}
	}
	return s.ledgerRepo.SumByStaffAndDateRange(ctx, staffID, from, to)
}

// MaterializeMonthly aggregates the calendar month and upserts the staff
// member's MonthlyPayment row. Amounts update; an already-paid row stays
// paid with its original payment date.
func (s *Service) MaterializeMonthly(ctx context.Context, staffID string, year, month int) (payroll.MonthlyPayment, error) {
	if err := validatePeriod(year, month); err != nil {
		return payroll.MonthlyPayment{}, err
	}
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return payroll.MonthlyPayment{}, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var materialized payroll.MonthlyPayment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		totals, err := s.ledgerRepo.SumByStaffAndDateRange(ctx, staffID, start, end)
		if err != nil {
			return fmt.Errorf("failed to aggregate ledger for %d-%02d: %w", year, month, err)
		}

		materialized, err = s.paymentRepo.UpsertMonthly(ctx, payroll.MonthlyPayment{
			StaffID:       staffID,
			Year:          year,
			Month:         month,
			RolePayment:   totals.RolePayment,
			LoaderPayment: totals.LoaderPayment,
			TotalPayment:  totals.TotalPayment,
		})
		return err
	})
	return materialized, err
}

// MaterializeMonthlyAll runs the monthly materialization for every active
// staff member; the batch entrypoint and the background worker call this.
func (s *Service) MaterializeMonthlyAll(ctx context.Context, year, month int) ([]payroll.MonthlyPayment, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	members, err := s.staffRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list active staff: %w", err)
	}

	payments := make([]payroll.MonthlyPayment, 0, len(members))
	for _, m := range members {
		p, err := s.MaterializeMonthly(ctx, m.ID, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to materialize %d-%02d for staff %s: %w", year, month, m.ID, err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// MaterializePeriod is MaterializeMonthly over an arbitrary [start, end]
// range. Overlapping periods for the same staff member are allowed.
func (s *Service) MaterializePeriod(ctx context.Context, staffID string, start, end time.Time) (payroll.PaymentPeriod, error) {
	if end.Before(start) {
		return payroll.PaymentPeriod{}, validator.ValidationErrors{
			{Field: "period_end", Message: "must not be before period_start"},
		}
	}
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return payroll.PaymentPeriod{}, err
	}

	var materialized payroll.PaymentPeriod
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		totals, err := s.ledgerRepo.SumByStaffAndDateRange(ctx, staffID, start, end)
		if err != nil {
			return fmt.Errorf("failed to aggregate ledger for period: %w", err)
		}

		materialized, err = s.paymentRepo.UpsertPeriod(ctx, payroll.PaymentPeriod{
			StaffID:       staffID,
			PeriodStart:   start,
			PeriodEnd:     end,
			RolePayment:   totals.RolePayment,
			LoaderPayment: totals.LoaderPayment,
			TotalPayment:  totals.TotalPayment,
		})
		return err
	})
	return materialized, err
}

// MarkMonthlyPaid transitions an unpaid summary to paid, stamping today as
// the payment date. Amounts are never recomputed here.
func (s *Service) MarkMonthlyPaid(ctx context.Context, id string) error {
	today := truncateToDay(time.Now().UTC())
	return s.paymentRepo.SetMonthlyPaid(ctx, id, true, &today)
}

// MarkMonthlyUnpaid reverses a paid transition and clears the payment date.
func (s *Service) MarkMonthlyUnpaid(ctx context.Context, id string) error {
	return s.paymentRepo.SetMonthlyPaid(ctx, id, false, nil)
}

func (s *Service) MarkPeriodPaid(ctx context.Context, id string) error {
	today := truncateToDay(time.Now().UTC())
	return s.paymentRepo.SetPeriodPaid(ctx, id, true, &today)
}

func (s *Service) MarkPeriodUnpaid(ctx context.Context, id string) error {
	return s.paymentRepo.SetPeriodPaid(ctx, id, false, nil)
}

func (s *Service) GetMonthly(ctx context.Context, staffID string, year, month int) (payroll.MonthlyPayment, error) {
	if err := validatePeriod(year, month); err != nil {
		return payroll.MonthlyPayment{}, err
	}
	return s.paymentRepo.GetMonthly(ctx, staffID, year, month)
}

func (s *Service) ListPeriods(ctx context.Context, staffID string) ([]payroll.PaymentPeriod, error) {
	return s.paymentRepo.ListPeriodsByStaff(ctx, staffID)
}

// MonthlySummary is the company-wide paid/unpaid breakdown across all
// materialized rows for the month.
func (s *Service) MonthlySummary(ctx context.Context, year, month int) (payroll.MonthlySummary, error) {
	if err := validatePeriod(year, month); err != nil {
		return payroll.MonthlySummary{}, err
	}

	payments, err := s.paymentRepo.ListMonthly(ctx, year, month)
	if err != nil {
		return payroll.MonthlySummary{}, err
	}

	summary := payroll.MonthlySummary{
		Year:         year,
		Month:        month,
		TotalPaid:    decimal.Zero,
		TotalUnpaid:  decimal.Zero,
		TotalPayment: decimal.Zero,
	}
	for _, p := range payments {
		summary.StaffCount++
		summary.TotalPayment = summary.TotalPayment.Add(p.TotalPayment)
		if p.IsPaid {
			summary.PaidCount++
			summary.TotalPaid = summary.TotalPaid.Add(p.TotalPayment)
		} else {
			summary.UnpaidCount++
			summary.TotalUnpaid = summary.TotalUnpaid.Add(p.TotalPayment)
		}
	}
	return summary, nil
}

func validatePeriod(year, month int) error {
	var errs validator.ValidationErrors

	if year < 2000 || year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
