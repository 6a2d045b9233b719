package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/payroll"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payroll.PaymentRepository {
	return &paymentRepository{db: db}
}

// ========== MONTHLY ==========

// UpsertMonthly refreshes the amounts for (staff, year, month). is_paid and
// payment_date are deliberately left out of the update: rematerialization
// never resets payment status.
func (r *paymentRepository) UpsertMonthly(ctx context.Context, p payroll.MonthlyPayment) (payroll.MonthlyPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_payments (id, staff_id, year, month, role_payment, loader_payment, total_payment)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT uk_monthly_staff_year_month DO UPDATE SET
			role_payment = EXCLUDED.role_payment,
			loader_payment = EXCLUDED.loader_payment,
			total_payment = EXCLUDED.total_payment,
			updated_at = NOW()
		RETURNING id, staff_id, year, month, role_payment, loader_payment, total_payment,
			is_paid, payment_date, created_at, updated_at
	`

	var upserted payroll.MonthlyPayment
	err := q.QueryRow(ctx, query,
		p.StaffID, p.Year, p.Month, p.RolePayment, p.LoaderPayment, p.TotalPayment,
	).Scan(
		&upserted.ID, &upserted.StaffID, &upserted.Year, &upserted.Month,
		&upserted.RolePayment, &upserted.LoaderPayment, &upserted.TotalPayment,
		&upserted.IsPaid, &upserted.PaymentDate, &upserted.CreatedAt, &upserted.UpdatedAt,
	)
	if err != nil {
		return payroll.MonthlyPayment{}, fmt.Errorf("failed to upsert monthly payment: %w", err)
	}

	return upserted, nil
}

func (r *paymentRepository) GetMonthly(ctx context.Context, staffID string, year, month int) (payroll.MonthlyPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.staff_id, m.year, m.month, m.role_payment, m.loader_payment, m.total_payment,
			m.is_paid, m.payment_date, m.created_at, m.updated_at, s.name
		FROM monthly_payments m
		JOIN staff s ON s.id = m.staff_id
		WHERE m.staff_id = $1 AND m.year = $2 AND m.month = $3
	`

	var p payroll.MonthlyPayment
	err := q.QueryRow(ctx, query, staffID, year, month).Scan(
		&p.ID, &p.StaffID, &p.Year, &p.Month,
		&p.RolePayment, &p.LoaderPayment, &p.TotalPayment,
		&p.IsPaid, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt, &p.StaffName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.MonthlyPayment{}, payroll.ErrMonthlyPaymentNotFound
		}
		return payroll.MonthlyPayment{}, fmt.Errorf("failed to get monthly payment: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) GetMonthlyByID(ctx context.Context, id string) (payroll.MonthlyPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.staff_id, m.year, m.month, m.role_payment, m.loader_payment, m.total_payment,
			m.is_paid, m.payment_date, m.created_at, m.updated_at, s.name
		FROM monthly_payments m
		JOIN staff s ON s.id = m.staff_id
		WHERE m.id = $1
	`

	var p payroll.MonthlyPayment
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.StaffID, &p.Year, &p.Month,
		&p.RolePayment, &p.LoaderPayment, &p.TotalPayment,
		&p.IsPaid, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt, &p.StaffName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.MonthlyPayment{}, payroll.ErrMonthlyPaymentNotFound
		}
		return payroll.MonthlyPayment{}, fmt.Errorf("failed to get monthly payment: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) ListMonthly(ctx context.Context, year, month int) ([]payroll.MonthlyPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.staff_id, m.year, m.month, m.role_payment, m.loader_payment, m.total_payment,
			m.is_paid, m.payment_date, m.created_at, m.updated_at, s.name
		FROM monthly_payments m
		JOIN staff s ON s.id = m.staff_id
		WHERE m.year = $1 AND m.month = $2
		ORDER BY s.name
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly payments: %w", err)
	}
	defer rows.Close()

	var payments []payroll.MonthlyPayment
	for rows.Next() {
		var p payroll.MonthlyPayment
		if err := rows.Scan(
			&p.ID, &p.StaffID, &p.Year, &p.Month,
			&p.RolePayment, &p.LoaderPayment, &p.TotalPayment,
			&p.IsPaid, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt, &p.StaffName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monthly payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) SetMonthlyPaid(ctx context.Context, id string, isPaid bool, paymentDate *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_payments
		SET is_paid = $2, payment_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, isPaid, paymentDate).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrMonthlyPaymentNotFound
		}
		return fmt.Errorf("failed to set monthly payment status: %w", err)
	}

	return nil
}

// ========== PERIODS ==========

func (r *paymentRepository) UpsertPeriod(ctx context.Context, p payroll.PaymentPeriod) (payroll.PaymentPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payment_periods (id, staff_id, period_start, period_end, role_payment, loader_payment, total_payment)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT uk_period_staff_range DO UPDATE SET
			role_payment = EXCLUDED.role_payment,
			loader_payment = EXCLUDED.loader_payment,
			total_payment = EXCLUDED.total_payment,
			updated_at = NOW()
		RETURNING id, staff_id, period_start, period_end, role_payment, loader_payment, total_payment,
			is_paid, payment_date, created_at, updated_at
	`

	var upserted payroll.PaymentPeriod
	err := q.QueryRow(ctx, query,
		p.StaffID, p.PeriodStart, p.PeriodEnd, p.RolePayment, p.LoaderPayment, p.TotalPayment,
	).Scan(
		&upserted.ID, &upserted.StaffID, &upserted.PeriodStart, &upserted.PeriodEnd,
		&upserted.RolePayment, &upserted.LoaderPayment, &upserted.TotalPayment,
		&upserted.IsPaid, &upserted.PaymentDate, &upserted.CreatedAt, &upserted.UpdatedAt,
	)
	if err != nil {
		return payroll.PaymentPeriod{}, fmt.Errorf("failed to upsert payment period: %w", err)
	}

	return upserted, nil
}

func (r *paymentRepository) GetPeriod(ctx context.Context, staffID string, start, end time.Time) (payroll.PaymentPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.staff_id, p.period_start, p.period_end, p.role_payment, p.loader_payment, p.total_payment,
			p.is_paid, p.payment_date, p.created_at, p.updated_at, s.name
		FROM payment_periods p
		JOIN staff s ON s.id = p.staff_id
		WHERE p.staff_id = $1 AND p.period_start = $2 AND p.period_end = $3
	`

	var p payroll.PaymentPeriod
	err := q.QueryRow(ctx, query, staffID, start, end).Scan(
		&p.ID, &p.StaffID, &p.PeriodStart, &p.PeriodEnd,
		&p.RolePayment, &p.LoaderPayment, &p.TotalPayment,
		&p.IsPaid, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt, &p.StaffName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PaymentPeriod{}, payroll.ErrPaymentPeriodNotFound
		}
		return payroll.PaymentPeriod{}, fmt.Errorf("failed to get payment period: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) GetPeriodByID(ctx context.Context, id string) (payroll.PaymentPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.staff_id, p.period_start, p.period_end, p.role_payment, p.loader_payment, p.total_payment,
			p.is_paid, p.payment_date, p.created_at, p.updated_at, s.name
		FROM payment_periods p
		JOIN staff s ON s.id = p.staff_id
		WHERE p.id = $1
	`

	var p payroll.PaymentPeriod
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.StaffID, &p.PeriodStart, &p.PeriodEnd,
		&p.RolePayment, &p.LoaderPayment, &p.TotalPayment,
		&p.IsPaid, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt, &p.StaffName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PaymentPeriod{}, payroll.ErrPaymentPeriodNotFound
		}
		return payroll.PaymentPeriod{}, fmt.Errorf("failed to get payment period: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) ListPeriodsByStaff(ctx context.Context, staffID string) ([]payroll.PaymentPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.staff_id, p.period_start, p.period_end, p.role_payment, p.loader_payment, p.total_payment,
			p.is_paid, p.payment_date, p.created_at, p.updated_at, s.name
		FROM payment_periods p
		JOIN staff s ON s.id = p.staff_id
		WHERE p.staff_id = $1
		ORDER BY p.period_start DESC
	`

	rows, err := q.Query(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.PaymentPeriod
	for rows.Next() {
		var p payroll.PaymentPeriod
		if err := rows.Scan(
			&p.ID, &p.StaffID, &p.PeriodStart, &p.PeriodEnd,
			&p.RolePayment, &p.LoaderPayment, &p.TotalPayment,
			&p.IsPaid, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt, &p.StaffName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment period: %w", err)
		}
		periods = append(periods, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *paymentRepository) SetPeriodPaid(ctx context.Context, id string, isPaid bool, paymentDate *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payment_periods
		SET is_paid = $2, payment_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, isPaid, paymentDate).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPaymentPeriodNotFound
		}
		return fmt.Errorf("failed to set payment period status: %w", err)
	}

	return nil
}
