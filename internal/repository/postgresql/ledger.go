package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/payroll"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) payroll.LedgerRepository {
	return &ledgerRepository{db: db}
}

// UpsertLine inserts or replaces the line for (staff, delivery). total_pay is
// computed in SQL from role_pay + loader_pay; a caller-supplied total is
// ignored.
func (r *ledgerRepository) UpsertLine(ctx context.Context, line payroll.LedgerLine) (payroll.LedgerLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_ledger (id, staff_id, delivery_id, role_pay, loader_pay, total_pay)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $3 + $4)
		ON CONFLICT ON CONSTRAINT uk_ledger_staff_delivery DO UPDATE SET
			role_pay = EXCLUDED.role_pay,
			loader_pay = EXCLUDED.loader_pay,
			total_pay = EXCLUDED.role_pay + EXCLUDED.loader_pay
		RETURNING id, staff_id, delivery_id, role_pay, loader_pay, total_pay, date_recorded
	`

	var upserted payroll.LedgerLine
	err := q.QueryRow(ctx, query,
		line.StaffID, line.DeliveryID, line.RolePay, line.LoaderPay,
	).Scan(
		&upserted.ID, &upserted.StaffID, &upserted.DeliveryID,
		&upserted.RolePay, &upserted.LoaderPay, &upserted.TotalPay, &upserted.DateRecorded,
	)
	if err != nil {
		return payroll.LedgerLine{}, fmt.Errorf("failed to upsert ledger line: %w", err)
	}

	return upserted, nil
}

func (r *ledgerRepository) ListLines(ctx context.Context, filter payroll.LedgerFilter) ([]payroll.LedgerLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.staff_id, l.delivery_id, l.role_pay, l.loader_pay, l.total_pay,
			l.date_recorded, s.name, d.date
		FROM payroll_ledger l
		JOIN staff s ON s.id = l.staff_id
		JOIN deliveries d ON d.id = l.delivery_id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.StaffID != nil {
		query += fmt.Sprintf(" AND l.staff_id = $%d", argIdx)
		args = append(args, *filter.StaffID)
		argIdx++
	}
	if filter.DeliveryID != nil {
		query += fmt.Sprintf(" AND l.delivery_id = $%d", argIdx)
		args = append(args, *filter.DeliveryID)
		argIdx++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND d.date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND d.date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	query += " ORDER BY d.date DESC, s.name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.LedgerLine
	for rows.Next() {
		var l payroll.LedgerLine
		if err := rows.Scan(
			&l.ID, &l.StaffID, &l.DeliveryID, &l.RolePay, &l.LoaderPay, &l.TotalPay,
			&l.DateRecorded, &l.StaffName, &l.DeliveryDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		lines = append(lines, l)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *ledgerRepository) DeleteByDeliveryExcept(ctx context.Context, deliveryID string, keepStaffIDs []string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		DELETE FROM payroll_ledger
		WHERE delivery_id = $1 AND NOT (staff_id = ANY($2))
	`, deliveryID, keepStaffIDs)
	if err != nil {
		return fmt.Errorf("failed to prune ledger lines: %w", err)
	}

	return nil
}

func (r *ledgerRepository) DeleteByDelivery(ctx context.Context, deliveryID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_ledger WHERE delivery_id = $1`, deliveryID); err != nil {
		return fmt.Errorf("failed to delete ledger lines: %w", err)
	}

	return nil
}

func (r *ledgerRepository) SumByStaffAndDateRange(ctx context.Context, staffID string, from, to time.Time) (payroll.PayTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(l.role_pay), 0),
			COALESCE(SUM(l.loader_pay), 0),
			COALESCE(SUM(l.total_pay), 0)
		FROM payroll_ledger l
		JOIN deliveries d ON d.id = l.delivery_id
		WHERE l.staff_id = $1 AND d.date BETWEEN $2 AND $3
	`

	var totals payroll.PayTotals
	err := q.QueryRow(ctx, query, staffID, from, to).Scan(
		&totals.RolePayment, &totals.LoaderPayment, &totals.TotalPayment,
	)
	if err != nil {
		return payroll.PayTotals{}, fmt.Errorf("failed to sum ledger lines: %w", err)
	}

	return totals, nil
}
