package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/dashboard"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetMonthStats(ctx context.Context, year, month int) (dashboard.Stats, error) {
	q := GetQuerier(ctx, r.db)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	stats := dashboard.Stats{Year: year, Month: month}

	query := `
		SELECT COUNT(*), COALESCE(SUM(loading_amount), 0)
		FROM deliveries
		WHERE date BETWEEN $1 AND $2
	`
	if err := q.QueryRow(ctx, query, start, end).Scan(&stats.DeliveryCount, &stats.TotalLoadingAmount); err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to get delivery stats: %w", err)
	}

	query = `
		SELECT COALESCE(SUM(l.role_pay), 0)
		FROM payroll_ledger l
		JOIN deliveries d ON d.id = l.delivery_id
		WHERE d.date BETWEEN $1 AND $2
	`
	if err := q.QueryRow(ctx, query, start, end).Scan(&stats.TotalTurnboyPayments); err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to get turnboy payment stats: %w", err)
	}

	query = `
		SELECT
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE is_active AND (role = 'loader' OR is_loader))
		FROM staff
	`
	if err := q.QueryRow(ctx, query).Scan(&stats.ActiveStaff, &stats.LoadersAvailable); err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to get staff stats: %w", err)
	}

	query = `SELECT COUNT(*) FROM vehicles WHERE is_active`
	if err := q.QueryRow(ctx, query).Scan(&stats.ActiveVehicles); err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to get vehicle stats: %w", err)
	}

	stats.TotalDeliveriesAmount = stats.TotalLoadingAmount.Add(stats.TotalTurnboyPayments)

	return stats, nil
}
