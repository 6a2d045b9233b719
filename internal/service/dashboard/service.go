package dashboard

import (
	"context"
	"time"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/dashboard"
)

// Service serves the operational snapshot backing the dispatch dashboard.
// Read-only; never touches ledger or summary rows.
type Service struct {
	dashboardRepo dashboard.DashboardRepository
}

func NewService(dashboardRepo dashboard.DashboardRepository) *Service {
	return &Service{dashboardRepo: dashboardRepo}
}

func (s *Service) CurrentMonthStats(ctx context.Context) (dashboard.Stats, error) {
	now := time.Now().UTC()
	return s.dashboardRepo.GetMonthStats(ctx, now.Year(), int(now.Month()))
}

func (s *Service) MonthStats(ctx context.Context, year, month int) (dashboard.Stats, error) {
	return s.dashboardRepo.GetMonthStats(ctx, year, month)
}
