package dashboard

import "context"

type DashboardRepository interface {
	GetMonthStats(ctx context.Context, year, month int) (Stats, error)
}
