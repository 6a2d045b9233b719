package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/payroll"
)

// LedgerRepository is a map-backed payroll.LedgerRepository. Date filters need
// delivery dates, so the repository is bound to the delivery store after both
// are constructed.
type LedgerRepository struct {
	mu    sync.Mutex
	lines map[string]payroll.LedgerLine

	deliveries *DeliveryRepository
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{lines: make(map[string]payroll.LedgerLine)}
}

var _ payroll.LedgerRepository = (*LedgerRepository)(nil)

// BindDeliveries wires the delivery store used to resolve delivery dates.
func (r *LedgerRepository) BindDeliveries(deliveries *DeliveryRepository) {
	r.deliveries = deliveries
}

func (r *LedgerRepository) UpsertLine(_ context.Context, line payroll.LedgerLine) (payroll.LedgerLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line.TotalPay = line.RolePay.Add(line.LoaderPay)

	for id, existing := range r.lines {
		if existing.StaffID == line.StaffID && existing.DeliveryID == line.DeliveryID {
			line.ID = id
			line.DateRecorded = existing.DateRecorded
			r.lines[id] = line
			return line, nil
		}
	}

	line.ID = uuid.New().String()
	line.DateRecorded = time.Now().UTC()
	r.lines[line.ID] = line
	return line, nil
}

func (r *LedgerRepository) ListLines(_ context.Context, filter payroll.LedgerFilter) ([]payroll.LedgerLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []payroll.LedgerLine
	for _, l := range r.lines {
		if filter.StaffID != nil && l.StaffID != *filter.StaffID {
			continue
		}
		if filter.DeliveryID != nil && l.DeliveryID != *filter.DeliveryID {
			continue
		}
		if filter.From != nil || filter.To != nil {
			date, ok := r.deliveryDate(l.DeliveryID)
			if !ok {
				continue
			}
			if filter.From != nil && date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && date.After(*filter.To) {
				continue
			}
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DeliveryID != out[j].DeliveryID {
			return out[i].DeliveryID < out[j].DeliveryID
		}
		return out[i].StaffID < out[j].StaffID
	})
	return out, nil
}

func (r *LedgerRepository) DeleteByDeliveryExcept(_ context.Context, deliveryID string, keepStaffIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keep := make(map[string]bool, len(keepStaffIDs))
	for _, id := range keepStaffIDs {
		keep[id] = true
	}
	for id, l := range r.lines {
		if l.DeliveryID == deliveryID && !keep[l.StaffID] {
			delete(r.lines, id)
		}
	}
	return nil
}

func (r *LedgerRepository) DeleteByDelivery(_ context.Context, deliveryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, l := range r.lines {
		if l.DeliveryID == deliveryID {
			delete(r.lines, id)
		}
	}
	return nil
}

func (r *LedgerRepository) SumByStaffAndDateRange(_ context.Context, staffID string, from, to time.Time) (payroll.PayTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	totals := payroll.ZeroTotals()
	for _, l := range r.lines {
		if l.StaffID != staffID {
			continue
		}
		date, ok := r.deliveryDate(l.DeliveryID)
		if !ok || date.Before(from) || date.After(to) {
			continue
		}
		totals.RolePayment = totals.RolePayment.Add(l.RolePay)
		totals.LoaderPayment = totals.LoaderPayment.Add(l.LoaderPay)
		totals.TotalPayment = totals.TotalPayment.Add(l.TotalPay)
	}
	return totals, nil
}

func (r *LedgerRepository) deliveryDate(deliveryID string) (time.Time, bool) {
	if r.deliveries == nil {
		return time.Time{}, false
	}
	r.deliveries.mu.Lock()
	defer r.deliveries.mu.Unlock()

	d, ok := r.deliveries.deliveries[deliveryID]
	if !ok {
		return time.Time{}, false
	}
	return d.Date, true
}
