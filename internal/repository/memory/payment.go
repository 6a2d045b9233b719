package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/payroll"
)

// PaymentRepository is a map-backed payroll.PaymentRepository.
type PaymentRepository struct {
	mu      sync.Mutex
	monthly map[string]payroll.MonthlyPayment
	periods map[string]payroll.PaymentPeriod
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		monthly: make(map[string]payroll.MonthlyPayment),
		periods: make(map[string]payroll.PaymentPeriod),
	}
}

var _ payroll.PaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) UpsertMonthly(_ context.Context, p payroll.MonthlyPayment) (payroll.MonthlyPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, existing := range r.monthly {
		if existing.StaffID == p.StaffID && existing.Year == p.Year && existing.Month == p.Month {
			existing.RolePayment = p.RolePayment
			existing.LoaderPayment = p.LoaderPayment
			existing.TotalPayment = p.TotalPayment
			existing.UpdatedAt = now
			r.monthly[id] = existing
			return existing, nil
		}
	}

	p.ID = uuid.New().String()
	p.IsPaid = false
	p.PaymentDate = nil
	p.CreatedAt = now
	p.UpdatedAt = now
	r.monthly[p.ID] = p
	return p, nil
}

func (r *PaymentRepository) GetMonthly(_ context.Context, staffID string, year, month int) (payroll.MonthlyPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.monthly {
		if p.StaffID == staffID && p.Year == year && p.Month == month {
			return p, nil
		}
	}
	return payroll.MonthlyPayment{}, payroll.ErrMonthlyPaymentNotFound
}

func (r *PaymentRepository) GetMonthlyByID(_ context.Context, id string) (payroll.MonthlyPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.monthly[id]
	if !ok {
		return payroll.MonthlyPayment{}, payroll.ErrMonthlyPaymentNotFound
	}
	return p, nil
}

func (r *PaymentRepository) ListMonthly(_ context.Context, year, month int) ([]payroll.MonthlyPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []payroll.MonthlyPayment
	for _, p := range r.monthly {
		if p.Year == year && p.Month == month {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StaffID < out[j].StaffID })
	return out, nil
}

func (r *PaymentRepository) SetMonthlyPaid(_ context.Context, id string, isPaid bool, paymentDate *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.monthly[id]
	if !ok {
		return payroll.ErrMonthlyPaymentNotFound
	}
	p.IsPaid = isPaid
	p.PaymentDate = paymentDate
	p.UpdatedAt = time.Now().UTC()
	r.monthly[id] = p
	return nil
}

func (r *PaymentRepository) UpsertPeriod(_ context.Context, p payroll.PaymentPeriod) (payroll.PaymentPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, existing := range r.periods {
		if existing.StaffID == p.StaffID &&
			existing.PeriodStart.Equal(p.PeriodStart) && existing.PeriodEnd.Equal(p.PeriodEnd) {
			existing.RolePayment = p.RolePayment
			existing.LoaderPayment = p.LoaderPayment
			existing.TotalPayment = p.TotalPayment
			existing.UpdatedAt = now
			r.periods[id] = existing
			return existing, nil
		}
	}

	p.ID = uuid.New().String()
	p.IsPaid = false
	p.PaymentDate = nil
	p.CreatedAt = now
	p.UpdatedAt = now
	r.periods[p.ID] = p
	return p, nil
}

func (r *PaymentRepository) GetPeriod(_ context.Context, staffID string, start, end time.Time) (payroll.PaymentPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.periods {
		if p.StaffID == staffID && p.PeriodStart.Equal(start) && p.PeriodEnd.Equal(end) {
			return p, nil
		}
	}
	return payroll.PaymentPeriod{}, payroll.ErrPaymentPeriodNotFound
}

func (r *PaymentRepository) GetPeriodByID(_ context.Context, id string) (payroll.PaymentPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.periods[id]
	if !ok {
		return payroll.PaymentPeriod{}, payroll.ErrPaymentPeriodNotFound
	}
	return p, nil
}

func (r *PaymentRepository) ListPeriodsByStaff(_ context.Context, staffID string) ([]payroll.PaymentPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []payroll.PaymentPeriod
	for _, p := range r.periods {
		if p.StaffID == staffID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodStart.After(out[j].PeriodStart) })
	return out, nil
}

func (r *PaymentRepository) SetPeriodPaid(_ context.Context, id string, isPaid bool, paymentDate *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.periods[id]
	if !ok {
		return payroll.ErrPaymentPeriodNotFound
	}
	p.IsPaid = isPaid
	p.PaymentDate = paymentDate
	p.UpdatedAt = time.Now().UTC()
	r.periods[id] = p
	return nil
}
