package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
)

// DeliveryRepository is a map-backed delivery.DeliveryRepository. Delete
// cascades to the assignment and ledger repositories it was constructed with,
// mirroring the foreign keys of the real schema.
type DeliveryRepository struct {
	mu         sync.Mutex
	deliveries map[string]delivery.Delivery

	assignments *AssignmentRepository
	ledger      *LedgerRepository
}

func NewDeliveryRepository(assignments *AssignmentRepository, ledger *LedgerRepository) *DeliveryRepository {
	return &DeliveryRepository{
		deliveries:  make(map[string]delivery.Delivery),
		assignments: assignments,
		ledger:      ledger,
	}
}

var _ delivery.DeliveryRepository = (*DeliveryRepository)(nil)

func (r *DeliveryRepository) Create(_ context.Context, d delivery.Delivery) (delivery.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deliveries[d.ID] = d
	return d, nil
}

func (r *DeliveryRepository) GetByID(_ context.Context, id string) (delivery.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.deliveries[id]
	if !ok {
		return delivery.Delivery{}, delivery.ErrDeliveryNotFound
	}
	return d, nil
}

func (r *DeliveryRepository) GetByIDForUpdate(ctx context.Context, id string) (delivery.Delivery, error) {
	return r.GetByID(ctx, id)
}

func (r *DeliveryRepository) List(_ context.Context, filter delivery.ListDeliveriesFilter) ([]delivery.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []delivery.Delivery
	for _, d := range r.deliveries {
		if filter.From != nil && d.Date.Format("2006-01-02") < *filter.From {
			continue
		}
		if filter.To != nil && d.Date.Format("2006-01-02") > *filter.To {
			continue
		}
		if filter.VehicleID != nil && d.VehicleID != *filter.VehicleID {
			continue
		}
		if filter.Status != nil && string(d.Status) != *filter.Status {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *DeliveryRepository) Update(_ context.Context, d delivery.Delivery) (delivery.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deliveries[d.ID]; !ok {
		return delivery.Delivery{}, delivery.ErrDeliveryNotFound
	}
	r.deliveries[d.ID] = d
	return d, nil
}

func (r *DeliveryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.deliveries[id]; !ok {
		r.mu.Unlock()
		return delivery.ErrDeliveryNotFound
	}
	delete(r.deliveries, id)
	r.mu.Unlock()

	if r.assignments != nil {
		r.assignments.deleteByDelivery(id)
	}
	if r.ledger != nil {
		if err := r.ledger.DeleteByDelivery(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// AssignmentRepository is a map-backed delivery.AssignmentRepository.
type AssignmentRepository struct {
	mu          sync.Mutex
	assignments map[string]delivery.Assignment
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{assignments: make(map[string]delivery.Assignment)}
}

var _ delivery.AssignmentRepository = (*AssignmentRepository)(nil)

func (r *AssignmentRepository) Create(_ context.Context, a delivery.Assignment) (delivery.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.assignments {
		if existing.DeliveryID == a.DeliveryID && existing.StaffID == a.StaffID && existing.Role == a.Role {
			return delivery.Assignment{}, delivery.ErrAssignmentExists
		}
	}
	r.assignments[a.ID] = a
	return a, nil
}

func (r *AssignmentRepository) GetByID(_ context.Context, id string) (delivery.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.assignments[id]
	if !ok {
		return delivery.Assignment{}, delivery.ErrAssignmentNotFound
	}
	return a, nil
}

func (r *AssignmentRepository) ListByDelivery(_ context.Context, deliveryID string) ([]delivery.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []delivery.Assignment
	for _, a := range r.assignments {
		if a.DeliveryID == deliveryID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StaffID < out[j].StaffID })
	return out, nil
}

func (r *AssignmentRepository) Update(_ context.Context, a delivery.Assignment) (delivery.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.assignments[a.ID]
	if !ok {
		return delivery.Assignment{}, delivery.ErrAssignmentNotFound
	}
	for id, existing := range r.assignments {
		if id != a.ID && existing.DeliveryID == current.DeliveryID &&
			existing.StaffID == current.StaffID && existing.Role == a.Role {
			return delivery.Assignment{}, delivery.ErrAssignmentExists
		}
	}
	current.Role = a.Role
	current.HelpedLoading = a.HelpedLoading
	r.assignments[a.ID] = current
	return current, nil
}

func (r *AssignmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assignments[id]; !ok {
		return delivery.ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	return nil
}

func (r *AssignmentRepository) deleteByDelivery(deliveryID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.assignments {
		if a.DeliveryID == deliveryID {
			delete(r.assignments, id)
		}
	}
}
