package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
)

// StaffRepository is a map-backed staff.StaffRepository for tests and the
// worker's dry-run mode.
type StaffRepository struct {
	mu    sync.Mutex
	staff map[string]staff.Staff
}

func NewStaffRepository() *StaffRepository {
	return &StaffRepository{staff: make(map[string]staff.Staff)}
}

var _ staff.StaffRepository = (*StaffRepository)(nil)

func (r *StaffRepository) Create(_ context.Context, s staff.Staff) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.staff {
		if existing.Name == s.Name {
			return staff.Staff{}, staff.ErrStaffNameExists
		}
	}
	r.staff[s.ID] = s
	return s, nil
}

func (r *StaffRepository) GetByID(_ context.Context, id string) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.staff[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

func (r *StaffRepository) GetByName(_ context.Context, name string) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.staff {
		if s.Name == name {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (r *StaffRepository) List(_ context.Context, activeOnly bool) ([]staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []staff.Staff
	for _, s := range r.staff {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *StaffRepository) Update(_ context.Context, s staff.Staff) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.staff[s.ID]; !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	for id, existing := range r.staff {
		if id != s.ID && existing.Name == s.Name {
			return staff.Staff{}, staff.ErrStaffNameExists
		}
	}
	r.staff[s.ID] = s
	return s, nil
}

func (r *StaffRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.staff[id]
	if !ok {
		return staff.ErrStaffNotFound
	}
	s.IsActive = false
	r.staff[id] = s
	return nil
}
