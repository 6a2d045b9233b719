package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/fleet"
)

// VehicleRepository is a map-backed fleet.VehicleRepository.
type VehicleRepository struct {
	mu       sync.Mutex
	vehicles map[string]fleet.Vehicle
}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{vehicles: make(map[string]fleet.Vehicle)}
}

var _ fleet.VehicleRepository = (*VehicleRepository)(nil)

func (r *VehicleRepository) Create(_ context.Context, v fleet.Vehicle) (fleet.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.vehicles {
		if existing.PlateNumber == v.PlateNumber {
			return fleet.Vehicle{}, fleet.ErrPlateNumberExists
		}
	}
	r.vehicles[v.ID] = v
	return v, nil
}

func (r *VehicleRepository) GetByID(_ context.Context, id string) (fleet.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vehicles[id]
	if !ok {
		return fleet.Vehicle{}, fleet.ErrVehicleNotFound
	}
	return v, nil
}

func (r *VehicleRepository) List(_ context.Context, activeOnly bool) ([]fleet.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []fleet.Vehicle
	for _, v := range r.vehicles {
		if activeOnly && !v.IsActive {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlateNumber < out[j].PlateNumber })
	return out, nil
}

func (r *VehicleRepository) Update(_ context.Context, v fleet.Vehicle) (fleet.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[v.ID]; !ok {
		return fleet.Vehicle{}, fleet.ErrVehicleNotFound
	}
	for id, existing := range r.vehicles {
		if id != v.ID && existing.PlateNumber == v.PlateNumber {
			return fleet.Vehicle{}, fleet.ErrPlateNumberExists
		}
	}
	r.vehicles[v.ID] = v
	return v, nil
}

func (r *VehicleRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vehicles[id]
	if !ok {
		return fleet.ErrVehicleNotFound
	}
	v.IsActive = false
	r.vehicles[id] = v
	return nil
}
