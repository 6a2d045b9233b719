package fleet

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/fleet"
)

type Service struct {
	vehicleRepo fleet.VehicleRepository
}

func NewService(vehicleRepo fleet.VehicleRepository) *Service {
	return &Service{vehicleRepo: vehicleRepo}
}

func (s *Service) Create(ctx context.Context, req fleet.CreateVehicleRequest) (fleet.Vehicle, error) {
	if err := req.Validate(); err != nil {
		return fleet.Vehicle{}, err
	}

	vehicle := fleet.Vehicle{
		ID:          uuid.New().String(),
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		VehicleType: fleet.VehicleType(req.VehicleType),
		Capacity:    req.Capacity,
		DriverName:  req.DriverName,
		IsActive:    true,
	}

	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *Service) Get(ctx context.Context, id string) (fleet.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]fleet.Vehicle, error) {
	return s.vehicleRepo.List(ctx, activeOnly)
}

func (s *Service) Update(ctx context.Context, req fleet.UpdateVehicleRequest) (fleet.Vehicle, error) {
	if err := req.Validate(); err != nil {
		return fleet.Vehicle{}, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.ID)
	if err != nil {
		return fleet.Vehicle{}, err
	}

	if req.PlateNumber != nil {
		vehicle.PlateNumber = strings.ToUpper(strings.TrimSpace(*req.PlateNumber))
	}
	if req.VehicleType != nil {
		vehicle.VehicleType = fleet.VehicleType(*req.VehicleType)
	}
	if req.Capacity != nil {
		vehicle.Capacity = req.Capacity
	}
	if req.DriverName != nil {
		vehicle.DriverName = req.DriverName
	}
	if req.IsActive != nil {
		vehicle.IsActive = *req.IsActive
	}

	return s.vehicleRepo.Update(ctx, vehicle)
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.vehicleRepo.Deactivate(ctx, id)
}
