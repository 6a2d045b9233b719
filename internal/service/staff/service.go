package staff

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
)

type Service struct {
	staffRepo staff.StaffRepository
}

func NewService(staffRepo staff.StaffRepository) *Service {
	return &Service{staffRepo: staffRepo}
}

func (s *Service) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.Staff, error) {
	if err := req.Validate(); err != nil {
		return staff.Staff{}, err
	}

	dateJoined := time.Now().UTC()
	if req.DateJoined != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateJoined)
		if err == nil {
			dateJoined = parsed
		}
	}

	member := staff.Staff{
		ID:          uuid.New().String(),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Role:        staff.Role(req.Role),
		DateJoined:  dateJoined,
		IsActive:    true,
	}
	if req.IsLoader != nil {
		member.IsLoader = *req.IsLoader
	}
	member.Normalize()

	return s.staffRepo.Create(ctx, member)
}

func (s *Service) Get(ctx context.Context, id string) (staff.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]staff.Staff, error) {
	return s.staffRepo.List(ctx, activeOnly)
}

func (s *Service) Update(ctx context.Context, req staff.UpdateStaffRequest) (staff.Staff, error) {
	if err := req.Validate(); err != nil {
		return staff.Staff{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.ID)
	if err != nil {
		return staff.Staff{}, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		member.PhoneNumber = req.PhoneNumber
	}
	if req.Role != nil {
		member.Role = staff.Role(*req.Role)
	}
	if req.IsLoader != nil {
		member.IsLoader = *req.IsLoader
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	member.Normalize()

	return s.staffRepo.Update(ctx, member)
}

// Deactivate retires a staff member from rostering without touching their
// historical ledger lines.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.staffRepo.Deactivate(ctx, id)
}
