package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/fleet"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/payroll"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/validator"
)

// Service owns delivery and assignment writes. Every successful mutation
// triggers the payroll engine synchronously, inside the same transaction, so
// a committed write always leaves the ledger consistent.
type Service struct {
	tx             database.Transactor
	deliveryRepo   delivery.DeliveryRepository
	assignmentRepo delivery.AssignmentRepository
	staffRepo      staff.StaffRepository
	vehicleRepo    fleet.VehicleRepository
	payrollTrigger payroll.Trigger
	defaultRate    decimal.Decimal
}

func NewService(
	tx database.Transactor,
	deliveryRepo delivery.DeliveryRepository,
	assignmentRepo delivery.AssignmentRepository,
	staffRepo staff.StaffRepository,
	vehicleRepo fleet.VehicleRepository,
	payrollTrigger payroll.Trigger,
	defaultTurnboyRate decimal.Decimal,
) *Service {
	return &Service{
		tx:             tx,
		deliveryRepo:   deliveryRepo,
		assignmentRepo: assignmentRepo,
		staffRepo:      staffRepo,
		vehicleRepo:    vehicleRepo,
		payrollTrigger: payrollTrigger,
		defaultRate:    defaultTurnboyRate,
	}
}

func (s *Service) Create(ctx context.Context, req delivery.CreateDeliveryRequest) (delivery.Delivery, error) {
	if err := req.Validate(); err != nil {
		return delivery.Delivery{}, err
	}

	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		return delivery.Delivery{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	rate := s.defaultRate
	if req.TurnboyPaymentRate != nil {
		rate = *req.TurnboyPaymentRate
	}
	status := delivery.StatusCompleted
	if req.Status != nil {
		status = delivery.Status(*req.Status)
	}

	d := delivery.Delivery{
		ID:                 uuid.New().String(),
		Date:               date,
		VehicleID:          req.VehicleID,
		Destination:        req.Destination,
		LoadingAmount:      req.LoadingAmount,
		TurnboyPaymentRate: rate,
		ItemsCarried:       req.ItemsCarried,
		Notes:              req.Notes,
		Status:             status,
	}

	var created delivery.Delivery
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.deliveryRepo.Create(ctx, d)
		if err != nil {
			return err
		}
		return s.payrollTrigger.OnDeliverySaved(ctx, created.ID)
	})
	return created, err
}

func (s *Service) Get(ctx context.Context, id string) (delivery.Delivery, error) {
	return s.deliveryRepo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter delivery.ListDeliveriesFilter) ([]delivery.Delivery, error) {
	return s.deliveryRepo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, req delivery.UpdateDeliveryRequest) (delivery.Delivery, error) {
	if err := req.Validate(); err != nil {
		return delivery.Delivery{}, err
	}

	d, err := s.deliveryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return delivery.Delivery{}, err
	}

	if req.Date != nil {
		parsed, _ := time.Parse("2006-01-02", *req.Date)
		d.Date = parsed
	}
	if req.VehicleID != nil {
		if _, err := s.vehicleRepo.GetByID(ctx, *req.VehicleID); err != nil {
			return delivery.Delivery{}, err
		}
		d.VehicleID = *req.VehicleID
	}
	if req.Destination != nil {
		d.Destination = *req.Destination
	}
	if req.LoadingAmount != nil {
		d.LoadingAmount = *req.LoadingAmount
	}
	if req.TurnboyPaymentRate != nil {
		d.TurnboyPaymentRate = *req.TurnboyPaymentRate
	}
	if req.ItemsCarried != nil {
		d.ItemsCarried = *req.ItemsCarried
	}
	if req.Notes != nil {
		d.Notes = req.Notes
	}
	if req.Status != nil {
		d.Status = delivery.Status(*req.Status)
	}

	var updated delivery.Delivery
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.deliveryRepo.Update(ctx, d)
		if err != nil {
			return err
		}
		return s.payrollTrigger.OnDeliverySaved(ctx, updated.ID)
	})
	return updated, err
}

// Delete removes the delivery, its assignment set and its ledger lines in
// one transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.deliveryRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.deliveryRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.payrollTrigger.OnDeliveryDeleted(ctx, id)
	})
}

// AssignStaff puts a staff member on a delivery in a role. The role must be
// one the staff member can work; loader assignments always count as having
// helped loading.
func (s *Service) AssignStaff(ctx context.Context, req delivery.AssignStaffRequest) (delivery.Assignment, error) {
	if err := req.Validate(); err != nil {
		return delivery.Assignment{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return delivery.Assignment{}, err
	}
	role := staff.Role(req.Role)
	if !member.CanWorkAs(role) {
		return delivery.Assignment{}, validator.ValidationErrors{
			{Field: "role", Message: "staff member cannot work as " + req.Role},
		}
	}
	if _, err := s.deliveryRepo.GetByID(ctx, req.DeliveryID); err != nil {
		return delivery.Assignment{}, err
	}

	a := delivery.Assignment{
		ID:         uuid.New().String(),
		DeliveryID: req.DeliveryID,
		StaffID:    req.StaffID,
		Role:       role,
	}
	if req.HelpedLoading != nil {
		a.HelpedLoading = *req.HelpedLoading
	}
	if a.Role == staff.RoleLoader {
		a.HelpedLoading = true
	}

	var created delivery.Assignment
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.assignmentRepo.Create(ctx, a)
		if err != nil {
			return err
		}
		return s.payrollTrigger.OnAssignmentSaved(ctx, created)
	})
	return created, err
}

func (s *Service) UpdateAssignment(ctx context.Context, req delivery.UpdateAssignmentRequest) (delivery.Assignment, error) {
	if err := req.Validate(); err != nil {
		return delivery.Assignment{}, err
	}

	a, err := s.assignmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return delivery.Assignment{}, err
	}

	if req.Role != nil {
		member, err := s.staffRepo.GetByID(ctx, a.StaffID)
		if err != nil {
			return delivery.Assignment{}, err
		}
		role := staff.Role(*req.Role)
		if !member.CanWorkAs(role) {
			return delivery.Assignment{}, validator.ValidationErrors{
				{Field: "role", Message: "staff member cannot work as " + *req.Role},
			}
		}
		a.Role = role
	}
	if req.HelpedLoading != nil {
		a.HelpedLoading = *req.HelpedLoading
	}
	if a.Role == staff.RoleLoader {
		a.HelpedLoading = true
	}

	var updated delivery.Assignment
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.assignmentRepo.Update(ctx, a)
		if err != nil {
			return err
		}
		return s.payrollTrigger.OnAssignmentSaved(ctx, updated)
	})
	return updated, err
}

func (s *Service) RemoveAssignment(ctx context.Context, id string) error {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.assignmentRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.payrollTrigger.OnAssignmentDeleted(ctx, a)
	})
}

func (s *Service) ListAssignments(ctx context.Context, deliveryID string) ([]delivery.Assignment, error) {
	return s.assignmentRepo.ListByDelivery(ctx, deliveryID)
}
