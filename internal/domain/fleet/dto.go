package fleet

import (
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/validator"
)

type CreateVehicleRequest struct {
	PlateNumber string  `json:"plate_number"`
	VehicleType string  `json:"vehicle_type"`
	Capacity    *string `json:"capacity,omitempty"`
	DriverName  *string `json:"driver_name,omitempty"`
}

func (r *CreateVehicleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PlateNumber) {
		errs = append(errs, validator.ValidationError{Field: "plate_number", Message: "is required"})
	} else if !validator.IsValidPlateNumber(r.PlateNumber) {
		errs = append(errs, validator.ValidationError{Field: "plate_number", Message: "is not a valid plate number"})
	}
	if !validator.IsInSlice(r.VehicleType, VehicleTypes) {
		errs = append(errs, validator.ValidationError{Field: "vehicle_type", Message: "must be one of truck, van, bus, other"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateVehicleRequest struct {
	ID          string
	PlateNumber *string `json:"plate_number,omitempty"`
	VehicleType *string `json:"vehicle_type,omitempty"`
	Capacity    *string `json:"capacity,omitempty"`
	DriverName  *string `json:"driver_name,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateVehicleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PlateNumber != nil && !validator.IsValidPlateNumber(*r.PlateNumber) {
		errs = append(errs, validator.ValidationError{Field: "plate_number", Message: "is not a valid plate number"})
	}
	if r.VehicleType != nil && !validator.IsInSlice(*r.VehicleType, VehicleTypes) {
		errs = append(errs, validator.ValidationError{Field: "vehicle_type", Message: "must be one of truck, van, bus, other"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
