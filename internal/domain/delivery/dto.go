package delivery

import (
	"github.com/shopspring/decimal"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/validator"
)

type CreateDeliveryRequest struct {
	Date               string           `json:"date"` // YYYY-MM-DD
	VehicleID          string           `json:"vehicle_id"`
	Destination        string           `json:"destination"`
	LoadingAmount      decimal.Decimal  `json:"loading_amount"`
	TurnboyPaymentRate *decimal.Decimal `json:"turnboy_payment_rate,omitempty"`
	ItemsCarried       string           `json:"items_carried"`
	Notes              *string          `json:"notes,omitempty"`
	Status             *string          `json:"status,omitempty"`
}

func (r *CreateDeliveryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.VehicleID) {
		errs = append(errs, validator.ValidationError{Field: "vehicle_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Destination) {
		errs = append(errs, validator.ValidationError{Field: "destination", Message: "is required"})
	}
	if r.LoadingAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "loading_amount", Message: "must be non-negative"})
	}
	if r.TurnboyPaymentRate != nil && r.TurnboyPaymentRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "turnboy_payment_rate", Message: "must be non-negative"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of pending, in_progress, completed"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDeliveryRequest struct {
	ID                 string
	Date               *string          `json:"date,omitempty"`
	VehicleID          *string          `json:"vehicle_id,omitempty"`
	Destination        *string          `json:"destination,omitempty"`
	LoadingAmount      *decimal.Decimal `json:"loading_amount,omitempty"`
	TurnboyPaymentRate *decimal.Decimal `json:"turnboy_payment_rate,omitempty"`
	ItemsCarried       *string          `json:"items_carried,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	Status             *string          `json:"status,omitempty"`
}

func (r *UpdateDeliveryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.Destination != nil && validator.IsEmpty(*r.Destination) {
		errs = append(errs, validator.ValidationError{Field: "destination", Message: "must not be empty"})
	}
	if r.LoadingAmount != nil && r.LoadingAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "loading_amount", Message: "must be non-negative"})
	}
	if r.TurnboyPaymentRate != nil && r.TurnboyPaymentRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "turnboy_payment_rate", Message: "must be non-negative"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of pending, in_progress, completed"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignStaffRequest struct {
	DeliveryID    string `json:"delivery_id"`
	StaffID       string `json:"staff_id"`
	Role          string `json:"role"`
	HelpedLoading *bool  `json:"helped_loading,omitempty"`
}

func (r *AssignStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeliveryID) {
		errs = append(errs, validator.ValidationError{Field: "delivery_id", Message: "is required"})
	}
	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Role, staff.Roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'turnboy' or 'loader'"})
	}
	// A dedicated loader always participates in loading.
	if r.Role == string(staff.RoleLoader) && r.HelpedLoading != nil && !*r.HelpedLoading {
		errs = append(errs, validator.ValidationError{Field: "helped_loading", Message: "must be true for loader assignments"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAssignmentRequest struct {
	ID            string
	Role          *string `json:"role,omitempty"`
	HelpedLoading *bool   `json:"helped_loading,omitempty"`
}

func (r *UpdateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Role != nil && !validator.IsInSlice(*r.Role, staff.Roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'turnboy' or 'loader'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListDeliveriesFilter narrows delivery listings for reporting callers.
type ListDeliveriesFilter struct {
	From      *string `json:"from,omitempty"` // YYYY-MM-DD, inclusive
	To        *string `json:"to,omitempty"`   // YYYY-MM-DD, inclusive
	VehicleID *string `json:"vehicle_id,omitempty"`
	Status    *string `json:"status,omitempty"`
}
