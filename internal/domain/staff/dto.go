package staff

import (
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/validator"
)

type CreateStaffRequest struct {
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Role        string  `json:"role"` // "turnboy" or "loader"
	IsLoader    *bool   `json:"is_loader,omitempty"`
	DateJoined  *string `json:"date_joined,omitempty"` // YYYY-MM-DD
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Role, Roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'turnboy' or 'loader'"})
	}
	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "is not a valid phone number"})
	}
	if r.DateJoined != nil {
		if _, ok := validator.IsValidDate(*r.DateJoined); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_joined", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStaffRequest struct {
	ID          string
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Role        *string `json:"role,omitempty"`
	IsLoader    *bool   `json:"is_loader,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, Roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'turnboy' or 'loader'"})
	}
	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "is not a valid phone number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
