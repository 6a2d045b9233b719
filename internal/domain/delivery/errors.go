package delivery

import "errors"

var (
	ErrDeliveryNotFound   = errors.New("delivery not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrAssignmentExists - a staff member can hold a role at most once per delivery.
	ErrAssignmentExists = errors.New("staff member already assigned this role on the delivery")
)
