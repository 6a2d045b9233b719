package delivery

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
)

// Status enum
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var Statuses = []string{string(StatusPending), string(StatusInProgress), string(StatusCompleted)}

// Delivery is a single trip. It owns its assignment set: deleting a delivery
// removes the assignments and the ledger lines derived from them.
type Delivery struct {
	ID          string
	Date        time.Time
	VehicleID   string
	Destination string
	// Total amount paid out for this delivery's loading work, split equally
	// among everyone who helped loading.
	LoadingAmount decimal.Decimal
	// Per-delivery base rate for turnboys; adjusted by dispatch for distance.
	TurnboyPaymentRate decimal.Decimal
	ItemsCarried       string
	Notes              *string
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	PlateNumber *string
}

// Assignment records that a staff member worked a delivery in a given role.
type Assignment struct {
	ID            string
	DeliveryID    string
	StaffID       string
	Role          staff.Role
	HelpedLoading bool
	CreatedAt     time.Time

	// Joined fields
	StaffName *string
}
