package fleet

import "time"

type VehicleType string

const (
	VehicleTypeTruck VehicleType = "truck"
	VehicleTypeVan   VehicleType = "van"
	VehicleTypeBus   VehicleType = "bus"
	VehicleTypeOther VehicleType = "other"
)

var VehicleTypes = []string{
	string(VehicleTypeTruck), string(VehicleTypeVan),
	string(VehicleTypeBus), string(VehicleTypeOther),
}

// Vehicle represents a lorry used for deliveries. The driver is plain
// reference text; drivers are not paid through the payroll engine.
type Vehicle struct {
	ID          string
	PlateNumber string
	VehicleType VehicleType
	Capacity    *string
	DriverName  *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
