package fleet

import "errors"

var (
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrPlateNumberExists = errors.New("plate number already exists")
)
