package fleet

import "context"

type VehicleRepository interface {
	Create(ctx context.Context, v Vehicle) (Vehicle, error)
	GetByID(ctx context.Context, id string) (Vehicle, error)
	List(ctx context.Context, activeOnly bool) ([]Vehicle, error)
	Update(ctx context.Context, v Vehicle) (Vehicle, error)
	Deactivate(ctx context.Context, id string) error
}
