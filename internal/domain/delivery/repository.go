package delivery

import "context"

type DeliveryRepository interface {
	Create(ctx context.Context, d Delivery) (Delivery, error)
	GetByID(ctx context.Context, id string) (Delivery, error)
	// GetByIDForUpdate locks the delivery row for the duration of the
	// surrounding transaction, serializing concurrent recomputes.
	GetByIDForUpdate(ctx context.Context, id string) (Delivery, error)
	List(ctx context.Context, filter ListDeliveriesFilter) ([]Delivery, error)
	Update(ctx context.Context, d Delivery) (Delivery, error)
	// Delete removes the delivery; assignments and ledger lines cascade.
	Delete(ctx context.Context, id string) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	GetByID(ctx context.Context, id string) (Assignment, error)
	ListByDelivery(ctx context.Context, deliveryID string) ([]Assignment, error)
	Update(ctx context.Context, a Assignment) (Assignment, error)
	Delete(ctx context.Context, id string) error
}
