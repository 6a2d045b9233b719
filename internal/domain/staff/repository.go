package staff

import "context"

type StaffRepository interface {
	Create(ctx context.Context, s Staff) (Staff, error)
	GetByID(ctx context.Context, id string) (Staff, error)
	GetByName(ctx context.Context, name string) (Staff, error)
	List(ctx context.Context, activeOnly bool) ([]Staff, error)
	Update(ctx context.Context, s Staff) (Staff, error)
	Deactivate(ctx context.Context, id string) error
}
