package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id uint64) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	// Case-insensitive, whitespace-trimmed match on both fields.
	FindByNameAndDepartment(ctx context.Context, name, department string) (*Employee, error)
}
