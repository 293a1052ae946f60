package grant

import "context"

type Repository interface {
	Create(ctx context.Context, g *Grant) error
	ListByEmployee(ctx context.Context, employeeID uint64) ([]Grant, error)
	ListByVisitor(ctx context.Context, visitorID uint64) ([]Grant, error)
}
