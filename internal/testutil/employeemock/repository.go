package employeemock

import (
	"context"

	domain "visitor-admission/internal/domain/employee"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, e *domain.Employee) error
	GetByIDFn                 func(ctx context.Context, id uint64) (*domain.Employee, error)
	GetByEmailFn              func(ctx context.Context, email string) (*domain.Employee, error)
	FindByNameAndDepartmentFn func(ctx context.Context, name, department string) (*domain.Employee, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Employee) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Employee, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) FindByNameAndDepartment(ctx context.Context, name, department string) (*domain.Employee, error) {
	if m.FindByNameAndDepartmentFn != nil {
		return m.FindByNameAndDepartmentFn(ctx, name, department)
	}
	return nil, context.Canceled
}
