package grantmock

import (
	"context"

	domain "visitor-admission/internal/domain/grant"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, g *domain.Grant) error
	ListByEmployeeFn func(ctx context.Context, employeeID uint64) ([]domain.Grant, error)
	ListByVisitorFn  func(ctx context.Context, visitorID uint64) ([]domain.Grant, error)
}

func (m *Repo) Create(ctx context.Context, g *domain.Grant) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	return nil
}

func (m *Repo) ListByEmployee(ctx context.Context, employeeID uint64) ([]domain.Grant, error) {
	if m.ListByEmployeeFn != nil {
		return m.ListByEmployeeFn(ctx, employeeID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByVisitor(ctx context.Context, visitorID uint64) ([]domain.Grant, error) {
	if m.ListByVisitorFn != nil {
		return m.ListByVisitorFn(ctx, visitorID)
	}
	return nil, context.Canceled
}
