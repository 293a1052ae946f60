package approvalmock

import (
	"context"
	"time"

	domain "visitor-admission/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Lookups with no func set return context.Canceled; writes are no-ops.
type Repo struct {
	CreateFn                func(ctx context.Context, a *domain.Approval) error
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.Approval, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.Approval, error)
	GetLatestByVisitorIDFn  func(ctx context.Context, visitorID uint64) (*domain.Approval, error)
	ListByEmployeeFn        func(ctx context.Context, employeeID uint64, status *domain.Status) ([]domain.Approval, error)
	CountApprovedBetweenFn  func(ctx context.Context, visitorID uint64, from, to time.Time) (int64, error)
	TransitionFromPendingFn func(ctx context.Context, id uint64, to domain.Status, at time.Time) (bool, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Approval, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Approval, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetLatestByVisitorID(ctx context.Context, visitorID uint64) (*domain.Approval, error) {
	if m.GetLatestByVisitorIDFn != nil {
		return m.GetLatestByVisitorIDFn(ctx, visitorID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByEmployee(ctx context.Context, employeeID uint64, status *domain.Status) ([]domain.Approval, error) {
	if m.ListByEmployeeFn != nil {
		return m.ListByEmployeeFn(ctx, employeeID, status)
	}
	return nil, context.Canceled
}

func (m *Repo) CountApprovedBetween(ctx context.Context, visitorID uint64, from, to time.Time) (int64, error) {
	if m.CountApprovedBetweenFn != nil {
		return m.CountApprovedBetweenFn(ctx, visitorID, from, to)
	}
	return 0, context.Canceled
}

func (m *Repo) TransitionFromPending(ctx context.Context, id uint64, to domain.Status, at time.Time) (bool, error) {
	if m.TransitionFromPendingFn != nil {
		return m.TransitionFromPendingFn(ctx, id, to, at)
	}
	return false, context.Canceled
}
