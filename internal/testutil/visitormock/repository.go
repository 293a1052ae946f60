package visitormock

import (
	"context"
	"time"

	domain "visitor-admission/internal/domain/visitor"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, v *domain.Visitor) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Visitor, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Visitor, error)
	RecordBadgeFn      func(ctx context.Context, id uint64, url string, checkIn time.Time) error
	SaveFn             func(ctx context.Context, v *domain.Visitor) error
}

func (m *Repo) Create(ctx context.Context, v *domain.Visitor) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Visitor, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Visitor, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) RecordBadge(ctx context.Context, id uint64, url string, checkIn time.Time) error {
	if m.RecordBadgeFn != nil {
		return m.RecordBadgeFn(ctx, id, url, checkIn)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, v *domain.Visitor) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, v)
	}
	return nil
}
