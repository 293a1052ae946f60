package uowmock

import (
	"context"
	"errors"

	"visitor-admission/internal/domain/uow"
	"visitor-admission/internal/domain/visitor"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinVisitorTxFn func(ctx context.Context, visitorID uint64, fn func(r uow.Repos, v *visitor.Visitor) error) error
}

// Passthrough runs every transaction body directly against repos; v is handed to visitor-locked bodies.
func Passthrough(repos uow.Repos, v *visitor.Visitor) *UoW {
	return New().
		WithWithinTx(func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) }).
		WithWithinVisitorTx(func(_ context.Context, _ uint64, fn func(uow.Repos, *visitor.Visitor) error) error {
			return fn(repos, v)
		})
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinVisitorTx(fn func(context.Context, uint64, func(uow.Repos, *visitor.Visitor) error) error) *UoW {
	m.WithinVisitorTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinVisitorTx(ctx context.Context, visitorID uint64, fn func(r uow.Repos, v *visitor.Visitor) error) error {
	if m.WithinVisitorTxFn != nil {
		return m.WithinVisitorTxFn(ctx, visitorID, fn)
	}
	return errUnimplemented
}
