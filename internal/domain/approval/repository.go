package approval

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Approval) error
	GetByID(ctx context.Context, id uint64) (*Approval, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Approval, error)

	// Latest by requested_at, ties broken by id. ErrNotFound when the visitor has none.
	GetLatestByVisitorID(ctx context.Context, visitorID uint64) (*Approval, error)

	// status == nil lists every status
	ListByEmployee(ctx context.Context, employeeID uint64, status *Status) ([]Approval, error)

	// APPROVED records with decision_at in [from, to)
	CountApprovedBetween(ctx context.Context, visitorID uint64, from, to time.Time) (int64, error)

	// Guarded update; reports false when the record was no longer PENDING.
	TransitionFromPending(ctx context.Context, id uint64, to Status, at time.Time) (bool, error)
}
