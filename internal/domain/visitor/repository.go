package visitor

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v *Visitor) error
	GetByID(ctx context.Context, id uint64) (*Visitor, error)
	// Row lock held until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Visitor, error)
	// Stores the badge URL and stamps check-in at the same moment.
	RecordBadge(ctx context.Context, id uint64, url string, checkIn time.Time) error
	Save(ctx context.Context, v *Visitor) error
}
