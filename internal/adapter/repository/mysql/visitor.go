package mysql

import (
	"context"
	"errors"
	"time"

	visitorDomain "visitor-admission/internal/domain/visitor"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisitorRepository struct{ db *gorm.DB }

func NewVisitorRepository(db *gorm.DB) *VisitorRepository { return &VisitorRepository{db: db} }

func (r *VisitorRepository) Create(ctx context.Context, v *visitorDomain.Visitor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VisitorRepository) GetByID(ctx context.Context, id uint64) (*visitorDomain.Visitor, error) {
	var out visitorDomain.Visitor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, visitorErr(err)
	}
	return &out, nil
}

// SELECT ... FOR UPDATE; sqlite drops the locking clause and relies on its single writer.
func (r *VisitorRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*visitorDomain.Visitor, error) {
	var out visitorDomain.Visitor
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, visitorErr(err)
	}
	return &out, nil
}

func (r *VisitorRepository) RecordBadge(ctx context.Context, id uint64, url string, checkIn time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&visitorDomain.Visitor{}).
		Where("id = ?", id).
		Updates(map[string]any{"badge_url": url, "check_in": checkIn.UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return visitorDomain.ErrNotFound
	}
	return nil
}

func (r *VisitorRepository) Save(ctx context.Context, v *visitorDomain.Visitor) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func visitorErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return visitorDomain.ErrNotFound
	}
	return err
}
