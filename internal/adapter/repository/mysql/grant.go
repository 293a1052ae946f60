package mysql

import (
	"context"

	grantDomain "visitor-admission/internal/domain/grant"

	"gorm.io/gorm"
)

type GrantRepository struct{ db *gorm.DB }

func NewGrantRepository(db *gorm.DB) *GrantRepository { return &GrantRepository{db: db} }

func (r *GrantRepository) Create(ctx context.Context, g *grantDomain.Grant) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GrantRepository) ListByEmployee(ctx context.Context, employeeID uint64) ([]grantDomain.Grant, error) {
	var out []grantDomain.Grant
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("valid_from DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *GrantRepository) ListByVisitor(ctx context.Context, visitorID uint64) ([]grantDomain.Grant, error) {
	var out []grantDomain.Grant
	err := r.db.WithContext(ctx).
		Where("visitor_id = ?", visitorID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
