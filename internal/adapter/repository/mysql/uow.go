package mysql

import (
	"context"

	"visitor-admission/internal/domain/uow"
	"visitor-admission/internal/domain/visitor"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Visitors:  &VisitorRepository{db: tx},
		Employees: &EmployeeRepository{db: tx},
		Approvals: &ApprovalRepository{db: tx},
		Grants:    &GrantRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
	return txErr(err)
}

func (u *GormUoW) WithinVisitorTx(ctx context.Context, visitorID uint64, fn func(r uow.Repos, v *visitor.Visitor) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock order is always visitor, then approval
		v, err := r.Visitors.GetByIDForUpdate(ctx, visitorID)
		if err != nil {
			return err
		}
		return fn(r, v)
	})
	return txErr(err)
}
