package mysql

import (
	"context"
	"errors"
	"time"

	approvalDomain "visitor-admission/internal/domain/approval"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) GetByID(ctx context.Context, id uint64) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, approvalErr(err)
	}
	return &out, nil
}

func (r *ApprovalRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, approvalErr(err)
	}
	return &out, nil
}

func (r *ApprovalRepository) GetLatestByVisitorID(ctx context.Context, visitorID uint64) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	err := r.db.WithContext(ctx).
		Where("visitor_id = ?", visitorID).
		Order("requested_at DESC, id DESC").
		First(&out).Error
	if err != nil {
		return nil, approvalErr(err)
	}
	return &out, nil
}

func (r *ApprovalRepository) ListByEmployee(ctx context.Context, employeeID uint64, status *approvalDomain.Status) ([]approvalDomain.Approval, error) {
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var out []approvalDomain.Approval
	err := q.Order("requested_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *ApprovalRepository) CountApprovedBetween(ctx context.Context, visitorID uint64, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&approvalDomain.Approval{}).
		Where("visitor_id = ? AND status = ? AND decision_at >= ? AND decision_at < ?",
			visitorID, approvalDomain.StatusApproved, from.UTC(), to.UTC()).
		Count(&n).Error
	return n, err
}

func (r *ApprovalRepository) TransitionFromPending(ctx context.Context, id uint64, to approvalDomain.Status, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&approvalDomain.Approval{}).
		Where("id = ? AND status = ?", id, approvalDomain.StatusPending).
		Updates(map[string]any{"status": to, "decision_at": at.UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func approvalErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return approvalDomain.ErrNotFound
	}
	return err
}
