package mysql

import (
	"context"
	"errors"
	"strings"

	employeeDomain "visitor-admission/internal/domain/employee"

	"gorm.io/gorm"
)

type EmployeeRepository struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository { return &EmployeeRepository{db: db} }

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDomain.Employee) error {
	err := r.db.WithContext(ctx).Create(e).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateEntry(err) {
		return employeeDomain.ErrEmailTaken
	}
	return err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint64) (*employeeDomain.Employee, error) {
	var out employeeDomain.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, employeeErr(err)
	}
	return &out, nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employeeDomain.Employee, error) {
	var out employeeDomain.Employee
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&out).Error
	if err != nil {
		return nil, employeeErr(err)
	}
	return &out, nil
}

func (r *EmployeeRepository) FindByNameAndDepartment(ctx context.Context, name, department string) (*employeeDomain.Employee, error) {
	var out employeeDomain.Employee
	err := r.db.WithContext(ctx).
		Where("LOWER(TRIM(name)) = ? AND LOWER(TRIM(department)) = ?",
			employeeDomain.NormalizeName(name), employeeDomain.NormalizeName(department)).
		Order("id ASC").
		First(&out).Error
	if err != nil {
		return nil, employeeErr(err)
	}
	return &out, nil
}

func employeeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeDomain.ErrNotFound
	}
	return err
}
