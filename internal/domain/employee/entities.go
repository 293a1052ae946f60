package employee

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("employee not found")
	// Registration names a host that does not resolve to an employee.
	ErrHostNotFound       = errors.New("host employee not found")
	ErrEmailTaken         = errors.New("employee email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Table: employees
type Employee struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;size:255;not null;index"`
	Department   string    `gorm:"column:department;size:255;not null"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex:ux_employees_email"`
	PasswordHash string    `gorm:"column:password;size:255;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;precision:6;autoCreateTime"`
}

func (Employee) TableName() string { return "employees" }

// NormalizeName is the comparison form used for host matching.
func NormalizeName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (e *Employee) IsNamed(name string) bool { return NormalizeName(e.Name) == NormalizeName(name) }
