package visitor

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("visitor not found")
	ErrAlreadyCheckedOut = errors.New("visitor already checked out")
)

// Table: visitors
type Visitor struct {
	ID               uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	FullName         string     `gorm:"column:full_name;size:255;not null"`
	Contact          string     `gorm:"column:contact;size:255;not null"`
	Company          *string    `gorm:"column:company;size:255"`
	Purpose          string     `gorm:"column:purpose;type:text;not null"`
	HostEmployeeName string     `gorm:"column:host_employee_name;size:255;not null"`
	HostDepartment   string     `gorm:"column:host_department;size:255;not null"`
	PhotoURL         *string    `gorm:"column:photo_url;type:text"`
	BadgeURL         *string    `gorm:"column:badge_url;type:text"`
	CheckIn          time.Time  `gorm:"column:check_in;precision:6;not null"`
	CheckOut         *time.Time `gorm:"column:check_out;precision:6"`
	CreatedAt        time.Time  `gorm:"column:created_at;precision:6;autoCreateTime"`
}

func (Visitor) TableName() string { return "visitors" }

func (v *Visitor) HasBadge() bool { return v.BadgeURL != nil && *v.BadgeURL != "" }

// CheckOutAt stamps check_out once; a visitor never checks out twice.
func (v *Visitor) CheckOutAt(at time.Time) error {
	if v.CheckOut != nil {
		return ErrAlreadyCheckedOut
	}
	at = at.UTC()
	v.CheckOut = &at
	return nil
}
