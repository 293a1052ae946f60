package approval

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("approval not found")
	ErrInvalidTransition = errors.New("invalid approval transition")
	// ErrInvalidStatus is an ErrInvalidTransition raised for status values outside the closed set.
	ErrInvalidStatus       = fmt.Errorf("%w: unknown status", ErrInvalidTransition)
	ErrConcurrencyConflict = errors.New("concurrent approval update")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus maps external input onto the closed status set.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

func (s Status) IsTerminal() bool { return s == StatusApproved || s == StatusRejected }

// Table: approvals
type Approval struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	VisitorID   uint64     `gorm:"column:visitor_id;not null;index:idx_approvals_visitor_requested,priority:1"`
	EmployeeID  uint64     `gorm:"column:employee_id;not null;index"`
	Status      Status     `gorm:"column:status;type:varchar(16);not null;default:'PENDING';index"`
	RequestedAt time.Time  `gorm:"column:requested_at;precision:6;not null;index:idx_approvals_visitor_requested,priority:2"`
	DecisionAt  *time.Time `gorm:"column:decision_at;precision:6"`
}

func (Approval) TableName() string { return "approvals" }

func NewPending(visitorID, employeeID uint64, at time.Time) *Approval {
	return &Approval{
		VisitorID:   visitorID,
		EmployeeID:  employeeID,
		Status:      StatusPending,
		RequestedAt: at.UTC(),
	}
}

// Decide moves a PENDING record to a terminal status and stamps decision_at.
func (a *Approval) Decide(to Status, at time.Time) error {
	if !to.IsTerminal() {
		return fmt.Errorf("%w: target %s is not a decision", ErrInvalidTransition, to)
	}
	if a.Status != StatusPending {
		return fmt.Errorf("%w: approval %d is %s", ErrInvalidTransition, a.ID, a.Status)
	}
	at = at.UTC()
	a.Status = to
	a.DecisionAt = &at
	return nil
}
