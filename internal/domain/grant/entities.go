package grant

import (
	"errors"
	"time"
)

const DefaultMaxVisitsPerDay = 5

var (
	ErrInvalidWindow = errors.New("valid_from must not be after valid_to")
	ErrInvalidCap    = errors.New("max_visits_per_day must be at least 1")
	// Scheduling employee is not the visitor's host, or acts for someone else.
	ErrForbidden = errors.New("employee may not pre-approve this visitor")
)

// Table: preapprovals
type Grant struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	VisitorID       uint64    `gorm:"column:visitor_id;not null;index"`
	EmployeeID      uint64    `gorm:"column:employee_id;not null;index"`
	ValidFrom       time.Time `gorm:"column:valid_from;precision:6;not null"`
	ValidTo         time.Time `gorm:"column:valid_to;precision:6;not null"`
	MaxVisitsPerDay int       `gorm:"column:max_visits_per_day;not null;default:5"`
	CreatedAt       time.Time `gorm:"column:created_at;precision:6;autoCreateTime"`
}

func (Grant) TableName() string { return "preapprovals" }

// New validates and normalizes a window to UTC. maxPerDay == 0 means the default cap.
func New(visitorID, employeeID uint64, from, to time.Time, maxPerDay int) (*Grant, error) {
	from, to = from.UTC(), to.UTC()
	if from.After(to) {
		return nil, ErrInvalidWindow
	}
	if maxPerDay == 0 {
		maxPerDay = DefaultMaxVisitsPerDay
	}
	if maxPerDay < 1 {
		return nil, ErrInvalidCap
	}
	return &Grant{
		VisitorID:       visitorID,
		EmployeeID:      employeeID,
		ValidFrom:       from,
		ValidTo:         to,
		MaxVisitsPerDay: maxPerDay,
	}, nil
}

// IsActive reports valid_from <= now <= valid_to, inclusive at both ends.
func (g *Grant) IsActive(now time.Time) bool {
	now = now.UTC()
	return !now.Before(g.ValidFrom.UTC()) && !now.After(g.ValidTo.UTC())
}

// PickActive returns the active grant with the highest daily cap, or nil.
// Equal caps resolve to the earliest grant.
func PickActive(gs []Grant, now time.Time) *Grant {
	var best *Grant
	for i := range gs {
		g := &gs[i]
		if !g.IsActive(now) {
			continue
		}
		if best == nil || g.MaxVisitsPerDay > best.MaxVisitsPerDay ||
			(g.MaxVisitsPerDay == best.MaxVisitsPerDay && g.ID < best.ID) {
			best = g
		}
	}
	return best
}
