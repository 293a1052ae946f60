package grant

import (
	"time"

	domainGrant "visitor-admission/internal/domain/grant"
)

type ScheduleInput struct {
	ActorEmployeeID uint64 // authenticated employee
	VisitorID       uint64
	EmployeeID      uint64
	ValidFrom       time.Time
	ValidTo         time.Time
	MaxVisitsPerDay int // 0 = default
}

type GrantDTO struct {
	ID              uint64    `json:"id"`
	VisitorID       uint64    `json:"visitor_id"`
	EmployeeID      uint64    `json:"employee_id"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidTo         time.Time `json:"valid_to"`
	MaxVisitsPerDay int       `json:"max_visits_per_day"`
	CreatedAt       time.Time `json:"created_at"`
}

func toDTO(g *domainGrant.Grant) GrantDTO {
	return GrantDTO{
		ID:              g.ID,
		VisitorID:       g.VisitorID,
		EmployeeID:      g.EmployeeID,
		ValidFrom:       g.ValidFrom.UTC(),
		ValidTo:         g.ValidTo.UTC(),
		MaxVisitsPerDay: g.MaxVisitsPerDay,
		CreatedAt:       g.CreatedAt.UTC(),
	}
}
