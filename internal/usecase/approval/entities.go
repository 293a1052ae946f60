package approval

import (
	"time"

	domainApproval "visitor-admission/internal/domain/approval"
)

type DecisionInput struct {
	ApprovalID uint64
	Status     string // APPROVED | REJECTED, case-insensitive
}

type ApprovalDTO struct {
	ID          uint64     `json:"id"`
	VisitorID   uint64     `json:"visitor_id"`
	EmployeeID  uint64     `json:"employee_id"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	DecisionAt  *time.Time `json:"decision_at,omitempty"`
}

func toDTO(a *domainApproval.Approval) *ApprovalDTO {
	return &ApprovalDTO{
		ID:          a.ID,
		VisitorID:   a.VisitorID,
		EmployeeID:  a.EmployeeID,
		Status:      string(a.Status),
		RequestedAt: a.RequestedAt.UTC(),
		DecisionAt:  a.DecisionAt,
	}
}
