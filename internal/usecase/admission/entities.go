package admission

import (
	"time"

	"visitor-admission/internal/domain/approval"
	"visitor-admission/internal/domain/visitor"
)

type Action int

const (
	ActionNoop Action = iota
	ActionApproveExisting
	ActionApproveNew
)

func (a Action) String() string {
	switch a {
	case ActionApproveExisting:
		return "approve_existing"
	case ActionApproveNew:
		return "approve_new"
	default:
		return "noop"
	}
}

// Outcome of one evaluation. Approval is the latest record after the decision, nil when the visitor has none.
type Outcome struct {
	Action   Action
	Approval *approval.Approval
}

type ApprovalView struct {
	ID          uint64     `json:"id"`
	EmployeeID  uint64     `json:"employee_id"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	DecisionAt  *time.Time `json:"decision_at,omitempty"`
}

type VisitorStatusView struct {
	ID               uint64        `json:"id"`
	FullName         string        `json:"full_name"`
	Contact          string        `json:"contact"`
	Company          *string       `json:"company,omitempty"`
	Purpose          string        `json:"purpose"`
	HostEmployeeName string        `json:"host_employee_name"`
	HostDepartment   string        `json:"host_department"`
	PhotoURL         *string       `json:"photo_url,omitempty"`
	BadgeURL         *string       `json:"badge_url,omitempty"`
	CheckIn          time.Time     `json:"check_in"`
	CheckOut         *time.Time    `json:"check_out,omitempty"`
	Status           string        `json:"status"`
	Approval         *ApprovalView `json:"approval,omitempty"`
}

// StatusNone is reported for a visitor without any ledger entry.
const StatusNone = "NONE"

func toView(v *visitor.Visitor, latest *approval.Approval) *VisitorStatusView {
	out := &VisitorStatusView{
		ID:               v.ID,
		FullName:         v.FullName,
		Contact:          v.Contact,
		Company:          v.Company,
		Purpose:          v.Purpose,
		HostEmployeeName: v.HostEmployeeName,
		HostDepartment:   v.HostDepartment,
		PhotoURL:         v.PhotoURL,
		BadgeURL:         v.BadgeURL,
		CheckIn:          v.CheckIn.UTC(),
		CheckOut:         v.CheckOut,
		Status:           StatusNone,
	}
	if latest != nil {
		out.Status = string(latest.Status)
		out.Approval = &ApprovalView{
			ID:          latest.ID,
			EmployeeID:  latest.EmployeeID,
			Status:      string(latest.Status),
			RequestedAt: latest.RequestedAt.UTC(),
			DecisionAt:  latest.DecisionAt,
		}
	}
	return out
}
