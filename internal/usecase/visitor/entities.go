package visitor

import (
	"time"

	domainVisitor "visitor-admission/internal/domain/visitor"
)

type RegisterInput struct {
	FullName         string
	Contact          string
	Company          *string
	Purpose          string
	HostEmployeeName string
	HostDepartment   string
	PhotoBase64      string // optional; raw base64 or a data: URI
}

type VisitorDTO struct {
	ID               uint64     `json:"id"`
	FullName         string     `json:"full_name"`
	Contact          string     `json:"contact"`
	Company          *string    `json:"company,omitempty"`
	Purpose          string     `json:"purpose"`
	HostEmployeeName string     `json:"host_employee_name"`
	HostDepartment   string     `json:"host_department"`
	PhotoURL         *string    `json:"photo_url,omitempty"`
	BadgeURL         *string    `json:"badge_url,omitempty"`
	CheckIn          time.Time  `json:"check_in"`
	CheckOut         *time.Time `json:"check_out,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	ApprovalID       uint64     `json:"approval_id,omitempty"`
}

func toDTO(v *domainVisitor.Visitor) *VisitorDTO {
	return &VisitorDTO{
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
		CreatedAt:        v.CreatedAt.UTC(),
	}
}
