package http

import (
	"net/http"

	"visitor-admission/internal/adapter/middleware"
	ucGrant "visitor-admission/internal/usecase/grant"

	"github.com/labstack/echo/v4"
)

type GrantHandler struct{ uc *ucGrant.Usecase }

func NewGrantHandler(uc *ucGrant.Usecase) *GrantHandler { return &GrantHandler{uc: uc} }

type createGrantReq struct {
	VisitorID  uint64 `json:"visitor_id"  validate:"required"`
	EmployeeID uint64 `json:"employee_id" validate:"required"`
	// zone-less timestamps are UTC
	ValidFrom       string `json:"valid_from"         validate:"required,rfc3339orNaive"`
	ValidTo         string `json:"valid_to"           validate:"required,rfc3339orNaive"`
	MaxVisitsPerDay *int   `json:"max_visits_per_day" validate:"omitempty,gte=1"`
}

// Create schedules a pre-approval on behalf of the authenticated employee.
func (h *GrantHandler) Create(c echo.Context) error {
	var req createGrantReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	// both parse: the validator already checked them
	from, _ := parseTimestamp(req.ValidFrom)
	to, _ := parseTimestamp(req.ValidTo)

	in := ucGrant.ScheduleInput{
		ActorEmployeeID: middleware.EmployeeID(c),
		VisitorID:       req.VisitorID,
		EmployeeID:      req.EmployeeID,
		ValidFrom:       from,
		ValidTo:         to,
	}
	if req.MaxVisitsPerDay != nil {
		in.MaxVisitsPerDay = *req.MaxVisitsPerDay
	}
	dto, err := h.uc.Schedule(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *GrantHandler) List(c echo.Context) error {
	employeeID, ok := pathID(c, "employee_id")
	if !ok {
		return badPathID(c, "employee_id")
	}
	out, err := h.uc.List(c.Request().Context(), employeeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
