package http

import (
	"net/http"

	ucApproval "visitor-admission/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *ucApproval.Usecase }

func NewApprovalHandler(uc *ucApproval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type approvalActionReq struct {
	Status string `json:"status" validate:"required,decision"`
}

// List returns a host's ledger entries, optionally filtered by ?status=.
func (h *ApprovalHandler) List(c echo.Context) error {
	employeeID, ok := pathID(c, "employee_id")
	if !ok {
		return badPathID(c, "employee_id")
	}
	out, err := h.uc.ListForEmployee(c.Request().Context(), employeeID, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) Decide(c echo.Context) error {
	approvalID, ok := pathID(c, "approval_id")
	if !ok {
		return badPathID(c, "approval_id")
	}
	var req approvalActionReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.RecordManualDecision(c.Request().Context(), ucApproval.DecisionInput{
		ApprovalID: approvalID,
		Status:     req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
