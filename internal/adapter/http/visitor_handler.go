package http

import (
	"net/http"

	"visitor-admission/internal/usecase/admission"
	ucVisitor "visitor-admission/internal/usecase/visitor"

	"github.com/labstack/echo/v4"
)

type VisitorHandler struct {
	visitors *ucVisitor.Usecase
	engine   *admission.Engine
}

func NewVisitorHandler(visitors *ucVisitor.Usecase, engine *admission.Engine) *VisitorHandler {
	return &VisitorHandler{visitors: visitors, engine: engine}
}

type registerVisitorReq struct {
	FullName         string  `json:"full_name"          validate:"required,max=255"`
	Contact          string  `json:"contact"            validate:"required,max=255"`
	Company          *string `json:"company"            validate:"omitempty,max=255"`
	Purpose          string  `json:"purpose"            validate:"required"`
	HostEmployeeName string  `json:"host_employee_name" validate:"required,max=255"`
	HostDepartment   string  `json:"host_department"    validate:"required,max=255"`
	// raw base64 or a data: URI
	PhotoBase64 string `json:"photo_base64"`
}

func (h *VisitorHandler) Register(c echo.Context) error {
	var req registerVisitorReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.visitors.Register(c.Request().Context(), ucVisitor.RegisterInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// GetStatus runs admission for the visitor before answering.
func (h *VisitorHandler) GetStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badPathID(c, "id")
	}
	view, err := h.engine.EvaluateAndGetStatus(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *VisitorHandler) CheckOut(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badPathID(c, "id")
	}
	dto, err := h.visitors.CheckOut(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
