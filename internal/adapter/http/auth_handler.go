package http

import (
	"fmt"
	"net/http"

	"visitor-admission/internal/adapter/middleware"
	ucAuth "visitor-admission/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *ucAuth.Usecase }

func NewAuthHandler(uc *ucAuth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	tok, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tok)
}

func (h *AuthHandler) Dashboard(c echo.Context) error {
	emp, err := h.uc.Profile(c.Request().Context(), middleware.EmployeeID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"msg":      fmt.Sprintf("Hello %s (employee id: %d)", emp.Email, emp.ID),
		"employee": emp,
	})
}
