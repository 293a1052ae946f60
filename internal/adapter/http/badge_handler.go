package http

import (
	"net/http"
	"strings"

	"visitor-admission/internal/usecase/admission"

	"github.com/labstack/echo/v4"
)

type BadgeParser interface {
	ParseBadge(raw string) (uint64, error)
}

// BadgeHandler serves the security desk scanning a badge QR code.
type BadgeHandler struct {
	tokens BadgeParser
	engine *admission.Engine
}

func NewBadgeHandler(tokens BadgeParser, engine *admission.Engine) *BadgeHandler {
	return &BadgeHandler{tokens: tokens, engine: engine}
}

func (h *BadgeHandler) Verify(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("token"))
	if raw == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing token query param"})
	}
	visitorID, err := h.tokens.ParseBadge(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid badge token"})
	}
	view, err := h.engine.EvaluateAndGetStatus(c.Request().Context(), visitorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
