package http

import (
	"context"
	"errors"
	"net/http"

	"visitor-admission/internal/domain/approval"
	"visitor-admission/internal/domain/employee"
	"visitor-admission/internal/domain/grant"
	"visitor-admission/internal/domain/visitor"
	ucVisitor "visitor-admission/internal/usecase/visitor"

	"github.com/labstack/echo/v4"
)

// httpStatus maps domain sentinels onto response codes. Order matters:
// ErrInvalidStatus wraps ErrInvalidTransition.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, visitor.ErrNotFound),
		errors.Is(err, approval.ErrNotFound),
		errors.Is(err, employee.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, employee.ErrHostNotFound),
		errors.Is(err, visitor.ErrAlreadyCheckedOut),
		errors.Is(err, ucVisitor.ErrInvalidPhoto):
		return http.StatusBadRequest
	case errors.Is(err, approval.ErrInvalidStatus),
		errors.Is(err, grant.ErrInvalidWindow),
		errors.Is(err, grant.ErrInvalidCap):
		return http.StatusUnprocessableEntity
	case errors.Is(err, approval.ErrInvalidTransition),
		errors.Is(err, employee.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, grant.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, employee.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, approval.ErrConcurrencyConflict),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

const msgRetry = "temporarily unavailable, try again"

// writeError answers 4xx failures directly. 5xx failures go back to echo so the
// request logger records the cause and ErrorHandler renders a fixed message.
func writeError(c echo.Context, err error) error {
	switch code := httpStatus(err); {
	case code == http.StatusInternalServerError:
		return err
	case code >= http.StatusInternalServerError:
		return echo.NewHTTPError(code, msgRetry).SetInternal(err)
	default:
		return c.JSON(code, ErrorResponse{Error: err.Error()})
	}
}

// ErrorHandler renders errors that escape handlers and middleware as ErrorResponse.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case map[string]any:
			if s, ok := m["error"].(string); ok {
				msg = s
			}
		default:
			msg = http.StatusText(code)
		}
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, ErrorResponse{Error: msg})
}
