package middleware

import (
	"net/http"
	"strings"

	"visitor-admission/internal/infrastructure/token"

	"github.com/labstack/echo/v4"
)

// Keys set on echo.Context by RequireAuth.
const (
	CtxEmployeeID = "employee_id"
	CtxEmail      = "email"
)

type AccessParser interface {
	ParseAccess(raw string) (*token.Claims, error)
}

func extractBearer(c echo.Context) (string, error) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "missing authorization header"})
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "invalid authorization header"})
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAuth validates the employee bearer token and exposes its claims to handlers.
func RequireAuth(tokens AccessParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := extractBearer(c)
			if err != nil {
				return err
			}
			claims, err := tokens.ParseAccess(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "invalid token"})
			}
			c.Set(CtxEmployeeID, claims.EmployeeID)
			c.Set(CtxEmail, claims.Subject)
			return next(c)
		}
	}
}

// EmployeeID returns the authenticated employee, zero when RequireAuth did not run.
func EmployeeID(c echo.Context) uint64 {
	id, _ := c.Get(CtxEmployeeID).(uint64)
	return id
}
