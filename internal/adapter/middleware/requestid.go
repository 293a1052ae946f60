package middleware

import (
	"visitor-admission/internal/contextutil"
	"visitor-admission/pkg/id"

	"github.com/labstack/echo/v4"
)

// RequestID echoes X-Request-ID, minting one when absent, and puts it on the request context.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = id.NewRequestID()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			c.SetRequest(req.WithContext(contextutil.WithRequestID(req.Context(), rid)))
			return next(c)
		}
	}
}
