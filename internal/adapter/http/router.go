package http

import (
	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health    *Handler
	Visitors  *VisitorHandler
	Approvals *ApprovalHandler
	Grants    *GrantHandler
	Auth      *AuthHandler
	Badges    *BadgeHandler
}

// RouteMiddleware plugs cross-cutting concerns into RegisterRoutes; nil entries are skipped.
type RouteMiddleware struct {
	RequireAuth echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
	StatusLimit echo.MiddlewareFunc
}

func use(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(mws))
	for _, m := range mws {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// RegisterRoutes mounts the public visitor surface and the employee surface behind RequireAuth.
// State-changing routes go through Idempotency after authentication, so employee calls are keyed by employee.
func RegisterRoutes(e *echo.Echo, h Handlers, mw RouteMiddleware) {
	e.GET("/health", h.Health.Health)

	e.POST("/auth/login", h.Auth.Login)

	visitors := e.Group("/visitors")
	visitors.POST("/register", h.Visitors.Register, use(mw.Idempotency)...)
	visitors.GET("/:id", h.Visitors.GetStatus, use(mw.StatusLimit)...)
	visitors.PATCH("/:id/checkout", h.Visitors.CheckOut, use(mw.Idempotency)...)

	e.GET("/badges/verify", h.Badges.Verify, use(mw.StatusLimit)...)

	authed := use(mw.RequireAuth)

	approvals := e.Group("/approvals", authed...)
	approvals.GET("/:employee_id", h.Approvals.List)
	approvals.POST("/:approval_id/action", h.Approvals.Decide, use(mw.Idempotency)...)

	grants := e.Group("/preapprovals", authed...)
	grants.POST("", h.Grants.Create, use(mw.Idempotency)...)
	grants.GET("/:employee_id", h.Grants.List)

	e.GET("/employee/dashboard", h.Auth.Dashboard, authed...)
}
