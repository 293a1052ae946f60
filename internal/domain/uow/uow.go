package uow

import (
	"context"

	"visitor-admission/internal/domain/approval"
	"visitor-admission/internal/domain/employee"
	"visitor-admission/internal/domain/grant"
	"visitor-admission/internal/domain/visitor"
)

type Repos struct {
	Visitors  visitor.Repository
	Employees employee.Repository
	Approvals approval.Repository
	Grants    grant.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the visitor row first, then pass it in; every admission write for a visitor goes through here
	WithinVisitorTx(ctx context.Context, visitorID uint64, fn func(r Repos, v *visitor.Visitor) error) error
}
