package grant

import (
	"context"
	"errors"

	"visitor-admission/internal/contextutil"
	"visitor-admission/internal/domain/employee"
	domainGrant "visitor-admission/internal/domain/grant"
	"visitor-admission/internal/domain/visitor"

	"go.uber.org/zap"
)

type Usecase struct {
	grants    domainGrant.Repository
	visitors  visitor.Repository
	employees employee.Repository
	log       *zap.Logger
}

func NewUsecase(grants domainGrant.Repository, visitors visitor.Repository, employees employee.Repository, log *zap.Logger) *Usecase {
	return &Usecase{grants: grants, visitors: visitors, employees: employees, log: log.Named("grant")}
}

// Schedule records a pre-approval window. Only the visitor's host may grant one, and only for themself.
func (u *Usecase) Schedule(ctx context.Context, in ScheduleInput) (*GrantDTO, error) {
	if in.ActorEmployeeID != in.EmployeeID {
		return nil, domainGrant.ErrForbidden
	}

	v, err := u.visitors.GetByID(ctx, in.VisitorID)
	if err != nil {
		return nil, err
	}

	emp, err := u.employees.GetByID(ctx, in.EmployeeID)
	switch {
	case errors.Is(err, employee.ErrNotFound):
		return nil, domainGrant.ErrForbidden
	case err != nil:
		return nil, err
	}
	if !emp.IsNamed(v.HostEmployeeName) {
		return nil, domainGrant.ErrForbidden
	}

	g, err := domainGrant.New(v.ID, emp.ID, in.ValidFrom, in.ValidTo, in.MaxVisitsPerDay)
	if err != nil {
		return nil, err
	}
	if err := u.grants.Create(ctx, g); err != nil {
		return nil, err
	}

	contextutil.Logger(ctx, u.log).Info("pre-approval scheduled",
		zap.Uint64("grant_id", g.ID),
		zap.Uint64("visitor_id", g.VisitorID),
		zap.Time("valid_from", g.ValidFrom),
		zap.Time("valid_to", g.ValidTo),
		zap.Int("max_visits_per_day", g.MaxVisitsPerDay),
	)
	dto := toDTO(g)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context, employeeID uint64) ([]GrantDTO, error) {
	rows, err := u.grants.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]GrantDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}
