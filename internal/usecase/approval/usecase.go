package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"visitor-admission/internal/contextutil"
	domainApproval "visitor-admission/internal/domain/approval"
	"visitor-admission/internal/domain/uow"
	"visitor-admission/internal/domain/visitor"

	"go.uber.org/zap"
)

// BadgeEnsurer issues the visitor's badge if it has none yet.
type BadgeEnsurer interface {
	EnsureBadge(ctx context.Context, visitors visitor.Repository, v *visitor.Visitor, at time.Time) error
}

type Usecase struct {
	approvalRepo domainApproval.Repository
	uow          uow.UnitOfWork
	badges       BadgeEnsurer
	log          *zap.Logger

	now     func() time.Time
	backoff time.Duration
}

// NewUsecase: pass the ledger repo and a UoW for tx flows.
func NewUsecase(approvals domainApproval.Repository, tx uow.UnitOfWork, badges BadgeEnsurer, log *zap.Logger) *Usecase {
	return &Usecase{
		approvalRepo: approvals,
		uow:          tx,
		badges:       badges,
		log:          log.Named("approval"),
		now:          time.Now,
		backoff:      50 * time.Millisecond,
	}
}

// RecordManualDecision moves a PENDING record to APPROVED or REJECTED. An approval
// also issues the visitor's badge; issuance failure is logged and the decision stands.
func (u *Usecase) RecordManualDecision(ctx context.Context, in DecisionInput) (*ApprovalDTO, error) {
	to, err := domainApproval.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if !to.IsTerminal() {
		return nil, fmt.Errorf("%w: decision must be APPROVED or REJECTED", domainApproval.ErrInvalidStatus)
	}

	// visitor id is needed to take the lock in the right order
	a, err := u.approvalRepo.GetByID(ctx, in.ApprovalID)
	if err != nil {
		return nil, err
	}

	decided, err := u.decide(ctx, a.VisitorID, in.ApprovalID, to)
	if errors.Is(err, domainApproval.ErrConcurrencyConflict) {
		time.Sleep(u.backoff)
		decided, err = u.decide(ctx, a.VisitorID, in.ApprovalID, to)
	}
	if err != nil {
		return nil, err
	}

	if decided.Status == domainApproval.StatusApproved {
		u.issueBadge(ctx, decided.VisitorID)
	}
	return toDTO(decided), nil
}

func (u *Usecase) decide(ctx context.Context, visitorID, approvalID uint64, to domainApproval.Status) (*domainApproval.Approval, error) {
	var out *domainApproval.Approval
	err := u.uow.WithinVisitorTx(ctx, visitorID, func(r uow.Repos, _ *visitor.Visitor) error {
		a, err := r.Approvals.GetByIDForUpdate(ctx, approvalID)
		if err != nil {
			return err
		}
		at := u.now().UTC()
		// state guard before the write so the caller sees InvalidTransition, not a conflict
		if err := a.Decide(to, at); err != nil {
			return err
		}
		ok, err := r.Approvals.TransitionFromPending(ctx, a.ID, to, at)
		if err != nil {
			return err
		}
		if !ok {
			return domainApproval.ErrConcurrencyConflict
		}
		out = a
		return nil
	})
	return out, err
}

func (u *Usecase) issueBadge(ctx context.Context, visitorID uint64) {
	err := u.uow.WithinVisitorTx(ctx, visitorID, func(r uow.Repos, v *visitor.Visitor) error {
		return u.badges.EnsureBadge(ctx, r.Visitors, v, u.now())
	})
	if err != nil {
		contextutil.Logger(ctx, u.log).Warn("badge issuance deferred",
			zap.Uint64("visitor_id", visitorID), zap.Error(err))
	}
}

// ListForEmployee returns the host's ledger entries, newest first. rawStatus may be empty.
func (u *Usecase) ListForEmployee(ctx context.Context, employeeID uint64, rawStatus string) ([]ApprovalDTO, error) {
	var filter *domainApproval.Status
	if rawStatus != "" {
		st, err := domainApproval.ParseStatus(rawStatus)
		if err != nil {
			return nil, err
		}
		filter = &st
	}
	rows, err := u.approvalRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ApprovalDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}
