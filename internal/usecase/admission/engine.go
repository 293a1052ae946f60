package admission

import (
	"context"
	"errors"
	"strconv"
	"time"

	"visitor-admission/internal/contextutil"
	"visitor-admission/internal/domain/approval"
	"visitor-admission/internal/domain/grant"
	"visitor-admission/internal/domain/uow"
	"visitor-admission/internal/domain/visitor"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout = 3 * time.Second
	defaultBackoff = 50 * time.Millisecond
)

// Engine re-evaluates auto-approval on every visitor status read.
type Engine struct {
	visitors  visitor.Repository
	approvals approval.Repository
	uow       uow.UnitOfWork
	badges    *BadgeCoordinator
	log       *zap.Logger

	now     func() time.Time
	timeout time.Duration
	backoff time.Duration
	sf      singleflight.Group
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source for status-read evaluations.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithTimeout bounds a single evaluation, transaction included.
func WithTimeout(d time.Duration) Option { return func(e *Engine) { e.timeout = d } }

// WithBackoff sets the pause before retrying a conflicted evaluation.
func WithBackoff(d time.Duration) Option { return func(e *Engine) { e.backoff = d } }

func NewEngine(visitors visitor.Repository, approvals approval.Repository, tx uow.UnitOfWork, badges *BadgeCoordinator, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		visitors:  visitors,
		approvals: approvals,
		uow:       tx,
		badges:    badges,
		log:       log.Named("admission"),
		now:       time.Now,
		timeout:   defaultTimeout,
		backoff:   defaultBackoff,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs one admission decision for visitorID at now. Every read and
// write happens inside a transaction holding the visitor row lock; any error
// rolls the whole decision back, badge included.
func (e *Engine) Evaluate(ctx context.Context, visitorID uint64, now time.Time) (Outcome, error) {
	var out Outcome
	err := e.uow.WithinVisitorTx(ctx, visitorID, func(r uow.Repos, v *visitor.Visitor) error {
		var err error
		out, err = e.decide(ctx, r, v, now.UTC())
		return err
	})
	if err != nil {
		return Outcome{Action: ActionNoop}, err
	}
	return out, nil
}

func (e *Engine) decide(ctx context.Context, r uow.Repos, v *visitor.Visitor, now time.Time) (Outcome, error) {
	latest, err := r.Approvals.GetLatestByVisitorID(ctx, v.ID)
	switch {
	case errors.Is(err, approval.ErrNotFound):
		latest = nil
	case err != nil:
		return Outcome{}, err
	}

	// terminal decisions are final
	if latest != nil && latest.Status.IsTerminal() {
		if latest.Status == approval.StatusApproved && !v.HasBadge() {
			// earlier issuance failed; retry lazily
			if err := e.badges.EnsureBadge(ctx, r.Visitors, v, now); err != nil {
				return Outcome{}, err
			}
		}
		return Outcome{Action: ActionNoop, Approval: latest}, nil
	}

	grants, err := r.Grants.ListByVisitor(ctx, v.ID)
	if err != nil {
		return Outcome{}, err
	}
	g := grant.PickActive(grants, now)
	if g == nil {
		return Outcome{Action: ActionNoop, Approval: latest}, nil
	}

	used, err := CountApprovedToday(ctx, r.Approvals, v.ID, now)
	if err != nil {
		return Outcome{}, err
	}
	if used >= int64(g.MaxVisitsPerDay) {
		return Outcome{Action: ActionNoop, Approval: latest}, nil
	}

	var out Outcome
	if latest != nil {
		ok, err := r.Approvals.TransitionFromPending(ctx, latest.ID, approval.StatusApproved, now)
		if err != nil {
			return Outcome{}, err
		}
		if !ok {
			return Outcome{}, approval.ErrConcurrencyConflict
		}
		if err := latest.Decide(approval.StatusApproved, now); err != nil {
			return Outcome{}, err
		}
		out = Outcome{Action: ActionApproveExisting, Approval: latest}
	} else {
		a := &approval.Approval{
			VisitorID:   v.ID,
			EmployeeID:  g.EmployeeID,
			Status:      approval.StatusApproved,
			RequestedAt: now,
			DecisionAt:  &now,
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return Outcome{}, err
		}
		out = Outcome{Action: ActionApproveNew, Approval: a}
	}

	// check-in is stamped with the first badge only
	if err := e.badges.EnsureBadge(ctx, r.Visitors, v, now); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// EvaluateAndGetStatus drives one admission attempt and returns the visitor with
// its latest approval. A failed attempt is logged and the prior state returned.
func (e *Engine) EvaluateAndGetStatus(ctx context.Context, visitorID uint64) (*VisitorStatusView, error) {
	if _, err := e.visitors.GetByID(ctx, visitorID); err != nil {
		return nil, err
	}

	e.admit(ctx, visitorID)

	v, err := e.visitors.GetByID(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	latest, err := e.approvals.GetLatestByVisitorID(ctx, visitorID)
	switch {
	case errors.Is(err, approval.ErrNotFound):
		latest = nil
	case err != nil:
		return nil, err
	}
	return toView(v, latest), nil
}

// admit collapses concurrent reads of one visitor into a single evaluation.
func (e *Engine) admit(ctx context.Context, visitorID uint64) {
	log := contextutil.Logger(ctx, e.log).With(zap.Uint64("visitor_id", visitorID))
	key := strconv.FormatUint(visitorID, 10)

	res, err, shared := e.sf.Do(key, func() (any, error) {
		// detached so one caller's cancellation does not fail the others
		return e.evaluateWithRetry(context.WithoutCancel(ctx), visitorID)
	})
	if err != nil {
		log.Warn("auto-approval skipped", zap.Error(err), zap.Bool("shared", shared))
		return
	}
	if out, ok := res.(Outcome); ok && out.Action != ActionNoop && !shared {
		log.Info("visitor auto-approved",
			zap.Stringer("action", out.Action),
			zap.Uint64("approval_id", out.Approval.ID),
		)
	}
}

func (e *Engine) evaluateWithRetry(ctx context.Context, visitorID uint64) (Outcome, error) {
	out, err := e.evaluateBounded(ctx, visitorID)
	if !errors.Is(err, approval.ErrConcurrencyConflict) {
		return out, err
	}
	time.Sleep(e.backoff)
	return e.evaluateBounded(ctx, visitorID)
}

func (e *Engine) evaluateBounded(ctx context.Context, visitorID uint64) (Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.Evaluate(ctx, visitorID, e.now())
}
