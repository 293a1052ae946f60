package admission

import (
	"context"
	"fmt"
	"time"

	"visitor-admission/internal/domain/badge"
	"visitor-admission/internal/domain/visitor"
)

type BadgeTokenSigner interface {
	SignBadge(visitorID uint64) (string, error)
}

// BadgeCoordinator issues at most one badge artifact per visitor.
type BadgeCoordinator struct {
	issuer badge.Issuer
	tokens BadgeTokenSigner
}

func NewBadgeCoordinator(issuer badge.Issuer, tokens BadgeTokenSigner) *BadgeCoordinator {
	return &BadgeCoordinator{issuer: issuer, tokens: tokens}
}

// EnsureBadge is a no-op for a badged visitor. Otherwise it issues the artifact,
// then records its URL and checks the visitor in at at. visitors must belong to
// the caller's transaction.
func (b *BadgeCoordinator) EnsureBadge(ctx context.Context, visitors visitor.Repository, v *visitor.Visitor, at time.Time) error {
	if v.HasBadge() {
		return nil
	}
	tok, err := b.tokens.SignBadge(v.ID)
	if err != nil {
		return fmt.Errorf("sign badge token: %w", err)
	}
	url, err := b.issuer.IssueBadge(ctx, tok)
	if err != nil {
		return fmt.Errorf("%w: visitor %d: %v", badge.ErrIssuance, v.ID, err)
	}
	at = at.UTC()
	if err := visitors.RecordBadge(ctx, v.ID, url, at); err != nil {
		return fmt.Errorf("record badge: %w", err)
	}
	v.BadgeURL = &url
	v.CheckIn = at
	return nil
}
