package badge

import (
	"context"
	"errors"
)

var ErrIssuance = errors.New("badge issuance failed")

// Issuer renders a badge artifact for token and returns where it is hosted.
type Issuer interface {
	IssueBadge(ctx context.Context, token string) (string, error)
}
