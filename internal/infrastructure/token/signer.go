package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"visitor-admission/pkg/id"

	"github.com/golang-jwt/jwt/v5"
)

const (
	audienceEmployee = "employee"
	audienceBadge    = "badge"
	badgeSubPrefix   = "visitor:"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by an employee access token. Subject is the employee email.
type Claims struct {
	EmployeeID uint64 `json:"employee_id"`
	jwt.RegisteredClaims
}

// Signer issues HS256 access tokens for employees and non-expiring badge tokens for visitors.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) SignAccess(employeeID uint64, email string) (string, error) {
	now := s.now()
	claims := Claims{
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Audience:  jwt.ClaimStrings{audienceEmployee},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Signer) ParseAccess(raw string) (*Claims, error) {
	claims := &Claims{}
	if err := s.parse(raw, claims, audienceEmployee); err != nil {
		return nil, err
	}
	if claims.EmployeeID == 0 {
		return nil, fmt.Errorf("%w: missing employee_id", ErrInvalidToken)
	}
	return claims, nil
}

// SignBadge encodes the visitor identity printed on the badge QR code.
func (s *Signer) SignBadge(visitorID uint64) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       id.NewID32(),
		Subject:  badgeSubPrefix + strconv.FormatUint(visitorID, 10),
		Audience: jwt.ClaimStrings{audienceBadge},
		IssuedAt: jwt.NewNumericDate(s.now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Signer) ParseBadge(raw string) (uint64, error) {
	claims := &jwt.RegisteredClaims{}
	if err := s.parse(raw, claims, audienceBadge); err != nil {
		return 0, err
	}
	rest, ok := strings.CutPrefix(claims.Subject, badgeSubPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected subject", ErrInvalidToken)
	}
	visitorID, err := strconv.ParseUint(rest, 10, 64)
	if err != nil || visitorID == 0 {
		return 0, fmt.Errorf("%w: bad visitor id", ErrInvalidToken)
	}
	return visitorID, nil
}

func (s *Signer) parse(raw string, claims jwt.Claims, audience string) error {
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		// reject alg swapping
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}
