// Package token implements JWT validation for the API surface using HMAC
// signing. It satisfies middleware.JWTValidator.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"scanid/internal/platform/middleware"
	"scanid/pkg/domain"
)

// Validator validates HS256-signed tokens carrying an organization_id claim.
type Validator struct {
	signingKey []byte
}

// NewValidator creates a Validator with the given signing key.
func NewValidator(signingKey string) *Validator {
	return &Validator{signingKey: []byte(signingKey)}
}

type claims struct {
	OrganizationID string `json:"organization_id"`
	jwt.RegisteredClaims
}

// ValidateToken parses and verifies a token, returning the claims the
// middleware layer consumes.
func (v *Validator) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	orgID, err := domain.ParseOrganizationID(c.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization_id claim: %w", err)
	}

	return &middleware.JWTClaims{
		OrganizationID: orgID,
		Subject:        c.Subject,
	}, nil
}

// Issue mints a token for the given organization. Used by tests and local
// development tooling; production tokens come from the identity platform.
func Issue(signingKey string, orgID domain.OrganizationID, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		OrganizationID: orgID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return t.SignedString([]byte(signingKey))
}
