package jwtx

import (
	"slices"
	"time"

	"github.com/aussiebroadwan/rbac/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultAccessTokenTTL = 15 * time.Minute

// Claims are the access-token claims. The subject is the username, which
// is the identity the role endpoints act on behalf of.
type Claims struct {
	jwt.RegisteredClaims

	// AMR lists how the subject authenticated, e.g. ["pwd"].
	AMR []string `json:"amr,omitempty"`
}

const AMRPassword = "pwd"

// NewAccessClaims builds claims for username valid from now for ttl.
func NewAccessClaims(username, issuer string, audience []string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.NewAt(now),
		},
		AMR: []string{AMRPassword},
	}
}

func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" || c.Issuer == expected {
		return nil
	}
	return ErrIssuer
}

// ValidateAudience passes when any expected audience is present, or when
// nothing is expected.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry checks exp and nbf against now with the given leeway for
// clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
