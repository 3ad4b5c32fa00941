// Package identity is the boundary to the external OIDC identity provider:
// reading the email claim out of an ID token, the per-request Session, and
// the sign-in / sign-out redirects.
package identity

import (
	"time"

	"github.com/dmitrijs2005/s3share/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the ID token claims the application reads.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// ParseIDToken decodes the claims segment of an ID token. The signature is
// not checked: tokens only reach this function straight from the provider's
// token endpoint.
func ParseIDToken(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// EmailFromIDToken returns the email claim of an ID token.
func EmailFromIDToken(token string) (string, error) {
	claims, err := ParseIDToken(token)
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", common.ErrNoEmailClaim
	}
	return claims.Email, nil
}

// expiry returns the token expiry, or the zero time when it has none.
func (c *Claims) expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
