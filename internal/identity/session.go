package identity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the authentication state of one browser. It is looked up once
// per request and passed explicitly to the handlers that need it.
type Session struct {
	ID        string
	Email     string
	IDToken   string
	ExpiresAt time.Time
}

// Anonymous is the session of a visitor that has not signed in.
var Anonymous = &Session{}

// NewSession builds a session from a provider-issued ID token. When the
// token has no expiry, fallbackTTL from now is used.
func NewSession(idToken string, now time.Time, fallbackTTL time.Duration) (*Session, error) {
	claims, err := ParseIDToken(idToken)
	if err != nil {
		return nil, err
	}
	email, err := EmailFromIDToken(idToken)
	if err != nil {
		return nil, err
	}

	expires := claims.expiry()
	if expires.IsZero() {
		expires = now.Add(fallbackTTL)
	}

	return &Session{
		ID:        uuid.NewString(),
		Email:     email,
		IDToken:   idToken,
		ExpiresAt: expires,
	}, nil
}

// Authenticated reports whether the session belongs to a signed-in user
// whose token is still valid at now.
func (s *Session) Authenticated(now time.Time) bool {
	if s == nil || s.Email == "" || s.IDToken == "" {
		return false
	}
	return now.Before(s.ExpiresAt)
}
