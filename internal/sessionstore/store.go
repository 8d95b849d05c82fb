package sessionstore

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session maps this server's session cookie to the upstream bearer token.
// It is the only state this tier persists; everything else is re-fetched
// from the exam API.
type Session struct {
	ID          string
	UserID      int64
	Email       string
	BearerToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Store persists web sessions.
type Store interface {
	Create(ctx context.Context, session Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenExpiry derives a session expiry from the bearer token's exp claim.
// The token is not verified here; the exam API is the verifier, we only
// bound the local session lifetime. Falls back to now+fallback when the
// token is opaque or carries no expiry.
func TokenExpiry(token string, now time.Time, fallback time.Duration) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.After(now) {
			return exp.Time
		}
	}
	return now.Add(fallback)
}
