package sessionstore

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiryUsesExpClaim(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(8 * time.Hour)

	token := signedToken(t, jwt.MapClaims{"exp": exp.Unix(), "sub": "user-1"})

	got := TokenExpiry(token, now, 12*time.Hour)
	assert.Equal(t, exp.Unix(), got.Unix())
}

func TestTokenExpiryFallsBackForOpaqueToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got := TokenExpiry("not-a-jwt", now, 12*time.Hour)
	assert.Equal(t, now.Add(12*time.Hour), got)
}

func TestTokenExpiryFallsBackWhenExpMissing(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{"sub": "user-1"})

	got := TokenExpiry(token, now, 6*time.Hour)
	assert.Equal(t, now.Add(6*time.Hour), got)
}

func TestTokenExpiryFallsBackWhenExpInPast(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()})

	got := TokenExpiry(token, now, 6*time.Hour)
	assert.Equal(t, now.Add(6*time.Hour), got)
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	sess := Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, sess.Expired(now))
	assert.True(t, sess.Expired(now.Add(2*time.Minute)))
	assert.True(t, sess.Expired(now.Add(time.Minute)))
}
