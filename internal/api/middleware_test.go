package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/models"
	"github.com/lexprep/lexprep/internal/sessionstore"
)

func getWithCookie(t *testing.T, url string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSessionMiddlewareRejectsMissingCookie(t *testing.T) {
	ts := newTestServer(t)

	resp := getWithCookie(t, ts.http.URL+"/api/game-profile", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionMiddlewareRejectsUnknownSession(t *testing.T) {
	ts := newTestServer(t)

	resp := getWithCookie(t, ts.http.URL+"/api/game-profile", &http.Cookie{
		Name: sessionCookieName, Value: "no-such-session",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionMiddlewareDeletesExpiredSession(t *testing.T) {
	ts := newTestServer(t)

	now := time.Now()
	sess := sessionstore.Session{
		ID:          uuid.NewString(),
		UserID:      7,
		BearerToken: "bearer-abc",
		CreatedAt:   now.Add(-2 * time.Hour),
		ExpiresAt:   now.Add(-time.Hour),
	}
	require.NoError(t, ts.Sessions.Create(context.Background(), sess))

	resp := getWithCookie(t, ts.http.URL+"/api/game-profile", &http.Cookie{
		Name: sessionCookieName, Value: sess.ID,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	got, err := ts.Sessions.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionMiddlewareForwardsBearerToken(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginSession(t)

	ts.quizAPI.On("GameProfile", mock.Anything, examapi.Auth{Bearer: "bearer-abc"}).
		Return(&models.UserGameProfile{Level: 4, TotalPoints: 900}, nil).Once()

	resp := getWithCookie(t, ts.http.URL+"/api/game-profile", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	ts.quizAPI.AssertExpectations(t)
}
