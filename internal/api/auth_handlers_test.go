package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/models"
)

func postJSON(t *testing.T, url string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLoginCreatesSession(t *testing.T) {
	ts := newTestServer(t)

	ts.authAPI.On("Login", mock.Anything, models.Credentials{Email: "student@example.com", Password: "secret"}).
		Return(&models.LoginResult{
			Token: "opaque-token",
			User:  models.User{ID: 7, Email: "student@example.com", FullName: "Student"},
		}, nil).Once()

	resp := postJSON(t, ts.http.URL+"/auth/login", map[string]string{
		"email":    "student@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the session cookie")
	assert.True(t, cookie.HttpOnly)

	sess, err := ts.Sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, int64(7), sess.UserID)
	assert.Equal(t, "opaque-token", sess.BearerToken)
	ts.authAPI.AssertExpectations(t)
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.http.URL+"/auth/login", map[string]string{"email": "student@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	ts.authAPI.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLoginRelaysUpstreamRejection(t *testing.T) {
	ts := newTestServer(t)

	ts.authAPI.On("Login", mock.Anything, mock.Anything).
		Return(nil, errors.NewUpstreamError(401, "invalid credentials", nil)).Once()

	resp := postJSON(t, ts.http.URL+"/auth/login", map[string]string{
		"email":    "student@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
}

func TestLogoutDeletesSession(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginSession(t)

	ts.authAPI.On("Logout", mock.Anything, mock.Anything).Return(nil).Once()

	resp := postJSON(t, ts.http.URL+"/auth/logout", nil, cookie)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	sess, err := ts.Sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Nil(t, sess)
	ts.authAPI.AssertExpectations(t)
}

func TestLogoutSurvivesUpstreamFailure(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginSession(t)

	ts.authAPI.On("Logout", mock.Anything, mock.Anything).
		Return(errors.NewUpstreamError(503, "unavailable", nil)).Once()

	resp := postJSON(t, ts.http.URL+"/auth/logout", nil, cookie)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	sess, err := ts.Sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
