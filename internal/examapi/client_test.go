package examapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/models"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.UserGameProfile{Level: 3})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	profile, err := c.GameProfile(context.Background(), Auth{Bearer: "tok-abc"})
	require.NoError(t, err)
	assert.Equal(t, 3, profile.Level)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClientFetchesCSRFOnceForMutatingRequests(t *testing.T) {
	var csrfCalls, csrfHeaders atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/csrf/":
			csrfCalls.Add(1)
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-xyz"})
			w.WriteHeader(http.StatusOK)
		default:
			if r.Header.Get("X-CSRFToken") == "csrf-xyz" {
				csrfHeaders.Add(1)
			}
			json.NewEncoder(w).Encode(models.ExamAttempt{ID: 1, Status: models.ExamStatusInProgress})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	auth := Auth{Bearer: "tok"}

	_, err := c.StartExamAttempt(context.Background(), auth)
	require.NoError(t, err)
	_, err = c.StartExamAttempt(context.Background(), auth)
	require.NoError(t, err)

	assert.Equal(t, int32(1), csrfCalls.Load())
	assert.Equal(t, int32(2), csrfHeaders.Load())
}

func TestClientResetCSRFRearmsFetch(t *testing.T) {
	var csrfCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/csrf/" {
			csrfCalls.Add(1)
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-xyz"})
			return
		}
		json.NewEncoder(w).Encode(models.ExamAttempt{ID: 1})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	_, err := c.StartExamAttempt(context.Background(), Auth{})
	require.NoError(t, err)
	c.ResetCSRF()
	_, err = c.StartExamAttempt(context.Background(), Auth{})
	require.NoError(t, err)

	assert.Equal(t, int32(2), csrfCalls.Load())
}

func TestClientSkipsCSRFForGet(t *testing.T) {
	var csrfCalled atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/csrf/" {
			csrfCalled.Store(true)
			return
		}
		json.NewEncoder(w).Encode(models.UserGameProfile{})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.GameProfile(context.Background(), Auth{})
	require.NoError(t, err)
	assert.False(t, csrfCalled.Load())
}

func TestClientExtractsDetailFromErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "attempt already completed"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.GameProfile(context.Background(), Auth{})
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstream, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "attempt already completed", appErr.Message)
}

func TestClientFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.GameProfile(context.Background(), Auth{})
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, 502, appErr.Status)
	assert.Contains(t, appErr.Message, "500")
}

func TestClientMapsUpstream401ToUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.GameProfile(context.Background(), Auth{Bearer: "stale"})
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnauthorized, appErr.Code)
	assert.Equal(t, 401, appErr.Status)
}

func TestClientSubmitExamAnswerSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotBody models.AnswerSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/csrf/" {
			return
		}
		gotKey = r.Header.Get("X-Idempotency-Key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	err := c.SubmitExamAnswer(context.Background(), Auth{Bearer: "tok"}, 42,
		models.AnswerSubmission{QuestionID: 101, SelectedAnswer: "B", TimeSpentSeconds: 12}, "key-1")
	require.NoError(t, err)

	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, int64(101), gotBody.QuestionID)
	assert.Equal(t, "B", gotBody.SelectedAnswer)
}
