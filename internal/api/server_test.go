package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lexprep/lexprep/internal/exam"
	"github.com/lexprep/lexprep/internal/quiz"
	"github.com/lexprep/lexprep/internal/sessionstore"
	"github.com/lexprep/lexprep/internal/testutil"
	"github.com/lexprep/lexprep/internal/testutil/mocks"
)

type testServer struct {
	*Server
	authAPI *mocks.MockAuthAPI
	examAPI *mocks.MockExamAPI
	quizAPI *mocks.MockTopicQuizAPI
	queue   *mocks.MockEnqueuer
	http    *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	authAPI := new(mocks.MockAuthAPI)
	examAPI := new(mocks.MockExamAPI)
	quizAPI := new(mocks.MockTopicQuizAPI)
	queue := new(mocks.MockEnqueuer)

	srv := &Server{
		Sessions:       testutil.NewTestStore(t),
		AuthAPI:        authAPI,
		ExamAPI:        examAPI,
		QuizAPI:        quizAPI,
		Exams:          exam.NewManager(examAPI, queue, exam.Defaults{DurationSeconds: 3600, SpeedReaderSeconds: 70}),
		Quizzes:        quiz.NewManager(quizAPI),
		Queue:          queue,
		SessionTTL:     time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(func() {
		srv.Exams.Shutdown()
		ts.Close()
	})

	return &testServer{
		Server:  srv,
		authAPI: authAPI,
		examAPI: examAPI,
		quizAPI: quizAPI,
		queue:   queue,
		http:    ts,
	}
}

// loginSession seeds a live session directly in the store and returns its cookie.
func (ts *testServer) loginSession(t *testing.T) *http.Cookie {
	t.Helper()

	now := time.Now()
	sess := sessionstore.Session{
		ID:          uuid.NewString(),
		UserID:      7,
		Email:       "student@example.com",
		BearerToken: "bearer-abc",
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, ts.Sessions.Create(context.Background(), sess))
	return &http.Cookie{Name: sessionCookieName, Value: sess.ID}
}
