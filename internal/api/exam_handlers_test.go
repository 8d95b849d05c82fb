package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lexprep/lexprep/internal/models"
)

func expectExamStart(ts *testServer) {
	ts.examAPI.On("StartExamAttempt", mock.Anything, mock.Anything).
		Return(&models.ExamAttempt{ID: 42, Status: models.ExamStatusInProgress, TotalQuestions: 2}, nil).Once()
	ts.examAPI.On("ExamQuestions", mock.Anything, mock.Anything, int64(42)).
		Return([]models.Question{
			{ID: 101, Number: 1, Text: "q1", Options: []models.QuestionOption{{Label: "A"}, {Label: "B"}}, CorrectAnswer: "A"},
			{ID: 102, Number: 2, Text: "q2", Options: []models.QuestionOption{{Label: "A"}, {Label: "B"}}, CorrectAnswer: "B"},
		}, nil).Once()
	ts.examAPI.On("ExamTimingConfig", mock.Anything, mock.Anything).
		Return(&models.ExamTimingConfig{DurationSeconds: 1800, SpeedReaderSeconds: 45}, nil).Once()
}

func TestExamStartAndSession(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginSession(t)
	expectExamStart(ts)

	resp := postJSON(t, ts.http.URL+"/api/exams/start", nil, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = getWithCookie(t, ts.http.URL+"/api/exams/session", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state struct {
		Phase    string `json:"phase"`
		TimeLeft int    `json:"time_left"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, "ready", state.Phase)
	assert.InDelta(t, 1800, state.TimeLeft, 2)
	ts.examAPI.AssertExpectations(t)
}

func TestExamSessionWithoutStartIs404(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginSession(t)

	resp := getWithCookie(t, ts.http.URL+"/api/exams/session", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExamFinishAsksForConfirmation(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginSession(t)
	expectExamStart(ts)
	ts.queue.On("EnqueueExamAnswer", mock.Anything, mock.Anything, mock.Anything)

	resp := postJSON(t, ts.http.URL+"/api/exams/start", nil, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, ts.http.URL+"/api/exams/session/answer", map[string]string{"answer": "A"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// One of two questions is unanswered: finishing needs confirmation.
	resp = postJSON(t, ts.http.URL+"/api/exams/session/finish", map[string]bool{"confirm": false}, cookie)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Error struct {
			Code            string `json:"code"`
			UnansweredCount int    `json:"unanswered_count"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UNANSWERED_QUESTIONS", body.Error.Code)
	assert.Equal(t, 1, body.Error.UnansweredCount)

	ts.examAPI.On("CompleteExamAttempt", mock.Anything, mock.Anything, int64(42), mock.Anything).
		Return(&models.ExamAttempt{ID: 42, Status: models.ExamStatusCompleted, Score: 50}, nil).Once()

	resp = postJSON(t, ts.http.URL+"/api/exams/session/finish", map[string]bool{"confirm": true}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ts.examAPI.AssertExpectations(t)
}

func TestExamResults(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginSession(t)

	ts.examAPI.On("ExamReview", mock.Anything, mock.Anything, int64(42)).
		Return(&models.ExamReview{
			Attempt: models.ExamAttempt{ID: 42, Status: models.ExamStatusCompleted, Score: 75},
		}, nil).Once()

	resp := getWithCookie(t, ts.http.URL+"/api/exams/42/results", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var review models.ExamReview
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&review))
	assert.Equal(t, 75.0, review.Attempt.Score)
	ts.examAPI.AssertExpectations(t)
}
