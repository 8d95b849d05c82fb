package examapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
)

// StartTopicQuiz begins a gamified quiz for one topic.
func (c *Client) StartTopicQuiz(ctx context.Context, auth Auth, topicID int64) (*models.TopicQuizAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("topic_id", topicID)
	log.Debug("starting topic quiz")

	body := map[string]any{"topic_id": topicID}
	var out models.TopicQuizAttempt
	if err := c.do(ctx, http.MethodPost, "/quiz/topic/start/", auth, body, &out); err != nil {
		log.Error("failed to start topic quiz: %v", err)
		return nil, err
	}
	log.Info("topic quiz started: attempt_id=%d, lives=%d", out.ID, out.LivesRemaining)
	return &out, nil
}

// TopicQuizAttempt fetches the attempt record.
func (c *Client) TopicQuizAttempt(ctx context.Context, auth Auth, attemptID int64) (*models.TopicQuizAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("attempt_id", attemptID)
	log.Debug("fetching topic quiz attempt")

	var out models.TopicQuizAttempt
	path := fmt.Sprintf("/quiz/topic/attempts/%d/", attemptID)
	if err := c.do(ctx, http.MethodGet, path, auth, nil, &out); err != nil {
		log.Error("failed to fetch topic quiz attempt: %v", err)
		return nil, err
	}
	return &out, nil
}

// TopicQuizCurrentQuestion fetches the question the attempt is positioned on.
func (c *Client) TopicQuizCurrentQuestion(ctx context.Context, auth Auth, attemptID int64) (*models.TopicQuizQuestion, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("attempt_id", attemptID)
	log.Debug("fetching current quiz question")

	var out models.TopicQuizQuestion
	path := fmt.Sprintf("/quiz/topic/attempts/%d/current-question/", attemptID)
	if err := c.do(ctx, http.MethodGet, path, auth, nil, &out); err != nil {
		log.Error("failed to fetch current question: %v", err)
		return nil, err
	}
	return &out, nil
}

// SubmitTopicAnswer submits one answer and returns the server's verdict plus
// updated lives/points/streak; the next question is embedded when the quiz
// continues.
func (c *Client) SubmitTopicAnswer(ctx context.Context, auth Auth, attemptID int64, sub models.TopicAnswerSubmission) (*models.TopicAnswerResult, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithFields(map[string]any{
		"attempt_id":  attemptID,
		"question_id": sub.QuestionID,
	})
	log.Debug("submitting topic quiz answer")

	var out models.TopicAnswerResult
	path := fmt.Sprintf("/quiz/topic/attempts/%d/submit-answer/", attemptID)
	if err := c.do(ctx, http.MethodPost, path, auth, sub, &out); err != nil {
		log.Warn("topic answer submission failed: %v", err)
		return nil, err
	}
	log.Debug("answer result: correct=%t, lives=%d, status=%s", out.IsCorrect, out.LivesRemaining, out.QuizStatus)
	return &out, nil
}

// UseFiftyFifty consumes the attempt's single 50/50 power-up; the server
// picks the two wrong options to eliminate.
func (c *Client) UseFiftyFifty(ctx context.Context, auth Auth, attemptID int64, questionID int64) (*models.FiftyFiftyResult, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("attempt_id", attemptID)
	log.Debug("using fifty-fifty: question_id=%d", questionID)

	body := map[string]any{"question_id": questionID}
	var out models.FiftyFiftyResult
	path := fmt.Sprintf("/quiz/topic/attempts/%d/fifty-fifty/", attemptID)
	if err := c.do(ctx, http.MethodPost, path, auth, body, &out); err != nil {
		log.Warn("fifty-fifty failed: %v", err)
		return nil, err
	}
	return &out, nil
}

// GameProfile fetches the server-computed level/XP/rank aggregates.
func (c *Client) GameProfile(ctx context.Context, auth Auth) (*models.UserGameProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("fetching game profile")

	var out models.UserGameProfile
	if err := c.do(ctx, http.MethodGet, "/game-profile/", auth, nil, &out); err != nil {
		log.Error("failed to fetch game profile: %v", err)
		return nil, err
	}
	return &out, nil
}
