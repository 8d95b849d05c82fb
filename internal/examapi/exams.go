package examapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
)

// StartExamAttempt creates a new mock-exam attempt with a fixed question set.
func (c *Client) StartExamAttempt(ctx context.Context, auth Auth) (*models.ExamAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("starting exam attempt")

	var out models.ExamAttempt
	if err := c.do(ctx, http.MethodPost, "/exam-attempts/start/", auth, nil, &out); err != nil {
		log.Error("failed to start exam attempt: %v", err)
		return nil, err
	}
	log.Info("exam attempt started: id=%d, questions=%d", out.ID, out.TotalQuestions)
	return &out, nil
}

// ExamQuestions fetches the attempt's fixed question set.
func (c *Client) ExamQuestions(ctx context.Context, auth Auth, attemptID int64) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("attempt_id", attemptID)
	log.Debug("fetching exam questions")

	var out struct {
		Questions []models.Question `json:"questions"`
	}
	path := fmt.Sprintf("/exam-attempts/%d/questions/", attemptID)
	if err := c.do(ctx, http.MethodGet, path, auth, nil, &out); err != nil {
		log.Error("failed to fetch exam questions: %v", err)
		return nil, err
	}
	log.Debug("fetched %d questions", len(out.Questions))
	return out.Questions, nil
}

// ExamTimingConfig fetches the server defaults for duration and speed reader.
func (c *Client) ExamTimingConfig(ctx context.Context, auth Auth) (*models.ExamTimingConfig, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("fetching exam timing config")

	var out models.ExamTimingConfig
	if err := c.do(ctx, http.MethodGet, "/exam-timing-config/", auth, nil, &out); err != nil {
		log.Error("failed to fetch timing config: %v", err)
		return nil, err
	}
	return &out, nil
}

// SubmitExamAnswer records one answer. Callers invoke this from the
// write-behind queue, so the idempotency key rides along as a header and the
// server can drop duplicates from retried deliveries.
func (c *Client) SubmitExamAnswer(ctx context.Context, auth Auth, attemptID int64, sub models.AnswerSubmission, idempotencyKey string) error {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithFields(map[string]any{
		"attempt_id":  attemptID,
		"question_id": sub.QuestionID,
	})
	log.Debug("submitting exam answer")

	path := fmt.Sprintf("/exam-attempts/%d/submit-answer/", attemptID)
	req, err := c.newRequest(ctx, http.MethodPost, path, auth, sub)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}
	if err := c.send(req, nil); err != nil {
		log.Warn("answer submission failed: %v", err)
		return err
	}
	return nil
}

// CompleteExamAttempt marks the attempt completed and returns the scored
// attempt record.
func (c *Client) CompleteExamAttempt(ctx context.Context, auth Auth, attemptID int64, timeSpentSeconds int) (*models.ExamAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("attempt_id", attemptID)
	log.Debug("completing exam attempt: time_spent=%ds", timeSpentSeconds)

	body := map[string]any{
		"status":             models.ExamStatusCompleted,
		"time_spent_seconds": timeSpentSeconds,
	}
	var out models.ExamAttempt
	path := fmt.Sprintf("/exam-attempts/%d/", attemptID)
	if err := c.do(ctx, http.MethodPatch, path, auth, body, &out); err != nil {
		log.Error("failed to complete exam attempt: %v", err)
		return nil, err
	}
	log.Info("exam attempt completed: id=%d, score=%.1f", out.ID, out.Score)
	return &out, nil
}

// ExamReview fetches the full review (questions plus recorded answers) for
// the results page.
func (c *Client) ExamReview(ctx context.Context, auth Auth, attemptID int64) (*models.ExamReview, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("attempt_id", attemptID)
	log.Debug("fetching exam review")

	var out models.ExamReview
	path := fmt.Sprintf("/exam-attempts/%d/review/", attemptID)
	if err := c.do(ctx, http.MethodGet, path, auth, nil, &out); err != nil {
		log.Error("failed to fetch exam review: %v", err)
		return nil, err
	}
	return &out, nil
}
