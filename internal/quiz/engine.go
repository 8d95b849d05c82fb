package quiz

import (
	"context"
	"sync"
	"time"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
)

// Engine mirrors one gamified topic-quiz attempt. The server is
// authoritative for correctness, lives, points, and streak; the engine only
// reflects responses and tracks the 50/50 elimination set for rendering.
type Engine struct {
	api  examapi.TopicQuizAPI
	auth examapi.Auth
	log  *logger.Logger

	mu         sync.Mutex
	attempt    *models.TopicQuizAttempt
	question   *models.TopicQuizQuestion
	lastResult *models.TopicAnswerResult
	eliminated []string
	terminal   bool
	submitting bool

	questionShownAt time.Time
}

func NewEngine(api examapi.TopicQuizAPI, auth examapi.Auth) *Engine {
	return &Engine{
		api:  api,
		auth: auth,
		log:  logger.Default().WithPrefix("quiz-engine"),
	}
}

// Start begins a fresh attempt for the topic and loads its first question.
func (e *Engine) Start(ctx context.Context, topicID int64) error {
	attempt, err := e.api.StartTopicQuiz(ctx, e.auth, topicID)
	if err != nil {
		return err
	}
	question, err := e.api.TopicQuizCurrentQuestion(ctx, e.auth, attempt.ID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.apply(attempt, question)
	e.mu.Unlock()
	return nil
}

// Resume reloads an existing attempt, fetching the attempt record and the
// current question concurrently.
func (e *Engine) Resume(ctx context.Context, attemptID int64) error {
	var (
		wg          sync.WaitGroup
		attempt     *models.TopicQuizAttempt
		question    *models.TopicQuizQuestion
		attemptErr  error
		questionErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		attempt, attemptErr = e.api.TopicQuizAttempt(ctx, e.auth, attemptID)
	}()
	go func() {
		defer wg.Done()
		question, questionErr = e.api.TopicQuizCurrentQuestion(ctx, e.auth, attemptID)
	}()
	wg.Wait()

	if attemptErr != nil {
		return attemptErr
	}
	if questionErr != nil {
		return questionErr
	}

	e.mu.Lock()
	e.apply(attempt, question)
	e.mu.Unlock()
	return nil
}

// callers must hold e.mu
func (e *Engine) apply(attempt *models.TopicQuizAttempt, question *models.TopicQuizQuestion) {
	if attempt.LivesRemaining < 0 {
		attempt.LivesRemaining = 0
	}
	e.attempt = attempt
	e.question = question
	e.terminal = attempt.Status != models.QuizStatusInProgress
	e.eliminated = nil
	e.questionShownAt = time.Now()
}

// SubmitAnswer posts one answer and applies the server's verdict. Once the
// attempt is terminal no further submissions are accepted. A failed
// submission leaves state untouched so the student can retry.
func (e *Engine) SubmitAnswer(ctx context.Context, questionID int64, selected string) (*models.TopicAnswerResult, error) {
	e.mu.Lock()
	if e.terminal {
		e.mu.Unlock()
		return nil, errors.NewConflictError("quiz attempt is already over")
	}
	if e.submitting {
		e.mu.Unlock()
		return nil, errors.NewConflictError("an answer submission is already in flight")
	}
	if e.question == nil || e.question.ID != questionID {
		e.mu.Unlock()
		return nil, errors.NewValidationError("question_id", "does not match the current question")
	}
	e.submitting = true
	attemptID := e.attempt.ID
	timeSpent := int(time.Since(e.questionShownAt).Seconds())
	e.mu.Unlock()

	result, err := e.api.SubmitTopicAnswer(ctx, e.auth, attemptID, models.TopicAnswerSubmission{
		QuestionID:       questionID,
		SelectedAnswer:   selected,
		TimeSpentSeconds: timeSpent,
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.submitting = false
	if err != nil {
		return nil, err
	}

	lives := result.LivesRemaining
	if lives < 0 {
		lives = 0
	}
	e.attempt.LivesRemaining = lives
	e.attempt.PointsEarned = result.PointsEarned
	e.attempt.CurrentStreak = result.CurrentStreak
	e.lastResult = result

	if result.QuizStatus != models.QuizStatusInProgress {
		e.attempt.Status = result.QuizStatus
		e.terminal = true
		e.question = nil
		e.log.Info("quiz attempt finished: attempt_id=%d, status=%s, points=%d", attemptID, result.QuizStatus, result.PointsEarned)
	} else if result.NextQuestion != nil {
		e.question = result.NextQuestion
		e.eliminated = nil
		e.questionShownAt = time.Now()
	}

	return result, nil
}

// UseFiftyFifty consumes the attempt's single 50/50 power-up. Once used it
// is a no-op returning the stored elimination set.
func (e *Engine) UseFiftyFifty(ctx context.Context) (*models.FiftyFiftyResult, error) {
	e.mu.Lock()
	if e.terminal {
		e.mu.Unlock()
		return nil, errors.NewConflictError("quiz attempt is already over")
	}
	if e.question == nil {
		e.mu.Unlock()
		return nil, errors.NewConflictError("no current question")
	}
	if e.attempt.FiftyFiftyUsed {
		result := &models.FiftyFiftyResult{EliminatedOptions: append([]string(nil), e.eliminated...)}
		e.mu.Unlock()
		return result, nil
	}
	attemptID := e.attempt.ID
	questionID := e.question.ID
	e.mu.Unlock()

	result, err := e.api.UseFiftyFifty(ctx, e.auth, attemptID, questionID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	e.attempt.FiftyFiftyUsed = true
	e.eliminated = append([]string(nil), result.EliminatedOptions...)
	return result, nil
}

// State is an immutable snapshot for rendering. RedirectToResults signals
// the client to navigate to the results page; the UI keeps the explanation
// visible briefly before following it.
type State struct {
	Attempt           *models.TopicQuizAttempt  `json:"attempt,omitempty"`
	Question          *models.TopicQuizQuestion `json:"question,omitempty"`
	LastResult        *models.TopicAnswerResult `json:"last_result,omitempty"`
	EliminatedOptions []string                  `json:"eliminated_options,omitempty"`
	RedirectToResults bool                      `json:"redirect_to_results"`
}

func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return State{
		Attempt:           e.attempt,
		Question:          e.question,
		LastResult:        e.lastResult,
		EliminatedOptions: append([]string(nil), e.eliminated...),
		RedirectToResults: e.terminal,
	}
}
