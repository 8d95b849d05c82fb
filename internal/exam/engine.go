package exam

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
	"github.com/lexprep/lexprep/internal/submitqueue"
)

// Phase is the loading/lifecycle state of a mock-exam session. Loading
// phases advance strictly in order; a failure in any of them is terminal
// and the only recovery is starting a new session.
type Phase string

const (
	PhaseInitializing     Phase = "initializing"
	PhaseCreatingAttempt  Phase = "creating-attempt"
	PhaseLoadingQuestions Phase = "loading-questions"
	PhaseLoadingConfig    Phase = "loading-config"
	PhaseReady            Phase = "ready"
	PhaseCompleted        Phase = "completed"
	PhaseError            Phase = "error"
)

// AnswerState tracks the current question's interaction state. "navigated"
// means the question was answered earlier and revisited; it renders feedback
// like "answered" but is distinct so a revisit can never resubmit.
type AnswerState string

const (
	AnswerUnanswered AnswerState = "unanswered"
	AnswerAnswered   AnswerState = "answered"
	AnswerNavigated  AnswerState = "navigated"
)

// RecordedAnswer is the local record of one answered question.
type RecordedAnswer struct {
	Answer    string `json:"answer"`
	IsCorrect bool   `json:"is_correct"`
}

// UnansweredError gates Finish until the caller confirms leaving questions
// unanswered.
type UnansweredError struct {
	Count int
}

func (e *UnansweredError) Error() string {
	return fmt.Sprintf("%d unanswered question(s)", e.Count)
}

// Defaults are the fallback timing values when the server config omits them.
type Defaults struct {
	DurationSeconds    int
	SpeedReaderSeconds int
}

// Engine drives one timed mock-exam attempt: the countdown clock, the
// speed-reader auto-advance, per-question answer state, and write-behind
// answer submission. All methods are safe for concurrent use.
type Engine struct {
	api      examapi.ExamAPI
	queue    submitqueue.Enqueuer
	auth     examapi.Auth
	defaults Defaults
	log      *logger.Logger

	mu       sync.Mutex
	phase    Phase
	errMsg   string
	gen      uint64
	attempt  *models.ExamAttempt
	question []models.Question
	timing   models.ExamTimingConfig

	timeLeft           int
	expired            bool
	speedReaderEnabled bool
	speedReaderTime    int

	current     int
	selected    string
	answerState AnswerState
	answered    map[int]RecordedAnswer
	submitted   map[int]struct{}

	questionShownAt time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewEngine(api examapi.ExamAPI, queue submitqueue.Enqueuer, auth examapi.Auth, defaults Defaults) *Engine {
	return &Engine{
		api:         api,
		queue:       queue,
		auth:        auth,
		defaults:    defaults,
		log:         logger.Default().WithPrefix("exam-engine"),
		phase:       PhaseInitializing,
		answerState: AnswerUnanswered,
		answered:    map[int]RecordedAnswer{},
		submitted:   map[int]struct{}{},
		stop:        make(chan struct{}),
	}
}

func (e *Engine) setPhase(p Phase) {
	e.mu.Lock()
	e.phase = p
	e.mu.Unlock()
}

// Start runs the loading chain: create attempt, fetch questions, fetch
// timing config. Any failure aborts the chain and leaves the engine in the
// terminal error phase; no retry is attempted.
func (e *Engine) Start(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("exam-engine")

	e.setPhase(PhaseCreatingAttempt)
	attempt, err := e.api.StartExamAttempt(ctx, e.auth)
	if err != nil {
		return e.fail(log, "creating attempt", err)
	}

	e.setPhase(PhaseLoadingQuestions)
	questions, err := e.api.ExamQuestions(ctx, e.auth, attempt.ID)
	if err != nil {
		return e.fail(log, "loading questions", err)
	}
	if len(questions) == 0 {
		return e.fail(log, "loading questions", errors.NewUpstreamError(0, "attempt has no questions", nil))
	}

	e.setPhase(PhaseLoadingConfig)
	timing, err := e.api.ExamTimingConfig(ctx, e.auth)
	if err != nil {
		return e.fail(log, "loading config", err)
	}

	e.mu.Lock()
	e.attempt = attempt
	e.question = questions
	e.timing = *timing
	e.timeLeft = e.durationSeconds()
	e.speedReaderTime = e.speedReaderSeconds()
	e.questionShownAt = time.Now()
	e.phase = PhaseReady
	e.mu.Unlock()

	log.Info("exam session ready: attempt_id=%d, questions=%d, duration=%ds", attempt.ID, len(questions), timing.DurationSeconds)
	return nil
}

func (e *Engine) fail(log *logger.Logger, step string, err error) error {
	log.Error("exam session failed while %s: %v", step, err)
	e.mu.Lock()
	e.phase = PhaseError
	e.errMsg = err.Error()
	e.mu.Unlock()
	return err
}

// callers must hold e.mu
func (e *Engine) durationSeconds() int {
	if e.timing.DurationSeconds > 0 {
		return e.timing.DurationSeconds
	}
	return e.defaults.DurationSeconds
}

// callers must hold e.mu
func (e *Engine) speedReaderSeconds() int {
	if e.timing.SpeedReaderSeconds > 0 {
		return e.timing.SpeedReaderSeconds
	}
	return e.defaults.SpeedReaderSeconds
}

// RunClock drives the 1 Hz tick until the engine is closed.
func (e *Engine) RunClock() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Tick advances both countdowns by one second. The main countdown and the
// speed reader are independent: neither pauses the other. timeLeft never
// goes below zero.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseReady {
		return
	}

	if e.timeLeft > 0 {
		e.timeLeft--
		if e.timeLeft == 0 {
			e.expired = true
			e.log.Info("exam time expired: attempt_id=%d", e.attempt.ID)
		}
	}

	if e.speedReaderEnabled && e.answerState != AnswerUnanswered {
		e.speedReaderTime--
		if e.speedReaderTime <= 0 {
			e.advanceToNextUnanswered()
			e.speedReaderTime = e.speedReaderSeconds()
		}
	}
}

// callers must hold e.mu
func (e *Engine) advanceToNextUnanswered() {
	for i := e.current + 1; i < len(e.question); i++ {
		if _, done := e.answered[i]; !done {
			e.current = i
			e.restoreCurrent()
			e.questionShownAt = time.Now()
			return
		}
	}
	// Nothing left to advance to.
}

// callers must hold e.mu
func (e *Engine) restoreCurrent() {
	if rec, ok := e.answered[e.current]; ok {
		e.selected = rec.Answer
		e.answerState = AnswerNavigated
		return
	}
	e.selected = ""
	e.answerState = AnswerUnanswered
}

// SelectAnswer records an answer for the current question. Re-invocations on
// an already-answered question are no-ops, so the background submission
// fires at most once per question index. Correctness comes from the
// server-supplied correct_answer field in the question payload; the results
// page re-fetches the authoritative review.
func (e *Engine) SelectAnswer(label string) (*RecordedAnswer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseReady {
		return nil, errors.NewConflictError("exam session is not in progress")
	}
	if e.answerState != AnswerUnanswered {
		rec := e.answered[e.current]
		return &rec, nil
	}

	q := e.question[e.current]
	if !hasOption(q, label) {
		return nil, errors.NewValidationError("answer", "not one of the question's options")
	}

	rec := RecordedAnswer{Answer: label, IsCorrect: label == q.CorrectAnswer}
	e.answered[e.current] = rec
	e.selected = label
	e.answerState = AnswerAnswered

	if _, done := e.submitted[e.current]; !done {
		e.submitted[e.current] = struct{}{}
		timeSpent := int(time.Since(e.questionShownAt).Seconds())
		e.queue.EnqueueExamAnswer(e.auth, e.attempt.ID, models.AnswerSubmission{
			QuestionID:       q.ID,
			SelectedAnswer:   label,
			TimeSpentSeconds: timeSpent,
		})
	}

	return &rec, nil
}

func hasOption(q models.Question, label string) bool {
	for _, opt := range q.Options {
		if opt.Label == label {
			return true
		}
	}
	return false
}

// Next moves to the following question; disabled past the last one.
func (e *Engine) Next() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseReady {
		return errors.NewConflictError("exam session is not in progress")
	}
	if e.current >= len(e.question)-1 {
		return errors.NewValidationError("navigation", "already on the last question")
	}
	e.current++
	e.restoreCurrent()
	e.questionShownAt = time.Now()
	return nil
}

// Previous moves back one question, restoring the recorded answer if any.
func (e *Engine) Previous() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseReady {
		return errors.NewConflictError("exam session is not in progress")
	}
	if e.current == 0 {
		return errors.NewValidationError("navigation", "already on the first question")
	}
	e.current--
	e.restoreCurrent()
	e.questionShownAt = time.Now()
	return nil
}

// SetSpeedReader toggles the auto-advance countdown. Enabling resets the
// per-question timer to the configured seconds.
func (e *Engine) SetSpeedReader(enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseReady {
		return errors.NewConflictError("exam session is not in progress")
	}
	e.speedReaderEnabled = enabled
	if enabled {
		e.speedReaderTime = e.speedReaderSeconds()
	}
	return nil
}

// Finish marks the attempt completed upstream. When unanswered questions
// remain and confirm is false, it returns an UnansweredError so the caller
// can ask for confirmation. A failed completion preserves all local state so
// finishing can be retried.
func (e *Engine) Finish(ctx context.Context, confirm bool) (*models.ExamAttempt, error) {
	e.mu.Lock()
	if e.phase == PhaseCompleted {
		e.mu.Unlock()
		return nil, errors.NewConflictError("exam attempt is already completed")
	}
	if e.phase != PhaseReady {
		e.mu.Unlock()
		return nil, errors.NewConflictError("exam session is not in progress")
	}

	unanswered := len(e.question) - len(e.answered)
	if unanswered > 0 && !confirm {
		e.mu.Unlock()
		return nil, &UnansweredError{Count: unanswered}
	}

	gen := e.gen
	attemptID := e.attempt.ID
	timeSpent := e.durationSeconds() - e.timeLeft
	e.mu.Unlock()

	attempt, err := e.api.CompleteExamAttempt(ctx, e.auth, attemptID, timeSpent)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		// The session was closed or replaced while the PATCH was in flight;
		// a late response must not resurrect it.
		return nil, errors.NewConflictError("exam session is no longer active")
	}
	if err != nil {
		return nil, err
	}

	e.attempt = attempt
	e.phase = PhaseCompleted
	e.stopClock()
	return attempt, nil
}

// Close stops the clock and invalidates in-flight operations.
func (e *Engine) Close() {
	e.mu.Lock()
	e.gen++
	e.stopClock()
	e.mu.Unlock()
}

// callers must hold e.mu
func (e *Engine) stopClock() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// State is an immutable snapshot for rendering.
type State struct {
	Phase              Phase                  `json:"phase"`
	Error              string                 `json:"error,omitempty"`
	Attempt            *models.ExamAttempt    `json:"attempt,omitempty"`
	Questions          []models.Question      `json:"questions,omitempty"`
	TimeLeft           int                    `json:"time_left"`
	Expired            bool                   `json:"expired"`
	SpeedReaderEnabled bool                   `json:"speed_reader_enabled"`
	SpeedReaderTime    int                    `json:"speed_reader_time"`
	CurrentQuestion    int                    `json:"current_question"`
	SelectedAnswer     string                 `json:"selected_answer,omitempty"`
	AnswerState        AnswerState            `json:"answer_state"`
	AnsweredQuestions  map[int]RecordedAnswer `json:"answered_questions"`
	UnansweredCount    int                    `json:"unanswered_count"`
}

// Snapshot copies the session state for the API layer.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	answered := make(map[int]RecordedAnswer, len(e.answered))
	for k, v := range e.answered {
		answered[k] = v
	}

	return State{
		Phase:              e.phase,
		Error:              e.errMsg,
		Attempt:            e.attempt,
		Questions:          e.question,
		TimeLeft:           e.timeLeft,
		Expired:            e.expired,
		SpeedReaderEnabled: e.speedReaderEnabled,
		SpeedReaderTime:    e.speedReaderTime,
		CurrentQuestion:    e.current,
		SelectedAnswer:     e.selected,
		AnswerState:        e.answerState,
		AnsweredQuestions:  answered,
		UnansweredCount:    len(e.question) - len(answered),
	}
}
