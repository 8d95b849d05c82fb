package submitqueue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
	"github.com/lexprep/lexprep/internal/worker"
)

// Enqueuer is the write-behind boundary for fire-and-forget persistence.
// Enqueueing never blocks the interactive path and never reports failures
// back to it; terminal failures are logged only, and local state is never
// rolled back.
type Enqueuer interface {
	EnqueueExamAnswer(auth examapi.Auth, attemptID int64, sub models.AnswerSubmission)
	EnqueueFlashcardProgress(auth examapi.Auth, deckID int64, progress models.FlashcardProgress)
	EnqueueWatchProgress(auth examapi.Auth, videoID int64, watchedSeconds int)
	EnqueueReadingProgress(auth examapi.Auth, chapterID int64, readPercent float64)
}

// WriteAPI is the slice of the exam API the queue delivers to.
type WriteAPI interface {
	SubmitExamAnswer(ctx context.Context, auth examapi.Auth, attemptID int64, sub models.AnswerSubmission, idempotencyKey string) error
	UpdateFlashcardProgress(ctx context.Context, auth examapi.Auth, deckID int64, progress models.FlashcardProgress, idempotencyKey string) error
	UpdateWatchProgress(ctx context.Context, auth examapi.Auth, videoID int64, watchedSeconds int, idempotencyKey string) error
	UpdateReadingProgress(ctx context.Context, auth examapi.Auth, chapterID int64, readPercent float64, idempotencyKey string) error
}

// Queue implements Enqueuer on a bounded worker pool. Each write carries a
// UUID idempotency key so retried deliveries stay at-most-once upstream.
type Queue struct {
	pool       *worker.Pool
	api        WriteAPI
	maxRetries int
	baseDelay  time.Duration
	log        *logger.Logger
}

func New(pool *worker.Pool, api WriteAPI, maxRetries int, baseDelay time.Duration) *Queue {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return &Queue{
		pool:       pool,
		api:        api,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		log:        logger.Default().WithPrefix("submitqueue"),
	}
}

func (q *Queue) enqueue(name string, deliver func(ctx context.Context, key string) error) {
	job := &deliveryJob{
		name:       name,
		key:        uuid.NewString(),
		deliver:    deliver,
		maxRetries: q.maxRetries,
		baseDelay:  q.baseDelay,
	}
	if err := q.pool.Submit(job); err != nil {
		// Fire-and-forget contract: a saturated queue drops the write.
		q.log.Warn("dropping %s: %v", name, err)
	}
}

func (q *Queue) EnqueueExamAnswer(auth examapi.Auth, attemptID int64, sub models.AnswerSubmission) {
	q.enqueue("exam-answer", func(ctx context.Context, key string) error {
		return q.api.SubmitExamAnswer(ctx, auth, attemptID, sub, key)
	})
}

func (q *Queue) EnqueueFlashcardProgress(auth examapi.Auth, deckID int64, progress models.FlashcardProgress) {
	q.enqueue("flashcard-progress", func(ctx context.Context, key string) error {
		return q.api.UpdateFlashcardProgress(ctx, auth, deckID, progress, key)
	})
}

func (q *Queue) EnqueueWatchProgress(auth examapi.Auth, videoID int64, watchedSeconds int) {
	q.enqueue("watch-progress", func(ctx context.Context, key string) error {
		return q.api.UpdateWatchProgress(ctx, auth, videoID, watchedSeconds, key)
	})
}

func (q *Queue) EnqueueReadingProgress(auth examapi.Auth, chapterID int64, readPercent float64) {
	q.enqueue("reading-progress", func(ctx context.Context, key string) error {
		return q.api.UpdateReadingProgress(ctx, auth, chapterID, readPercent, key)
	})
}
