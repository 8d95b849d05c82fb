package submitqueue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/models"
	"github.com/lexprep/lexprep/internal/worker"
)

// recordingAPI counts delivery attempts and fails the first failN of them.
type recordingAPI struct {
	mu       sync.Mutex
	failN    int
	attempts int
	keys     []string
	done     chan struct{}
}

func newRecordingAPI(failN int) *recordingAPI {
	return &recordingAPI{failN: failN, done: make(chan struct{}, 16)}
}

func (a *recordingAPI) record(key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attempts++
	a.keys = append(a.keys, key)
	if a.attempts <= a.failN {
		return errors.NewUpstreamError(503, "unavailable", nil)
	}
	a.done <- struct{}{}
	return nil
}

func (a *recordingAPI) SubmitExamAnswer(_ context.Context, _ examapi.Auth, _ int64, _ models.AnswerSubmission, key string) error {
	return a.record(key)
}

func (a *recordingAPI) UpdateFlashcardProgress(_ context.Context, _ examapi.Auth, _ int64, _ models.FlashcardProgress, key string) error {
	return a.record(key)
}

func (a *recordingAPI) UpdateWatchProgress(_ context.Context, _ examapi.Auth, _ int64, _ int, key string) error {
	return a.record(key)
}

func (a *recordingAPI) UpdateReadingProgress(_ context.Context, _ examapi.Auth, _ int64, _ float64, key string) error {
	return a.record(key)
}

func (a *recordingAPI) stats() (int, []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attempts, append([]string(nil), a.keys...)
}

func startQueue(t *testing.T, api WriteAPI, maxRetries int) *Queue {
	t.Helper()
	pool := worker.NewPool(1, 8)
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	t.Cleanup(func() {
		cancel()
		pool.Stop()
	})
	return New(pool, api, maxRetries, time.Millisecond)
}

func TestQueueDeliversWrite(t *testing.T) {
	api := newRecordingAPI(0)
	q := startQueue(t, api, 3)

	q.EnqueueExamAnswer(examapi.Auth{Bearer: "tok"}, 42, models.AnswerSubmission{QuestionID: 101, SelectedAnswer: "A"})

	select {
	case <-api.done:
	case <-time.After(2 * time.Second):
		t.Fatal("write was not delivered")
	}

	attempts, keys := api.stats()
	assert.Equal(t, 1, attempts)
	require.Len(t, keys, 1)
	assert.NotEmpty(t, keys[0])
}

func TestQueueRetriesWithSameIdempotencyKey(t *testing.T) {
	api := newRecordingAPI(2)
	q := startQueue(t, api, 3)

	q.EnqueueWatchProgress(examapi.Auth{Bearer: "tok"}, 9, 300)

	select {
	case <-api.done:
	case <-time.After(2 * time.Second):
		t.Fatal("write was not delivered")
	}

	attempts, keys := api.stats()
	assert.Equal(t, 3, attempts)
	require.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, keys[0], keys[2])
}

func TestQueueGivesUpAfterMaxRetries(t *testing.T) {
	api := newRecordingAPI(100)
	q := startQueue(t, api, 2)

	q.EnqueueReadingProgress(examapi.Auth{Bearer: "tok"}, 5, 80)

	// 3 attempts at 1ms base delay finish well within this window.
	assert.Eventually(t, func() bool {
		attempts, _ := api.stats()
		return attempts == 3
	}, 2*time.Second, 10*time.Millisecond)

	// No further attempts after giving up.
	time.Sleep(50 * time.Millisecond)
	attempts, _ := api.stats()
	assert.Equal(t, 3, attempts)
}

func TestQueueDropsWhenSaturated(t *testing.T) {
	api := newRecordingAPI(0)

	// A pool that is never started: submissions pile up in the buffer.
	pool := worker.NewPool(1, 2)
	q := New(pool, api, 0, time.Millisecond)

	for i := 0; i < 5; i++ {
		q.EnqueueExamAnswer(examapi.Auth{}, 1, models.AnswerSubmission{QuestionID: int64(i)})
	}

	// The buffer holds two jobs; the rest were dropped, not blocked on.
	assert.Equal(t, 2, pool.QueueSize())
}
