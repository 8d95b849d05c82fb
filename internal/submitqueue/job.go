package submitqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/lexprep/lexprep/internal/logger"
)

// deliveryJob retries one upstream write with exponential backoff. The same
// idempotency key is reused across retries so the server can deduplicate.
type deliveryJob struct {
	name       string
	key        string
	deliver    func(ctx context.Context, key string) error
	maxRetries int
	baseDelay  time.Duration
}

func (j *deliveryJob) Name() string {
	return fmt.Sprintf("%s[%s]", j.name, j.key)
}

func (j *deliveryJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 0; ; attempt++ {
		err = j.deliver(ctx, j.key)
		if err == nil {
			return nil
		}
		if attempt >= j.maxRetries {
			break
		}

		delay := j.baseDelay << attempt
		log.Warn("delivery failed (attempt %d/%d), retrying in %v: %v", attempt+1, j.maxRetries+1, delay, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", j.maxRetries+1, err)
}
