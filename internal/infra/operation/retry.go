package operation

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
)

// DefaultMaxRetries is the number of retries after the first attempt.
const DefaultMaxRetries = 3

// FetchWithRetry runs fn once and then retries it immediately up to
// maxRetries times while the error is retryable.
func FetchWithRetry[T any](ctx context.Context, maxRetries int, fn func(ctx context.Context) (T, error)) (T, error) {
	var (
		result   T
		attempts int
	)

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(maxRetries)),
		ctx,
	)

	err := backoff.Retry(func() error {
		attempts++
		v, err := fn(ctx)
		if err != nil {
			if ClassifyError(ctx, err) == ActionFatal {
				return backoff.Permanent(err)
			}
			return err
		}
		result = v
		return nil
	}, policy)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed after %d attempts: %w", attempts, err)
	}

	return result, nil
}
