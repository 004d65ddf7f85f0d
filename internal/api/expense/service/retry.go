package expenseService

import (
	"ExpenseLedger/pkg/response"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/context"
)

const (
	readAttempts = 3
	readBackoff  = 50 * time.Millisecond
)

func readPolicy(ctx context.Context) backoff.BackOff {
	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(readBackoff),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
	)
	return backoff.WithContext(backoff.WithMaxRetries(policy, readAttempts-1), ctx)
}

// retryRead runs an idempotent read, retrying storage faults.
// Validation and not-found errors are returned immediately.
func retryRead[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	return backoff.RetryWithData(func() (T, error) {
		result, err := fn()
		if err != nil && !response.IsStorage(err) {
			return result, backoff.Permanent(err)
		}
		return result, err
	}, readPolicy(ctx))
}
