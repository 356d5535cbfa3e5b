// Package retry wraps remote calls with bounded exponential-backoff retry.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// StatusCarrier is implemented by errors that carry an HTTP-like status
// code. Only such errors are considered for retry classification.
type StatusCarrier interface {
	HTTPStatus() int
}

// Retryable reports whether err is worth retrying: rate limiting (429) or
// a server-side failure (>= 500). Everything else is terminal.
func Retryable(err error) bool {
	var sc StatusCarrier
	if !errors.As(err, &sc) {
		return false
	}
	code := sc.HTTPStatus()
	return code == 429 || code >= 500
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
// Overridable in tests.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do invokes op up to maxAttempts times total. Terminal errors are returned
// immediately; retryable ones wait 2^i seconds (i starting at 0) between
// attempts. The last observed error is returned unchanged once attempts are
// exhausted.
func Do[T any](ctx context.Context, maxAttempts int, op func(ctx context.Context) (T, error)) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !Retryable(err) {
			return zero, err
		}

		if attempt < maxAttempts-1 {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			slog.Warn("retrying remote call", "wait", wait, "attempt", attempt+1, "max_attempts", maxAttempts, "error", err)
			if serr := sleep(ctx, wait); serr != nil {
				return zero, serr
			}
		}
	}
	return zero, lastErr
}
