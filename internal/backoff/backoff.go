// Package backoff provides the retry policy for store writes: bounded
// attempts, jitter-free exponential delay, and a retryable/fatal split so
// validation failures never burn retries.
package backoff

import (
	"context"
	"errors"
	"math"
	"time"
)

// Policy describes one retry discipline. The zero value retries nothing;
// use DefaultPolicy for the standard ledger-write discipline.
type Policy struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultPolicy returns the standard policy for transient store failures.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 4,
		InitialWait: 50 * time.Millisecond,
		MaxWait:     2 * time.Second,
		Multiplier:  2.0,
	}
}

// PermanentError marks an error as non-retryable: validation and
// authorization failures propagate immediately.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so Do fails fast on it. A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Do runs op until it succeeds, a fatal error occurs, the context ends,
// or attempts run out. The last error is returned on exhaustion.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}
		if attempt == p.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.wait(attempt)):
		}
	}

	return lastErr
}

// shouldRetry classifies an error. Context errors and permanent errors
// are fatal; everything else is treated as transient.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var perm *PermanentError
	return !errors.As(err, &perm)
}

// wait computes the delay before the next attempt. No jitter: the engine
// is request/response with a single writer per learner, so spreading
// retries buys nothing.
func (p Policy) wait(attempt int) time.Duration {
	wait := float64(p.InitialWait) * math.Pow(p.Multiplier, float64(attempt))
	if wait > float64(p.MaxWait) {
		wait = float64(p.MaxWait)
	}
	return time.Duration(wait)
}
