package auth

import (
	"context"
	"time"
)

// AttemptFunc is one poll attempt. Returning a non-nil value stops the poll.
// Returning (nil, nil) means "no result yet, keep polling". A non-nil error
// aborts the poll immediately; attempts are expected to map transport-level
// failures (network errors, non-2xx pending responses) to (nil, nil)
// themselves, since the server signals "user has not approved yet" the same
// way it signals a blip.
type AttemptFunc[T any] func(ctx context.Context) (*T, error)

// Poll repeatedly invokes attempt, waiting interval before every attempt
// including the first (the server needs interval seconds before the code
// becomes pollable). It stops on the first attempt that yields a result, or
// when the next attempt would land past deadline, in which case it returns
// (nil, nil) and the caller decides whether absence is fatal. An attempt
// that would complete its wait at N*interval runs iff N*interval <= deadline.
//
// The wait is a suspension point: cancellation of ctx is honored at every
// iteration boundary and aborts with ctx.Err().
func Poll[T any](ctx context.Context, interval, deadline time.Duration, attempt AttemptFunc[T]) (*T, error) {
	start := time.Now()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		if time.Since(start)+interval > deadline {
			return nil, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		result, err := attempt(ctx)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
		timer.Reset(interval)
	}
}
