// Package client
package client

import (
	"context"
	"errors"
	"time"
)

type FetchStatus int

const (
	FetchOk FetchStatus = iota
	FetchTimedOut
	FetchFailed
)

// FetchResult is the discriminated outcome of a bounded fetch. The
// caller decides what to do with a timeout, typically substituting
// placeholder data on the public board.
type FetchResult[T any] struct {
	Status FetchStatus
	Data   T
	Err    error
}

func (r FetchResult[T]) Ok() bool { return r.Status == FetchOk }

// FetchWithTimeout runs fn under a deadline and classifies the outcome
// as Ok, TimedOut, or Failed.
func FetchWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) FetchResult[T] {
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := fn(fetchCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return FetchResult[T]{Status: FetchTimedOut, Err: err}
		}
		return FetchResult[T]{Status: FetchFailed, Err: err}
	}
	return FetchResult[T]{Status: FetchOk, Data: data}
}
