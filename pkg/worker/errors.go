package worker

import (
	"context"
	"errors"
)

var (
	// ErrClosed is returned by a send when the receiving side is gone, and
	// by a task-side PostMessage once every external handle was released.
	ErrClosed = errors.New("worker: channel closed")

	// ErrSubscribed is returned by OnMessage when the worker's outbound
	// stream has already been handed to a subscriber.
	ErrSubscribed = errors.New("worker: outbound stream already subscribed")
)

// IsClosed reports whether err means the receiving side is gone.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsCancellation reports whether err comes from context cancellation rather
// than from the worker machinery itself.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
