package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// pipe is one direction of flow between a worker handle and its task: a
// buffered payload channel plus a liveness channel for the receiving side.
// The payload channel is closed by the last sender clone (end-of-stream);
// the liveness channel is closed when the receiver is gone, which senders
// observe on their next Send.
type pipe[T any] struct {
	ch       chan T
	gone     chan struct{}
	senders  atomic.Int32
	goneOnce sync.Once
}

func newPipe[T any](buffer int) (*Sender[T], *Receiver[T]) {
	if buffer < 0 {
		buffer = 0
	}
	p := &pipe[T]{
		ch:   make(chan T, buffer),
		gone: make(chan struct{}),
	}
	p.senders.Store(1)
	return &Sender[T]{p: p}, &Receiver[T]{p: p}
}

// Sender is the producing endpoint of a channel pair. Clones share the
// underlying pipe; each clone must be closed independently and a clone must
// not be used to Send after its own Close.
type Sender[T any] struct {
	p      *pipe[T]
	closed atomic.Bool
}

// Send delivers v to the receiving side in per-sender FIFO order. It blocks
// while the buffer is full, fails with ErrClosed once the receiver is gone,
// and fails with ctx.Err() on cancellation. Backpressure is suspension, not
// an error.
func (s *Sender[T]) Send(ctx context.Context, v T) error {
	if s.closed.Load() {
		return ErrClosed
	}

	select {
	case <-s.p.gone:
		return ErrClosed
	default:
	}

	select {
	case s.p.ch <- v:
		return nil
	case <-s.p.gone:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Clone returns a sender sharing the same pipe. A clone of an already closed
// sender is itself closed.
func (s *Sender[T]) Clone() *Sender[T] {
	c := &Sender[T]{p: s.p}
	if s.closed.Load() {
		c.closed.Store(true)
		return c
	}
	s.p.senders.Add(1)
	return c
}

// Close releases this sender clone. When the last clone is closed the
// payload channel closes, which the receiver observes as end-of-stream after
// draining. Close is idempotent.
func (s *Sender[T]) Close() {
	if s.closed.CompareAndSwap(false, true) {
		if s.p.senders.Add(-1) == 0 {
			close(s.p.ch)
		}
	}
}

// Receiver is the consuming endpoint of a channel pair. At most one
// goroutine may consume from it at a time.
type Receiver[T any] struct {
	p      *pipe[T]
	closed atomic.Bool
}

// C exposes the payload channel for select loops and range. The channel is
// closed once every sender clone has closed, so a drain loop observes every
// buffered message followed by end-of-stream.
func (r *Receiver[T]) C() <-chan T {
	return r.p.ch
}

// Recv returns the next message in FIFO order. It reports false on
// end-of-stream, after the receiver was closed, or when ctx is done.
func (r *Receiver[T]) Recv(ctx context.Context) (T, bool) {
	var zero T
	if r.closed.Load() {
		return zero, false
	}

	select {
	case v, ok := <-r.p.ch:
		if !ok {
			return zero, false
		}
		return v, true
	case <-ctx.Done():
		return zero, false
	}
}

// Close marks the receiving side gone. Senders observe ErrClosed on their
// next operation rather than being interrupted; buffered messages are
// discarded. Close is idempotent.
func (r *Receiver[T]) Close() {
	r.closed.Store(true)
	r.p.goneOnce.Do(func() {
		close(r.p.gone)
	})
}
