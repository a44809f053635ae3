package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// core carries the state shared by every clone of a worker handle: identity,
// the termination signal, the handle liveness count, and the task's terminal
// output.
type core[R any] struct {
	id        uuid.UUID
	spawnedAt time.Time
	sig       *Signal
	refs      atomic.Int32
	done      chan struct{}
	mu        sync.Mutex
	out       R
}

func newCore[R any]() *core[R] {
	c := &core[R]{
		id:        uuid.New(),
		spawnedAt: time.Now().UTC(),
		sig:       NewSignal(),
		done:      make(chan struct{}),
	}
	c.refs.Store(1)
	return c
}

// finish publishes the task's terminal output. Called exactly once, by the
// spawner goroutine, after the task body returned.
func (c *core[R]) finish(out R) {
	c.mu.Lock()
	c.out = out
	c.mu.Unlock()
	close(c.done)
}

func (c *core[R]) acquire() {
	c.refs.Add(1)
}

// release reports whether the last handle reference is now gone. The
// decrement-to-zero transition happens exactly once across all clones.
func (c *core[R]) release() bool {
	return c.refs.Add(-1) == 0
}

// ID identifies this worker.
func (c *core[R]) ID() uuid.UUID {
	return c.id
}

// SpawnedAt is the worker's creation time (UTC).
func (c *core[R]) SpawnedAt() time.Time {
	return c.spawnedAt
}

// Terminate requests cooperative termination of the task. It is advisory:
// the task must observe Terminated and exit on its own. Idempotent.
func (c *core[R]) Terminate() {
	c.sig.Fire()
}

// Done returns a channel that is closed once the task has exited.
func (c *core[R]) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the task exits and returns its terminal output, or
// ctx.Err() if ctx is done first. Safe to call from multiple goroutines and
// after Close.
func (c *core[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-c.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.out, nil
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Isolated is a worker whose task exchanges no messages: the task only
// observes the termination signal. OnMessage also returns an Isolated
// worker, since the relay owns the downstream inbound channel.
type Isolated[R any] struct {
	*core[R]
	closed atomic.Bool
}

// Spawn starts task as an isolated worker. The task body runs concurrently
// with the caller from this point; Spawn itself does not block.
func Spawn[R any](task Task[R]) *Isolated[R] {
	c := newCore[R]()
	ctl := &Control{sig: c.sig}

	go func() {
		c.finish(task(ctl))
	}()

	return &Isolated[R]{core: c}
}

// Clone returns a handle sharing this worker's termination signal and
// liveness count.
func (w *Isolated[R]) Clone() *Isolated[R] {
	w.core.acquire()
	return &Isolated[R]{core: w.core}
}

// Close releases this handle. Releasing the last clone requests termination,
// so a dropped worker never runs forever. Wait remains usable afterwards.
func (w *Isolated[R]) Close() {
	if !w.closed.CompareAndSwap(false, true) {
		return
	}
	if w.core.release() {
		w.sig.Fire()
	}
}

// OneWay is a worker the caller can post messages to; the task answers only
// with its terminal output.
type OneWay[In, R any] struct {
	*core[R]
	tx     *Sender[In]
	closed atomic.Bool
}

// SpawnOneWay starts task as a one-way worker with an inbound channel.
func SpawnOneWay[In, R any](task OneWayTask[In, R], opts ...Option) *OneWay[In, R] {
	cfg := newConfig(opts)
	c := newCore[R]()
	tx, rx := newPipe[In](cfg.inBuf)

	runOneWay(c, rx, task)

	return &OneWay[In, R]{core: c, tx: tx}
}

// runOneWay wires a one-way task body to an existing inbound receiver and
// starts it. The receiver is closed as soon as the body returns, so later
// posts fail with ErrClosed before the output becomes observable.
func runOneWay[In, R any](c *core[R], rx *Receiver[In], task OneWayTask[In, R]) {
	h := &Handle[In]{rx: rx, ctl: &Control{sig: c.sig}}

	go func() {
		out := task(h)
		rx.Close()
		c.finish(out)
	}()
}

// PostMessage sends msg into the task's inbound channel, blocking while the
// channel is full. It fails with ErrClosed once the task has exited or this
// handle was closed.
func (w *OneWay[In, R]) PostMessage(ctx context.Context, msg In) error {
	return w.tx.Send(ctx, msg)
}

// CloseSend closes this handle's sending side without releasing the handle.
// Once every clone has done so the task observes end-of-stream on its inbox
// after draining. Idempotent.
func (w *OneWay[In, R]) CloseSend() {
	w.tx.Close()
}

// Clone returns a handle sharing this worker's channels, termination signal
// and liveness count.
func (w *OneWay[In, R]) Clone() *OneWay[In, R] {
	w.core.acquire()
	return &OneWay[In, R]{core: w.core, tx: w.tx.Clone()}
}

// Close releases this handle: its sending side closes and, when this was the
// last clone, termination is requested. Wait remains usable afterwards.
func (w *OneWay[In, R]) Close() {
	if !w.closed.CompareAndSwap(false, true) {
		return
	}
	w.tx.Close()
	if w.core.release() {
		w.sig.Fire()
	}
}

// TwoWay is a worker the caller can post messages to and receive messages
// from. Its outbound stream has a single consumer: either RecvNext on the
// handle, or one downstream worker attached with OnMessage.
type TwoWay[In, Out, R any] struct {
	*core[R]
	tx     *Sender[In]
	sub    *subscription[Out]
	closed atomic.Bool
}

// subscription guards the outbound receiver shared by handle clones. Taking
// it (OnMessage, or the last Close) leaves nil behind, so RecvNext reports
// end-of-stream from then on.
type subscription[Out any] struct {
	mu sync.Mutex
	rx *Receiver[Out]
}

func (s *subscription[Out]) get() *Receiver[Out] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rx
}

func (s *subscription[Out]) take() *Receiver[Out] {
	s.mu.Lock()
	defer s.mu.Unlock()
	rx := s.rx
	s.rx = nil
	return rx
}

// SpawnTwoWay starts task as a two-way worker with an inbound and an
// outbound channel.
func SpawnTwoWay[In, Out, R any](task TwoWayTask[In, Out, R], opts ...Option) *TwoWay[In, Out, R] {
	cfg := newConfig(opts)
	c := newCore[R]()
	tx, rx := newPipe[In](cfg.inBuf)
	otx, orx := newPipe[Out](cfg.outBuf)

	h := &DuplexHandle[In, Out]{
		rx:  rx,
		out: &Outbox[Out]{Control: &Control{sig: c.sig}, tx: otx},
	}

	go func() {
		out := task(h)
		rx.Close()
		otx.Close()
		c.finish(out)
	}()

	return &TwoWay[In, Out, R]{
		core: c,
		tx:   tx,
		sub:  &subscription[Out]{rx: orx},
	}
}

// PostMessage sends msg into the task's inbound channel, blocking while the
// channel is full. It fails with ErrClosed once the task has exited or this
// handle was closed.
func (w *TwoWay[In, Out, R]) PostMessage(ctx context.Context, msg In) error {
	return w.tx.Send(ctx, msg)
}

// RecvNext yields the next message emitted by the task, in emission order.
// It reports false once the task has exited and the stream is drained, when
// ctx is done, or when the outbound stream was handed to a subscriber via
// OnMessage; the false state is stable across repeated calls.
func (w *TwoWay[In, Out, R]) RecvNext(ctx context.Context) (Out, bool) {
	rx := w.sub.get()
	if rx == nil {
		var zero Out
		return zero, false
	}
	return rx.Recv(ctx)
}

// CloseSend closes this handle's sending side without releasing the handle,
// letting the caller drain RecvNext to end-of-stream after the task drained
// its inbox and exited. Idempotent.
func (w *TwoWay[In, Out, R]) CloseSend() {
	w.tx.Close()
}

// Clone returns a handle sharing this worker's channels, termination signal
// and liveness count.
func (w *TwoWay[In, Out, R]) Clone() *TwoWay[In, Out, R] {
	w.core.acquire()
	return &TwoWay[In, Out, R]{core: w.core, tx: w.tx.Clone(), sub: w.sub}
}

// Close releases this handle: its sending side closes and, when this was the
// last clone, the outbound receiver (if still owned) closes and termination
// is requested. Wait remains usable afterwards.
func (w *TwoWay[In, Out, R]) Close() {
	if !w.closed.CompareAndSwap(false, true) {
		return
	}
	w.tx.Close()
	if w.core.release() {
		if rx := w.sub.take(); rx != nil {
			rx.Close()
		}
		w.sig.Fire()
	}
}
