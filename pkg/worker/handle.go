package worker

import "context"

// Control is the minimal task-side handle: it can await and request
// termination and nothing else.
type Control struct {
	sig *Signal
}

// Terminated returns a channel that is closed once termination has been
// requested, either explicitly or because the last external handle was
// released. It is safe to await in every loop iteration; once fired it
// resolves immediately every subsequent time.
func (c *Control) Terminated() <-chan struct{} {
	return c.sig.Done()
}

// Terminate requests termination of this worker from the task side.
func (c *Control) Terminate() {
	c.sig.Fire()
}

// Handle is the task-side endpoint of a one-way worker.
type Handle[In any] struct {
	rx  *Receiver[In]
	ctl *Control
}

// Receiver splits the handle into the inbound receiver and a control handle,
// so the task loop can select over "next message" and "terminated".
func (h *Handle[In]) Receiver() (*Receiver[In], *Control) {
	return h.rx, h.ctl
}

// DuplexHandle is the task-side endpoint of a two-way worker.
type DuplexHandle[In, Out any] struct {
	rx  *Receiver[In]
	out *Outbox[Out]
}

// Receiver splits the handle into the inbound receiver and the outbox used
// to publish messages back to the worker.
func (h *DuplexHandle[In, Out]) Receiver() (*Receiver[In], *Outbox[Out]) {
	return h.rx, h.out
}

// Outbox is the sending half of a two-way task: messages posted here surface
// on the worker's RecvNext, or feed a downstream worker after OnMessage.
type Outbox[Out any] struct {
	*Control
	tx *Sender[Out]
}

// PostMessage publishes msg on the worker's outbound stream. It fails with
// ErrClosed once every external handle has been released.
func (o *Outbox[Out]) PostMessage(ctx context.Context, msg Out) error {
	return o.tx.Send(ctx, msg)
}
