package worker

// Task is the body of an isolated worker: it receives a control handle and
// yields a terminal output when it exits. The task owns its handle
// exclusively and is expected to observe Terminated and return.
type Task[R any] func(ctl *Control) R

// OneWayTask is the body of a one-way worker: it consumes inbound messages
// of type In and yields a terminal output when it exits.
type OneWayTask[In, R any] func(h *Handle[In]) R

// TwoWayTask is the body of a two-way worker: it consumes inbound messages
// of type In, emits messages of type Out through its outbox, and yields a
// terminal output when it exits.
type TwoWayTask[In, Out, R any] func(h *DuplexHandle[In, Out]) R
