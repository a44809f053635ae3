// Package worker provides a small primitive, modeled on the web-worker
// interface, for running a concurrent task that exchanges typed messages
// with the code that spawned it.
//
// A worker is a task body plus the caller-facing handle used to talk to it.
// The communication shape is selected at compile time by the worker type:
// - Isolated: the task only observes termination
// - OneWay: the caller posts messages into the task
// - TwoWay: the caller posts messages and receives messages back
//
// Highlights:
// - Spawn/SpawnOneWay/SpawnTwoWay: start a task and obtain its handle
// - PostMessage/RecvNext: exchange messages with the running task
// - OnMessage: chain a worker's output stream into a new downstream worker
// - Terminate/Close: cooperative shutdown; releasing the last handle
//   requests termination so a forgotten worker does not run forever
// - Wait: collect the task's terminal output
//
// Termination is advisory, never preemptive: the library fires a one-shot
// signal and the task is expected to observe it and exit its loop. A task
// that never checks Terminated (and never drains its inbox to end-of-stream)
// runs forever; that is a caller responsibility, not a library failure.
package worker
