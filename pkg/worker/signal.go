package worker

import "sync"

// Signal is a one-shot termination flag shared between a worker's handles
// and its task body. Firing is idempotent: concurrent requests collapse to a
// single observable transition and the signal never unsets.
type Signal struct {
	once sync.Once
	done chan struct{}
}

func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Fire sets the signal. Safe to call any number of times from any goroutine.
func (s *Signal) Fire() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Done returns a channel that is closed once the signal has fired. It may be
// awaited repeatedly and concurrently; after the first firing every await
// resolves immediately.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Fired reports whether the signal has fired, without blocking.
func (s *Signal) Fired() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
