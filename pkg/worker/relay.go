package worker

import "context"

// OnMessage chains the outbound stream of a two-way worker into a newly
// spawned downstream task: every message the upstream task emits is
// delivered to the downstream inbound channel in emission order, with no
// duplication and no drop. The call consumes the upstream outbound receiver,
// so a worker has at most one active subscriber; a second call fails with
// ErrSubscribed and RecvNext on the upstream handle reports end-of-stream
// from the first call on.
//
// The returned worker is isolated: the relay owns the downstream inbound
// channel, so external code can only terminate the subscriber or wait for
// its output. Closing it terminates the subscriber but not the upstream
// worker.
func OnMessage[In, Out, R, R2 any](upstream *TwoWay[In, Out, R], task OneWayTask[Out, R2], opts ...Option) (*Isolated[R2], error) {
	urx := upstream.sub.take()
	if urx == nil {
		return nil, ErrSubscribed
	}

	cfg := newConfig(opts)
	c := newCore[R2]()
	dtx, drx := newPipe[Out](cfg.inBuf)

	runOneWay(c, drx, task)

	// Pump upstream emissions downstream. Upstream end-of-stream closes the
	// downstream inbox so the subscriber drains and exits; a dead subscriber
	// surfaces as ErrClosed here, after which further upstream emissions fail
	// at the relay boundary. Nothing is re-routed or resurrected.
	go func() {
		defer urx.Close()
		defer dtx.Close()
		for v := range urx.C() {
			if err := dtx.Send(context.Background(), v); err != nil {
				return
			}
		}
	}()

	return &Isolated[R2]{core: c}, nil
}
