package worker

// DefaultBuffer is the channel capacity used when no option overrides it.
const DefaultBuffer = 1000

// Option configures a spawn.
type Option func(*config)

type config struct {
	inBuf  int
	outBuf int
}

func newConfig(opts []Option) config {
	c := config{
		inBuf:  DefaultBuffer,
		outBuf: DefaultBuffer,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithInboundBuffer sets the inbound channel capacity. Zero makes posting
// rendezvous with the task.
func WithInboundBuffer(n int) Option {
	return func(c *config) {
		c.inBuf = n
	}
}

// WithOutboundBuffer sets the outbound channel capacity of a two-way worker.
func WithOutboundBuffer(n int) Option {
	return func(c *config) {
		c.outBuf = n
	}
}
