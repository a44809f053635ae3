package worker

import "context"

// Poster is the message-sending side shared by one-way and two-way workers.
type Poster[In any] interface {
	PostMessage(ctx context.Context, msg In) error
}

// PostAll posts each value to the worker in order, stopping at the first
// failed send and returning its error.
func PostAll[In any](ctx context.Context, w Poster[In], values ...In) error {
	for _, v := range values {
		if err := w.PostMessage(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// CollectOutputs drains the worker's outbound stream until end-of-stream or
// context cancellation, returning the messages in emission order. Call
// CloseSend first so the task can drain its inbox, exit and end the stream.
func CollectOutputs[In, Out, R any](ctx context.Context, w *TwoWay[In, Out, R]) []Out {
	res := make([]Out, 0)
	for {
		v, ok := w.RecvNext(ctx)
		if !ok {
			return res
		}
		res = append(res, v)
	}
}
