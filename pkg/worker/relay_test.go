package worker

import (
	"context"
	"testing"
)

// echoTask forwards every inbound int to the outbox and returns how many it
// processed.
func echoTask(h *DuplexHandle[int, int]) int {
	rx, out := h.Receiver()
	count := 0
	for v := range rx.C() {
		count++
		if err := out.PostMessage(context.Background(), v); err != nil {
			return count
		}
	}
	return count
}

func TestOnMessage_PreservesOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	up := SpawnTwoWay(echoTask)
	down, err := OnMessage(up, func(h *Handle[int]) []int {
		rx, _ := h.Receiver()
		seen := make([]int, 0)
		for v := range rx.C() {
			seen = append(seen, v)
		}
		return seen
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := PostAll(ctx, up, 1, 2, 3); err != nil {
		t.Fatalf("post: %v", err)
	}
	up.Close()

	seen, err := down.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[1] != 2 || seen[2] != 3 {
		t.Fatalf("expected [1 2 3] downstream, got: %v", seen)
	}
	down.Close()

	if count, err := up.Wait(ctx); err != nil || count != 3 {
		t.Fatalf("expected upstream to process 3 messages, got: out=%v err=%v", count, err)
	}
}

func TestOnMessage_SingleSubscriber(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	up := SpawnTwoWay(echoTask)
	down, err := OnMessage(up, func(h *Handle[int]) int {
		rx, _ := h.Receiver()
		count := 0
		for range rx.C() {
			count++
		}
		return count
	})
	if err != nil {
		t.Fatalf("first subscribe: %v", err)
	}

	if _, err := OnMessage(up, func(h *Handle[int]) int { return 0 }); err != ErrSubscribed {
		t.Fatalf("expected ErrSubscribed on second subscribe, got: %v", err)
	}

	// the outbound stream now belongs to the subscriber
	if _, ok := up.RecvNext(ctx); ok {
		t.Fatalf("expected end-of-stream from RecvNext after subscription")
	}

	up.Close()
	down.Close()
}

func TestOnMessage_DownstreamExitsEarly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// emit until the relay boundary reports the subscriber is gone
	up := SpawnTwoWay(func(h *DuplexHandle[int, int]) int {
		_, out := h.Receiver()
		for i := 0; ; i++ {
			if err := out.PostMessage(context.Background(), i); err != nil {
				if !IsClosed(err) {
					return -1
				}
				return i
			}
		}
	}, WithOutboundBuffer(0))

	down, err := OnMessage(up, func(h *Handle[int]) int {
		return 7 // exits before upstream finishes
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if out, err := down.Wait(ctx); err != nil || out != 7 {
		t.Fatalf("expected downstream output 7, got: out=%v err=%v", out, err)
	}

	sent, err := up.Wait(ctx)
	if err != nil {
		t.Fatalf("wait upstream: %v", err)
	}
	if sent < 0 {
		t.Fatalf("upstream saw a non-closed error")
	}

	up.Close()
	down.Close()
}
