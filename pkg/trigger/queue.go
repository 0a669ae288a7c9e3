package trigger

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO of triggers decoupling native dispatch
// (which must return immediately) from the consumer (which may suspend
// waiting for the next trigger).
//
// Push never blocks; Wait suspends until a trigger arrives or the
// context is done. Triggers come out in exactly the order they went in.
type Queue struct {
	mu    sync.Mutex
	items []Trigger
	ready chan struct{} // Capacity 1; signals a non-empty queue
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends a trigger. It never blocks.
func (q *Queue) Push(t Trigger) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Wait suspends until a trigger is available, then removes and returns
// it. It returns ctx.Err() if the context is done first. Wait never
// times out on its own; cancellation is the caller's responsibility.
func (q *Queue) Wait(ctx context.Context) (Trigger, error) {
	for {
		if t, ok := q.tryPop(); ok {
			return t, nil
		}
		select {
		case <-q.ready:
		case <-ctx.Done():
			return Trigger{}, ctx.Err()
		}
	}
}

// TryNext removes and returns the next trigger without blocking.
func (q *Queue) TryNext() (Trigger, bool) {
	return q.tryPop()
}

// Len returns the number of queued triggers.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) tryPop() (Trigger, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Trigger{}, false
	}
	t := q.items[0]
	q.items = q.items[1:]
	if len(q.items) > 0 {
		// Re-arm the signal for the next waiter.
		select {
		case q.ready <- struct{}{}:
		default:
		}
	}
	return t, true
}
