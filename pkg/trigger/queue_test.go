package trigger

import (
	"context"
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()

	for i := uint64(1); i <= 5; i++ {
		q.Push(Trigger{Category: "click", NodeID: i})
	}

	ctx := context.Background()
	for i := uint64(1); i <= 5; i++ {
		tr, err := q.Wait(ctx)
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
		if tr.NodeID != i {
			t.Errorf("trigger %d has NodeID %d (delivery must be in order)", i, tr.NodeID)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}

func TestQueueWaitBlocksUntilPush(t *testing.T) {
	q := NewQueue()

	done := make(chan Trigger, 1)
	go func() {
		tr, err := q.Wait(context.Background())
		if err != nil {
			return
		}
		done <- tr
	}()

	// Give the waiter time to park.
	time.Sleep(10 * time.Millisecond)
	q.Push(Trigger{Category: "input", NodeID: 9})

	select {
	case tr := <-done:
		if tr.NodeID != 9 {
			t.Errorf("NodeID = %d, want 9", tr.NodeID)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never woke up")
	}
}

func TestQueueWaitContextCancel(t *testing.T) {
	q := NewQueue()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := q.Wait(ctx); err != context.Canceled {
		t.Errorf("Wait = %v, want context.Canceled", err)
	}
}

func TestQueueTryNext(t *testing.T) {
	q := NewQueue()

	if _, ok := q.TryNext(); ok {
		t.Error("TryNext on empty queue returned a trigger")
	}

	q.Push(Trigger{Category: "click"})
	if tr, ok := q.TryNext(); !ok || tr.Category != "click" {
		t.Errorf("TryNext = %+v, %v", tr, ok)
	}
}

func TestQueueManyWaiters(t *testing.T) {
	q := NewQueue()
	const n = 8

	got := make(chan Trigger, n)
	for i := 0; i < n; i++ {
		go func() {
			tr, err := q.Wait(context.Background())
			if err == nil {
				got <- tr
			}
		}()
	}

	for i := 0; i < n; i++ {
		q.Push(Trigger{NodeID: uint64(i)})
	}

	seen := make(map[uint64]bool)
	for i := 0; i < n; i++ {
		select {
		case tr := <-got:
			if seen[tr.NodeID] {
				t.Errorf("trigger %d delivered twice", tr.NodeID)
			}
			seen[tr.NodeID] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of %d triggers delivered", i, n)
		}
	}
}
