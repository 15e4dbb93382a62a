package taskworker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_ProcessesDispatchedJobs(t *testing.T) {
	pool := NewPool(2, 8)
	pool.Start(context.Background())
	defer pool.Stop()

	var done int64
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		ok := pool.TryDispatch(Job{
			Key: "post-1",
			Handler: func(ctx context.Context) error {
				defer wg.Done()
				atomic.AddInt64(&done, 1)
				return nil
			},
		})
		if !ok {
			t.Fatalf("dispatch %d rejected unexpectedly", i)
		}
	}
	wg.Wait()

	if got := atomic.LoadInt64(&done); got != 6 {
		t.Fatalf("expected 6 processed jobs, got %d", got)
	}
	stats := pool.GetStats()
	if stats.TotalDispatched != 6 {
		t.Fatalf("expected 6 dispatched, got %d", stats.TotalDispatched)
	}
}

func TestPool_SameKeyRunsInOrder(t *testing.T) {
	pool := NewPool(4, 16)
	pool.Start(context.Background())
	defer pool.Stop()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		pool.Dispatch(Job{
			Key: "same-key",
			Handler: func(ctx context.Context) error {
				defer wg.Done()
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			},
		})
	}
	wg.Wait()

	for i, v := range order {
		if v != i {
			t.Fatalf("jobs for one key ran out of order: %v", order)
		}
	}
}

func TestPool_FullQueueAppliesBackpressure(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start(context.Background())
	defer pool.Stop()

	block := make(chan struct{})
	entered := make(chan struct{})
	pool.TryDispatch(Job{Key: "k", Handler: func(ctx context.Context) error {
		close(entered)
		<-block
		return nil
	}})
	<-entered

	// One slot in the queue, then it is full.
	if !pool.TryDispatch(Job{Key: "k", Handler: func(ctx context.Context) error { return nil }}) {
		t.Fatal("expected queued dispatch to succeed")
	}
	if pool.TryDispatch(Job{Key: "k", Handler: func(ctx context.Context) error { return nil }}) {
		t.Fatal("expected dispatch to a full queue to be rejected")
	}
	if pool.GetStats().TotalDropped != 1 {
		t.Fatalf("expected 1 dropped job, got %d", pool.GetStats().TotalDropped)
	}
	close(block)
}

func TestPool_StopRejectsNewJobs(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start(context.Background())
	pool.Stop()

	if pool.TryDispatch(Job{Key: "k", Handler: func(ctx context.Context) error { return nil }}) {
		t.Fatal("expected dispatch after Stop to be rejected")
	}
}

func TestPool_StopDrainsAcceptedJobs(t *testing.T) {
	pool := NewPool(1, 8)
	pool.Start(context.Background())

	var done int64
	for i := 0; i < 4; i++ {
		pool.Dispatch(Job{Key: "k", Handler: func(ctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&done, 1)
			return nil
		}})
	}
	pool.Stop()

	if got := atomic.LoadInt64(&done); got != 4 {
		t.Fatalf("expected all accepted jobs to finish before Stop returned, got %d", got)
	}
}
