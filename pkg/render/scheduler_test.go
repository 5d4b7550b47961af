// ABOUTME: Tests for the cancel-and-replace redraw scheduler
// ABOUTME: Supersession, synchronous flush, cancellation, and stats
package render

import (
	"sync"
	"testing"
	"time"
)

func TestSchedulerSupersedesSameKey(t *testing.T) {
	sched := newRedrawScheduler()
	defer sched.cancelAll()

	var mu sync.Mutex
	fired := 0

	sched.schedule("a", time.Hour, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	sched.schedule("a", time.Hour, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	if got := sched.pendingCount(); got != 1 {
		t.Fatalf("pendingCount() = %d, want 1", got)
	}
	sched.flush()

	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Errorf("fired = %d, want the superseded callback dropped", fired)
	}
	stats := sched.Stats()
	if stats.Scheduled != 2 || stats.Superseded != 1 || stats.Fired != 1 {
		t.Errorf("stats = %+v, want 2 scheduled, 1 superseded, 1 fired", stats)
	}
}

func TestSchedulerFlushRunsImmediately(t *testing.T) {
	sched := newRedrawScheduler()
	done := make(chan struct{})

	sched.schedule("a", time.Hour, func() { close(done) })
	sched.flush()

	select {
	case <-done:
	default:
		t.Fatal("flush did not run the pending callback synchronously")
	}
	if got := sched.pendingCount(); got != 0 {
		t.Errorf("pendingCount() = %d after flush, want 0", got)
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	sched := newRedrawScheduler()

	var mu sync.Mutex
	fired := 0
	for _, key := range []string{"a", "b", "c"} {
		sched.schedule(key, time.Hour, func() {
			mu.Lock()
			fired++
			mu.Unlock()
		})
	}
	sched.cancelAll()

	if got := sched.pendingCount(); got != 0 {
		t.Errorf("pendingCount() = %d after cancelAll, want 0", got)
	}
	sched.flush()
	mu.Lock()
	defer mu.Unlock()
	if fired != 0 {
		t.Errorf("fired = %d after cancelAll, want 0", fired)
	}
	if got := sched.Stats().Canceled; got != 3 {
		t.Errorf("Canceled = %d, want 3", got)
	}
}

func TestSchedulerTimerFires(t *testing.T) {
	sched := newRedrawScheduler()
	done := make(chan struct{})

	sched.schedule("a", time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled callback never fired")
	}

	// Entry removal races the callback only until the timer goroutine
	// finishes; poll briefly.
	deadline := time.Now().Add(time.Second)
	for sched.pendingCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("fired entry never removed from pending map")
		}
		time.Sleep(time.Millisecond)
	}
	if got := sched.Stats().Fired; got != 1 {
		t.Errorf("Fired = %d, want 1", got)
	}
}
