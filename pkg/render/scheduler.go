// ABOUTME: Cancelable per-surface deferred redraw scheduling
// ABOUTME: Cancel-and-replace semantics with basic stats
package render

import (
	"sync"
	"time"
)

// SchedulerStats tracks redraw scheduling metrics.
type SchedulerStats struct {
	Scheduled  int64
	Fired      int64
	Superseded int64
	Canceled   int64
}

// pendingRedraw is one scheduled deferred redraw.
type pendingRedraw struct {
	timer *time.Timer
	fn    func()
}

// redrawScheduler defers redraw callbacks keyed by surface (and, for
// split-channel renders, channel). Scheduling a new redraw for a key
// that already has one pending cancels the stale one unconditionally;
// a canceled redraw is not observable.
type redrawScheduler struct {
	mu      sync.Mutex
	pending map[string]*pendingRedraw
	stats   SchedulerStats
}

func newRedrawScheduler() *redrawScheduler {
	return &redrawScheduler{pending: make(map[string]*pendingRedraw)}
}

// schedule defers fn by delay under the given key, superseding any
// pending redraw for the same key.
func (r *redrawScheduler) schedule(id string, delay time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.pending[id]; ok {
		old.timer.Stop()
		r.stats.Superseded++
	}

	entry := &pendingRedraw{fn: fn}
	entry.timer = time.AfterFunc(delay, func() {
		r.mu.Lock()
		if r.pending[id] != entry {
			// Superseded or canceled between fire and lock.
			r.mu.Unlock()
			return
		}
		delete(r.pending, id)
		r.stats.Fired++
		r.mu.Unlock()
		fn()
	})
	r.pending[id] = entry
	r.stats.Scheduled++
}

// cancel drops any pending redraw for the key.
func (r *redrawScheduler) cancel(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.pending[id]; ok {
		entry.timer.Stop()
		delete(r.pending, id)
		r.stats.Canceled++
	}
}

// cancelAll drops every pending redraw.
func (r *redrawScheduler) cancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entry := range r.pending {
		entry.timer.Stop()
		delete(r.pending, id)
		r.stats.Canceled++
	}
}

// flush runs every pending redraw now, in no particular order.
// Callers must not hold locks the redraw callbacks acquire.
func (r *redrawScheduler) flush() {
	r.mu.Lock()
	var fns []func()
	for id, entry := range r.pending {
		if entry.timer.Stop() {
			fns = append(fns, entry.fn)
			r.stats.Fired++
		}
		delete(r.pending, id)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// pendingCount returns how many redraws are waiting to fire.
func (r *redrawScheduler) pendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Stats returns a copy of the scheduling counters.
func (r *redrawScheduler) Stats() SchedulerStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
