// Package timers owns every delayed callback of a coordinator instance.
// Timers are keyed, so scheduling a key again replaces (debounces) the
// pending one, and Close cancels all of them at once.
package timers

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Well-known keys.
const (
	KeyResize      = "resize"
	KeyOrientation = "orientation"
	KeyAutoHide    = "autoHide"
	KeyMessage     = "message"
)

// PostFunc marshals fn onto the owner's event loop. Callbacks scheduled on
// the registry never run on the timer goroutine itself.
type PostFunc func(fn func())

type entry struct {
	timer clockwork.Timer
	gen   uint64
}

// Registry is a set of cancellable, keyed timers.
type Registry struct {
	clock clockwork.Clock
	post  PostFunc

	mu      sync.Mutex
	timers  map[string]entry
	gen     uint64
	closed  bool
	onFired func(key string)
}

// NewRegistry returns a registry using clock. A nil clock uses the real
// clock. A nil post runs callbacks directly on the timer goroutine, which is
// only safe when fn needs no confinement.
func NewRegistry(clock clockwork.Clock, post PostFunc) *Registry {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Registry{
		clock:  clock,
		post:   post,
		timers: make(map[string]entry),
	}
}

// Clock returns the registry clock.
func (r *Registry) Clock() clockwork.Clock {
	return r.clock
}

// OnFired installs a hook observing every callback that actually runs.
func (r *Registry) OnFired(fn func(key string)) {
	r.mu.Lock()
	r.onFired = fn
	r.mu.Unlock()
}

// After schedules fn under key, replacing any pending timer with that key.
// It returns false when the registry is closed.
func (r *Registry) After(key string, d time.Duration, fn func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	if prev, ok := r.timers[key]; ok {
		prev.timer.Stop()
	}
	r.gen++
	gen := r.gen
	t := r.clock.AfterFunc(d, func() {
		r.post(func() { r.fire(key, gen, fn) })
	})
	r.timers[key] = entry{timer: t, gen: gen}
	return true
}

// fire runs fn only if the timer was neither cancelled nor replaced after
// its expiry was posted to the loop.
func (r *Registry) fire(key string, gen uint64, fn func()) {
	r.mu.Lock()
	cur, ok := r.timers[key]
	if r.closed || !ok || cur.gen != gen {
		r.mu.Unlock()
		return
	}
	delete(r.timers, key)
	hook := r.onFired
	r.mu.Unlock()

	fn()
	if hook != nil {
		hook(key)
	}
}

// Cancel stops the timer under key and reports whether one was pending.
func (r *Registry) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.timers[key]
	if !ok {
		return false
	}
	cur.timer.Stop()
	delete(r.timers, key)
	return true
}

// Pending reports whether a timer is scheduled under key.
func (r *Registry) Pending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[key]
	return ok
}

// Len returns the number of pending timers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Close cancels every pending timer. Later After calls are ignored and
// callbacks already posted to the loop are dropped.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.timers {
		e.timer.Stop()
		delete(r.timers, key)
	}
	r.closed = true
}
