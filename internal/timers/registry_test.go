package timers

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wait = time.Second

func newTestRegistry(t *testing.T) (*Registry, *clockwork.FakeClock, *Queue) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	q := NewQueue(16)
	return NewRegistry(clock, q.Post), clock, q
}

// drain runs every queued callback without blocking and returns the count.
func drain(q *Queue) int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// runNext waits up to timeout for one callback and runs it.
func runNext(q *Queue, timeout time.Duration) bool {
	select {
	case fn := <-q.ch:
		fn()
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestAfter_FiresOnLoop(t *testing.T) {
	r, clock, q := newTestRegistry(t)
	fired := 0
	r.After(KeyResize, 100*time.Millisecond, func() { fired++ })

	clock.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, drain(q))

	clock.Advance(time.Millisecond)
	require.True(t, runNext(q, wait))
	assert.Equal(t, 1, fired)
	assert.False(t, r.Pending(KeyResize))
}

func TestAfter_SameKeyDebounces(t *testing.T) {
	r, clock, q := newTestRegistry(t)
	var got []int
	r.After(KeyResize, 100*time.Millisecond, func() { got = append(got, 1) })
	clock.Advance(50 * time.Millisecond)
	r.After(KeyResize, 100*time.Millisecond, func() { got = append(got, 2) })

	clock.Advance(60 * time.Millisecond)
	assert.False(t, runNext(q, 50*time.Millisecond))

	clock.Advance(40 * time.Millisecond)
	require.True(t, runNext(q, wait))
	assert.Equal(t, []int{2}, got)
	assert.Equal(t, 0, r.Len())
}

func TestCancel_AfterExpiryPostedStillSuppresses(t *testing.T) {
	r, clock, q := newTestRegistry(t)
	fired := false
	r.After(KeyMessage, time.Second, func() { fired = true })

	clock.Advance(time.Second)
	require.Eventually(t, func() bool { return len(q.ch) == 1 }, wait, time.Millisecond)

	assert.True(t, r.Cancel(KeyMessage))
	drain(q)
	assert.False(t, fired)
	assert.False(t, r.Cancel(KeyMessage))
}

func TestClose_CancelsEverything(t *testing.T) {
	r, clock, q := newTestRegistry(t)
	fired := 0
	r.After(KeyResize, time.Second, func() { fired++ })
	r.After(KeyAutoHide, 2*time.Second, func() { fired++ })
	require.Equal(t, 2, r.Len())

	r.Close()
	clock.Advance(5 * time.Second)
	drain(q)

	assert.Equal(t, 0, fired)
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.After(KeyResize, time.Second, func() { fired++ }))
}

func TestOnFired_ObservesKey(t *testing.T) {
	r, clock, q := newTestRegistry(t)
	var keys []string
	r.OnFired(func(key string) { keys = append(keys, key) })
	r.After(KeyOrientation, time.Millisecond, func() {})

	clock.Advance(time.Millisecond)
	require.True(t, runNext(q, wait))
	assert.Equal(t, []string{KeyOrientation}, keys)
}

func TestQueueRun_PreservesOrder(t *testing.T) {
	q := NewQueue(0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var got []int
	for i := 0; i < 10; i++ {
		q.Post(func() { got = append(got, i) })
	}
	q.Post(cancel)

	go func() {
		q.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(wait):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}
