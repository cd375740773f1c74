package timers

import "context"

// Queue is a minimal event loop. Post enqueues from any goroutine and Run
// executes callbacks in posting order on the caller's goroutine.
type Queue struct {
	ch chan func()
}

// NewQueue returns a queue buffering up to size callbacks.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{ch: make(chan func(), size)}
}

// Post enqueues fn. It satisfies PostFunc.
func (q *Queue) Post(fn func()) {
	q.ch <- fn
}

// Run executes callbacks as they arrive until ctx is done.
func (q *Queue) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-q.ch:
			fn()
		}
	}
}
