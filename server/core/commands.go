package core

import "sync"

// commandQueue hands work from necs callback goroutines to the tick loop,
// which is the only goroutine allowed to touch the arena.
type commandQueue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *commandQueue) push(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// drain runs everything queued so far in arrival order.
func (q *commandQueue) drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
