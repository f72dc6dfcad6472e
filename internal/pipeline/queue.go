package pipeline

import "sync"

// Queue is a mutex-guarded FIFO that producers append to and a single
// consumer drains in batches.
type Queue[T any] struct {
	mu      sync.Mutex
	pending []T
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, item)
}

// Drain removes and returns up to max items in arrival order. max <= 0
// swaps out everything.
func (q *Queue[T]) Drain(max int) []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	if max <= 0 || max >= len(q.pending) {
		batch := q.pending
		q.pending = nil
		return batch
	}
	batch := append([]T(nil), q.pending[:max]...)
	q.pending = append([]T(nil), q.pending[max:]...)
	return batch
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
