package dispatch

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned by push after close, and by pop once a closed
// queue is empty.
var ErrQueueClosed = errors.New("queue closed")

// queue is an unbounded FIFO. pop blocks until an item is available, the
// queue is closed and drained, or ctx is done.
type queue[T any] struct {
	mu       sync.Mutex
	items    []T
	head     int
	closed   bool
	notEmpty chan struct{}
	doneCh   chan struct{}
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{
		notEmpty: make(chan struct{}, 1),
		doneCh:   make(chan struct{}),
	}
}

// signal keeps one token in notEmpty while items remain. Must be called with
// the lock held.
func (q *queue[T]) signal() {
	if len(q.items)-q.head > 0 {
		select {
		case q.notEmpty <- struct{}{}:
		default:
		}
	}
}

func (q *queue[T]) push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, v)
	q.signal()
	return nil
}

func (q *queue[T]) tryPop() (T, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if q.head < len(q.items) {
		v := q.items[q.head]
		q.items[q.head] = zero
		q.head++
		if q.head == len(q.items) {
			q.items, q.head = q.items[:0], 0
		}
		q.signal()
		return v, true, nil
	}
	if q.closed {
		return zero, false, ErrQueueClosed
	}
	return zero, false, nil
}

func (q *queue[T]) pop(ctx context.Context) (T, error) {
	for {
		v, ok, err := q.tryPop()
		if ok || err != nil {
			return v, err
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-q.doneCh:
		case <-q.notEmpty:
		}
	}
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *queue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.doneCh)
	}
}
