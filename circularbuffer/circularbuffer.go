// Package circularbuffer is a fixed-capacity ring that overwrites its
// oldest entries once full.
package circularbuffer

import "sync"

type CircularBuffer[T any] struct {
	mu       sync.Mutex
	values   []T
	position int
	count    int
}

func New[T any](size int) *CircularBuffer[T] {
	return &CircularBuffer[T]{
		values: make([]T, size),
	}
}

// Push appends element, evicting the oldest entry once the buffer is
// at capacity.
func (cb *CircularBuffer[T]) Push(element T) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.values[cb.position] = element
	cb.position = (cb.position + 1) % len(cb.values)
	if cb.count < len(cb.values) {
		cb.count++
	}
}

// Len reports how many elements the buffer currently retains.
func (cb *CircularBuffer[T]) Len() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.count
}

// Each visits the retained elements, oldest first.
func (cb *CircularBuffer[T]) Each(fn func(T)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	start := cb.position - cb.count
	if start < 0 {
		start += len(cb.values)
	}
	for n := 0; n < cb.count; n++ {
		fn(cb.values[(start+n)%len(cb.values)])
	}
}
