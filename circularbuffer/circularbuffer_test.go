package circularbuffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledbar/circularbuffer"
)

func collect(cb *circularbuffer.CircularBuffer[int]) []int {
	var out []int
	cb.Each(func(v int) {
		out = append(out, v)
	})
	return out
}

func TestEmpty(t *testing.T) {
	cb := circularbuffer.New[int](4)

	assert.Equal(t, 0, cb.Len())
	assert.Empty(t, collect(cb))
}

func TestPartiallyFilled(t *testing.T) {
	cb := circularbuffer.New[int](4)
	cb.Push(1)
	cb.Push(2)

	assert.Equal(t, 2, cb.Len())
	assert.Equal(t, []int{1, 2}, collect(cb))
}

func TestExactlyFull(t *testing.T) {
	cb := circularbuffer.New[int](3)
	cb.Push(1)
	cb.Push(2)
	cb.Push(3)

	assert.Equal(t, 3, cb.Len())
	assert.Equal(t, []int{1, 2, 3}, collect(cb))
}

func TestOverwritesOldest(t *testing.T) {
	cb := circularbuffer.New[int](3)
	for i := 1; i <= 5; i++ {
		cb.Push(i)
	}

	assert.Equal(t, 3, cb.Len())
	assert.Equal(t, []int{3, 4, 5}, collect(cb))
}
