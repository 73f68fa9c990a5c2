package main_test

import (
	ledbar "ledbar"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircularList(t *testing.T) {
	cl := ledbar.NewCircularList([]string{"a", "b", "c"})

	assert.Equal(t, 3, cl.Length())
	assert.Equal(t, "a", cl.Current())
	assert.Equal(t, "b", cl.PeekNext())

	cl.Advance()
	assert.Equal(t, "b", cl.Current())

	cl.Advance()
	assert.Equal(t, "c", cl.Current())
	assert.Equal(t, "a", cl.PeekNext())

	cl.Advance()
	assert.Equal(t, "a", cl.Current())
}

func TestCircularListSingle(t *testing.T) {
	cl := ledbar.NewCircularList([]string{"only"})

	assert.Equal(t, "only", cl.Current())
	assert.Equal(t, "only", cl.PeekNext())

	cl.Advance()
	assert.Equal(t, "only", cl.Current())
}

func TestCircularListEmpty(t *testing.T) {
	cl := ledbar.NewCircularList([]string{})

	assert.Equal(t, 0, cl.Length())
	assert.Equal(t, "", cl.Current())
	assert.Equal(t, "", cl.PeekNext())

	cl.Advance()
	assert.Equal(t, "", cl.Current())
}
