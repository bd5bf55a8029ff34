package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayOneBasedIndexing(t *testing.T) {
	a := NewArray([]Item{NewInteger(10), NewInteger(20), NewInteger(30)})

	v, ok := a.Get(1)
	assert.True(t, ok)
	assert.Equal(t, NewInteger(10), v)

	v, ok = a.Get(3)
	assert.True(t, ok)
	assert.Equal(t, NewInteger(30), v)

	_, ok = a.Get(0)
	assert.False(t, ok)

	_, ok = a.Get(4)
	assert.False(t, ok)
}

func TestArrayBuilder(t *testing.T) {
	var b ArrayBuilder
	b.Append(NewInteger(1))
	b.Append(NewInteger(2))
	arr := b.Build()
	assert.Equal(t, 2, arr.Len())
}

func TestNewArrayDefensiveCopy(t *testing.T) {
	items := []Item{NewInteger(1)}
	a := NewArray(items)
	items[0] = NewInteger(99)
	v, _ := a.Get(1)
	assert.Equal(t, NewInteger(1), v)
}
