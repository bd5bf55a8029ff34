package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/item"
)

func drain(t *testing.T, it RuntimeIterator) []item.Item {
	t.Helper()
	var out []item.Item
	for {
		has, err := it.HasNext()
		require.NoError(t, err)
		if !has {
			break
		}
		v, err := it.Next()
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestBufferedAllowsReplay(t *testing.T) {
	src := newSliceIterator([]item.Item{item.NewInteger(1), item.NewInteger(2), item.NewInteger(3)})
	b := NewBuffered(src)
	require.NoError(t, b.Open(nil))

	first := drain(t, b)
	assert.Equal(t, []item.Item{item.NewInteger(1), item.NewInteger(2), item.NewInteger(3)}, first)

	require.NoError(t, b.Reset())
	second := drain(t, b)
	assert.Equal(t, first, second)
}

func TestBufferedClosesUnderlyingSourceOnce(t *testing.T) {
	src := newSliceIterator([]item.Item{item.NewInteger(1)})
	b := NewBuffered(src)
	require.NoError(t, b.Open(nil))
	drain(t, b)
	require.NoError(t, b.Close())
	assert.NoError(t, b.Close(), "double close must be tolerated")
}
