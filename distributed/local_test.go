package distributed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/item"
)

func TestLocalCollectionMapPreservesOrder(t *testing.T) {
	c := NewLocalCollection([]item.Item{item.NewInteger(1), item.NewInteger(2), item.NewInteger(3)}, 4)
	mapped, err := c.Map(func(it item.Item) (item.Item, error) {
		return item.NewInteger(it.(item.Integer).Value * 10), nil
	})
	require.NoError(t, err)
	out, err := mapped.Collect()
	require.NoError(t, err)
	assert.Equal(t, []item.Item{item.NewInteger(10), item.NewInteger(20), item.NewInteger(30)}, out)
}

func TestLocalCollectionFilter(t *testing.T) {
	c := NewLocalCollection([]item.Item{item.NewInteger(1), item.NewInteger(2), item.NewInteger(3), item.NewInteger(4)}, 0)
	filtered, err := c.Filter(func(it item.Item) (bool, error) {
		return it.(item.Integer).Value%2 == 0, nil
	})
	require.NoError(t, err)
	out, err := filtered.Collect()
	require.NoError(t, err)
	assert.Equal(t, []item.Item{item.NewInteger(2), item.NewInteger(4)}, out)
}

func TestLocalCollectionCountAndTake(t *testing.T) {
	c := NewLocalCollection([]item.Item{item.NewInteger(1), item.NewInteger(2), item.NewInteger(3)}, 0)
	n, err := c.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	taken, err := c.Take(2)
	require.NoError(t, err)
	assert.Equal(t, []item.Item{item.NewInteger(1), item.NewInteger(2)}, taken)
}

func TestLocalCollectionCacheWithoutSpillIsNoop(t *testing.T) {
	c := NewLocalCollection([]item.Item{item.NewInteger(1)}, 0)
	cached := c.Cache()
	out, err := cached.Collect()
	require.NoError(t, err)
	assert.Equal(t, []item.Item{item.NewInteger(1)}, out)
}

func TestEncodeDecodeItemRoundTrip(t *testing.T) {
	arr := item.NewArray([]item.Item{item.NewInteger(1), item.NewString("x")})
	obj, err := item.NewObject([]string{"a", "b"}, []item.Item{item.NewInteger(1), arr})
	require.NoError(t, err)

	encoded, err := encodeItem(obj)
	require.NoError(t, err)
	decoded, err := decodeItem(encoded)
	require.NoError(t, err)

	got := decoded.(item.Object)
	v, ok := got.Get("a")
	require.True(t, ok)
	assert.Equal(t, item.NewInteger(1), v)
}
