package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareNumericPromotion(t *testing.T) {
	c, err := Compare(NewInteger(3), NewDouble(3.5))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Compare(NewDouble(5), NewInteger(5))
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestCompareStringsCodepointOrder(t *testing.T) {
	c, err := Compare(NewString("apple"), NewString("banana"))
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareBooleansFalseBeforeTrue(t *testing.T) {
	c, err := Compare(False, True)
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareCrossTypeIsError(t *testing.T) {
	_, err := Compare(NewString("x"), True)
	require.Error(t, err)
}

func TestCompareDurationSameFamily(t *testing.T) {
	c, err := Compare(NewDayTimeDuration(1000), NewDayTimeDuration(2000))
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareDurationCrossFamilyErrors(t *testing.T) {
	_, err := Compare(NewYearMonthDuration(12), NewDayTimeDuration(1000))
	require.Error(t, err)
}

func TestEqualNulls(t *testing.T) {
	eq, err := Equal(NullValue, NullValue)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = Equal(NullValue, NewInteger(0))
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestEqualBinaryIsError(t *testing.T) {
	b := NewBinary(BinaryHex, []byte{0x01})
	_, err := Equal(b, b)
	require.Error(t, err)
}

func TestCompareKeysEmptyOrdering(t *testing.T) {
	least := SortKey{Value: nil, EmptyOrder: EmptyLeast}
	present := SortKey{Value: NewInteger(1), EmptyOrder: EmptyLeast}

	c, err := CompareKeys(least, present)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = CompareKeys(present, least)
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestCompareKeysDescending(t *testing.T) {
	a := SortKey{Value: NewInteger(1), Descending: true}
	b := SortKey{Value: NewInteger(2), Descending: true}
	c, err := CompareKeys(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestCompareKeysRejectsNonAtomic(t *testing.T) {
	arr := SortKey{Value: NewArray(nil)}
	num := SortKey{Value: NewInteger(1)}
	_, err := CompareKeys(arr, num)
	require.Error(t, err)
}
