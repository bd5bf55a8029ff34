package item

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicatesAreTotal(t *testing.T) {
	items := []Item{
		NullValue, True, NewString("s"), NewInteger(1), NewDouble(1.5),
		NewArray(nil), Object{}, NewFunction("f", nil, nil, nil),
	}
	for _, it := range items {
		assert.NotPanics(t, func() {
			_ = it.IsNull()
			_ = it.IsAtomic()
			_ = it.IsArray()
			_ = it.IsObject()
			_ = it.IsFunction()
			_ = it.String()
		})
	}
}

func TestNullValueIsAtomicAndNull(t *testing.T) {
	assert.True(t, NullValue.IsNull())
	assert.True(t, NullValue.IsAtomic())
	assert.Equal(t, KindNull, NullValue.Kind())
}

func TestBooleanStringForm(t *testing.T) {
	assert.Equal(t, "true", True.String())
	assert.Equal(t, "false", False.String())
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(NewInteger(1)))
	assert.True(t, IsNumeric(NewDouble(1)))
	assert.False(t, IsNumeric(NewString("1")))
	assert.False(t, IsNumeric(NullValue))
}

func TestIsTemporal(t *testing.T) {
	assert.True(t, IsTemporal(NewYearMonthDuration(1)))
	assert.True(t, IsTemporal(NewDate(time.Now(), false)))
	assert.False(t, IsTemporal(NewString("2024-01-01")))
}
