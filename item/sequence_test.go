package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveBooleanValueEmptyIsFalse(t *testing.T) {
	ebv, err := Sequence{}.EffectiveBooleanValue()
	require.NoError(t, err)
	assert.False(t, ebv)
}

func TestEffectiveBooleanValueSingletons(t *testing.T) {
	cases := []struct {
		name string
		it   Item
		want bool
	}{
		{"true boolean", True, true},
		{"false boolean", False, false},
		{"nonzero integer", NewInteger(3), true},
		{"zero integer", NewInteger(0), false},
		{"nonempty string", NewString("x"), true},
		{"empty string", NewString(""), false},
		{"nan double", NewDouble(nan()), false},
		{"array always true", NewArray(nil), true},
	}
	for _, c := range cases {
		ebv, err := Sequence{c.it}.EffectiveBooleanValue()
		require.NoError(t, err, c.name)
		assert.Equal(t, c.want, ebv, c.name)
	}
}

func TestEffectiveBooleanValueMultiItemIsError(t *testing.T) {
	_, err := Sequence{NewInteger(1), NewInteger(2)}.EffectiveBooleanValue()
	require.Error(t, err)
}

func nan() float64 {
	var zero float64
	return zero / zero
}
