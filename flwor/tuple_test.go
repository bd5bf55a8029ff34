package flwor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

func TestTupleWithLeavesOriginalUnmodified(t *testing.T) {
	base := Tuple{"x": item.Sequence{item.NewInteger(1)}}
	extended := base.With("y", item.Sequence{item.NewInteger(2)})

	_, hasY := base["y"]
	assert.False(t, hasY)
	assert.Len(t, extended, 2)
}

func TestTupleCloneIsIndependentMap(t *testing.T) {
	base := Tuple{"x": item.Sequence{item.NewInteger(1)}}
	clone := base.Clone()
	clone["x"] = item.Sequence{item.NewInteger(99)}

	assert.Equal(t, int64(1), base["x"][0].(item.Integer).Value)
	assert.Equal(t, int64(99), clone["x"][0].(item.Integer).Value)
}

func TestTupleToContextBindsEveryVariable(t *testing.T) {
	tup := Tuple{"x": item.Sequence{item.NewInteger(5)}}
	parent := runtimectx.New(nil, nil)
	child := tup.ToContext(parent)

	seq, err := child.LookupSequence("x")
	require.NoError(t, err)
	assert.Equal(t, int64(5), seq[0].(item.Integer).Value)
}
