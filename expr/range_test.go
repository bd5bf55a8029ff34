package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
)

func rangeNode(from, to ast.Node) ast.Node {
	return &ast.Generic{NodeKind: ast.KindRange, Kids: []ast.Node{from, to}}
}

func TestRangeProducesInclusiveIntegers(t *testing.T) {
	node := rangeNode(literalNode(item.NewInteger(1)), literalNode(item.NewInteger(4)))
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 4)
	for i, v := range out {
		assert.Equal(t, int64(i+1), v.(item.Integer).Value)
	}
}

func TestRangeFromGreaterThanToIsEmpty(t *testing.T) {
	node := rangeNode(literalNode(item.NewInteger(5)), literalNode(item.NewInteger(1)))
	out := drainBuilt(t, node, Env{})
	assert.Empty(t, out)
}

func TestRangeNonIntegerBoundErrors(t *testing.T) {
	node := rangeNode(literalNode(item.NewString("a")), literalNode(item.NewInteger(1)))
	it, err := Build(node, Env{})
	require.NoError(t, err)
	err = it.Open(nil)
	assert.Error(t, err)
}

func TestRangeDoesNotSupportReset(t *testing.T) {
	node := rangeNode(literalNode(item.NewInteger(1)), literalNode(item.NewInteger(2)))
	it, err := Build(node, Env{})
	require.NoError(t, err)
	require.NoError(t, it.Open(nil))
	defer it.Close()
	assert.Error(t, it.Reset())
}
