package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
)

func valueCompareNode(op string, left, right ast.Node) ast.Node {
	return &ast.Generic{NodeKind: ast.KindValueComparison, Attrs: map[string]interface{}{"op": op}, Kids: []ast.Node{left, right}}
}

func generalCompareNode(op string, left, right ast.Node) ast.Node {
	return &ast.Generic{NodeKind: ast.KindGeneralComparison, Attrs: map[string]interface{}{"op": op}, Kids: []ast.Node{left, right}}
}

func TestValueComparisonGreaterThan(t *testing.T) {
	node := valueCompareNode("gt", literalNode(item.NewInteger(30)), literalNode(item.NewInteger(25)))
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	assert.True(t, out[0].(item.Boolean).Value)
}

func TestValueComparisonEqualityUsesItemEqual(t *testing.T) {
	node := valueCompareNode("eq", literalNode(item.NewString("a")), literalNode(item.NewString("a")))
	out := drainBuilt(t, node, Env{})
	assert.True(t, out[0].(item.Boolean).Value)
}

func TestValueComparisonWithNonSingletonOperandErrors(t *testing.T) {
	seq := &ast.Generic{NodeKind: ast.KindSequenceConstructor, Kids: []ast.Node{
		literalNode(item.NewInteger(1)), literalNode(item.NewInteger(2)),
	}}
	node := valueCompareNode("eq", seq, literalNode(item.NewInteger(1)))
	it, err := Build(node, Env{})
	require.NoError(t, err)
	err = it.Open(nil)
	assert.Error(t, err)
}

func TestGeneralComparisonIsExistentialOverCartesianProduct(t *testing.T) {
	left := &ast.Generic{NodeKind: ast.KindSequenceConstructor, Kids: []ast.Node{
		literalNode(item.NewInteger(1)), literalNode(item.NewInteger(5)),
	}}
	right := &ast.Generic{NodeKind: ast.KindSequenceConstructor, Kids: []ast.Node{
		literalNode(item.NewInteger(5)), literalNode(item.NewInteger(9)),
	}}
	node := generalCompareNode("eq", left, right)
	out := drainBuilt(t, node, Env{})
	assert.True(t, out[0].(item.Boolean).Value)
}

func TestGeneralComparisonEmptyOperandIsFalseNotError(t *testing.T) {
	empty := &ast.Generic{NodeKind: ast.KindSequenceConstructor}
	node := generalCompareNode("eq", empty, literalNode(item.NewInteger(1)))
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	assert.False(t, out[0].(item.Boolean).Value)
}
