package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
)

func arithNode(op string, left, right ast.Node) ast.Node {
	return &ast.Generic{NodeKind: ast.KindArithmetic, Attrs: map[string]interface{}{"op": op}, Kids: []ast.Node{left, right}}
}

func TestArithmeticIntegerAddition(t *testing.T) {
	node := arithNode("+", literalNode(item.NewInteger(2)), literalNode(item.NewInteger(3)))
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	assert.Equal(t, int64(5), out[0].(item.Integer).Value)
}

func TestArithmeticPromotesIntegerAndDoubleToDouble(t *testing.T) {
	node := arithNode("+", literalNode(item.NewInteger(2)), literalNode(item.NewDouble(0.5)))
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	assert.Equal(t, 2.5, out[0].(item.Double).Value)
}

func TestArithmeticEmptyOperandYieldsEmptySequence(t *testing.T) {
	empty := &ast.Generic{NodeKind: ast.KindSequenceConstructor}
	node := arithNode("+", literalNode(item.NewInteger(2)), empty)
	out := drainBuilt(t, node, Env{})
	assert.Empty(t, out)
}

func TestArithmeticMismatchedKindsIsTypeError(t *testing.T) {
	node := arithNode("+", literalNode(item.NewInteger(2)), literalNode(item.NewString("x")))
	it, err := Build(node, Env{})
	require.NoError(t, err)
	err = it.Open(nil)
	assert.Error(t, err)
}
