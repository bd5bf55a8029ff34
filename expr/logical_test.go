package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
)

func logicalNode(op string, operands ...ast.Node) ast.Node {
	return &ast.Generic{NodeKind: ast.KindLogical, Attrs: map[string]interface{}{"op": op}, Kids: operands}
}

func boolLiteral(v bool) ast.Node { return literalNode(item.NewBoolean(v)) }

func TestLogicalAndAllTrue(t *testing.T) {
	node := logicalNode("and", boolLiteral(true), boolLiteral(true))
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	assert.True(t, out[0].(item.Boolean).Value)
}

func TestLogicalAndShortCircuitsOnFalse(t *testing.T) {
	node := logicalNode("and", boolLiteral(false), boolLiteral(true))
	out := drainBuilt(t, node, Env{})
	assert.False(t, out[0].(item.Boolean).Value)
}

func TestLogicalOrShortCircuitsOnTrue(t *testing.T) {
	node := logicalNode("or", boolLiteral(false), boolLiteral(true))
	out := drainBuilt(t, node, Env{})
	assert.True(t, out[0].(item.Boolean).Value)
}

func TestLogicalOrAllFalse(t *testing.T) {
	node := logicalNode("or", boolLiteral(false), boolLiteral(false))
	out := drainBuilt(t, node, Env{})
	assert.False(t, out[0].(item.Boolean).Value)
}

func TestLogicalUnknownOperatorErrors(t *testing.T) {
	node := logicalNode("xor", boolLiteral(true), boolLiteral(false))
	_, err := Build(node, Env{})
	assert.Error(t, err)
}

func TestLogicalRequiresAtLeastOneOperand(t *testing.T) {
	node := logicalNode("and")
	_, err := Build(node, Env{})
	assert.Error(t, err)
}
