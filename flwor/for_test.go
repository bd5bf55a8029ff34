package flwor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/item"
)

func TestForBindsOneBasedPositionVariable(t *testing.T) {
	node := flworNode(
		&ast.Generic{
			NodeKind: ast.KindForClause,
			Attrs:    map[string]interface{}{"name": "x", "posVar": "p"},
			Kids:     []ast.Node{intSeqLiteral(10, 20, 30)},
		},
		returnClauseNode(varRefNode("p")),
	)
	out := runFLWOR(t, node)
	require.Len(t, out, 3)
	assert.Equal(t, int64(1), out[0].(item.Integer).Value)
	assert.Equal(t, int64(2), out[1].(item.Integer).Value)
	assert.Equal(t, int64(3), out[2].(item.Integer).Value)
}

func TestForWithoutPosVarDoesNotBindOne(t *testing.T) {
	forNode := &ast.Generic{
		NodeKind: ast.KindForClause,
		Attrs:    map[string]interface{}{"name": "x"},
		Kids:     []ast.Node{intSeqLiteral(10, 20)},
	}
	clause, err := BuildFor(forNode, expr.Env{}, &emptySource{})
	require.NoError(t, err)
	bound := clause.GetVariablesBoundInCurrentFLWORExpression()
	assert.NotContains(t, bound, "p")
	assert.Contains(t, bound, "x")
}
