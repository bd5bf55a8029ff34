package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
)

func literalNode(v item.Item) ast.Node {
	return &ast.Generic{NodeKind: ast.KindLiteral, Attrs: map[string]interface{}{"value": v}}
}

func drainBuilt(t *testing.T, node ast.Node, env Env) []item.Item {
	t.Helper()
	it, err := Build(node, env)
	require.NoError(t, err)
	require.NoError(t, it.Open(nil))
	defer it.Close()
	out, err := iterator.Drain(it)
	require.NoError(t, err)
	return out
}

func TestBuildLiteralReturnsItsValue(t *testing.T) {
	out := drainBuilt(t, literalNode(item.NewInteger(42)), Env{})
	require.Len(t, out, 1)
	assert.Equal(t, int64(42), out[0].(item.Integer).Value)
}

func TestBuildLiteralMissingValueAttrErrors(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindLiteral}
	_, err := Build(node, Env{})
	assert.Error(t, err)
}

func TestBuildLiteralWrongValueTypeErrors(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindLiteral, Attrs: map[string]interface{}{"value": "not an item"}}
	_, err := Build(node, Env{})
	assert.Error(t, err)
}
