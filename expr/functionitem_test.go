package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
)

func TestFunctionItemConstructorProducesFunctionItem(t *testing.T) {
	body := literalNode(item.NewInteger(1))
	node := &ast.Generic{NodeKind: ast.KindFunctionItemConstructor, Attrs: map[string]interface{}{"params": []string{"a", "b"}}, Kids: []ast.Node{body}}

	out := drainWithContext(t, node, Env{})
	require.Len(t, out, 1)
	fn := out[0].(item.Function)
	assert.Equal(t, 2, fn.Arity())
}

func TestFunctionItemConstructorCapturesNameWhenGiven(t *testing.T) {
	body := literalNode(item.NewInteger(1))
	node := &ast.Generic{NodeKind: ast.KindFunctionItemConstructor, Attrs: map[string]interface{}{"name": "local:identity"}, Kids: []ast.Node{body}}

	out := drainWithContext(t, node, Env{})
	fn := out[0].(item.Function)
	assert.Equal(t, "local:identity", fn.Name)
}

func TestFunctionItemConstructorRequiresRuntimeContext(t *testing.T) {
	body := literalNode(item.NewInteger(1))
	node := &ast.Generic{NodeKind: ast.KindFunctionItemConstructor, Kids: []ast.Node{body}}

	it, err := Build(node, Env{})
	require.NoError(t, err)
	err = it.Open(nil)
	assert.Error(t, err)
}
