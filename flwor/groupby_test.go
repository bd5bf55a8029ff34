package flwor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/registry"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

func TestGroupByCrossTypeKeysPropagatesTypeError(t *testing.T) {
	node := flworNode(
		forClauseNode("x", &ast.Generic{NodeKind: ast.KindSequenceConstructor, Kids: []ast.Node{
			literalNode(item.NewInteger(1)),
			literalNode(item.NewString("a")),
		}}),
		&ast.Generic{NodeKind: ast.KindGroupByClause, Kids: []ast.Node{
			&ast.Generic{Attrs: map[string]interface{}{"name": "g"}, Kids: []ast.Node{varRefNode("x")}},
		}},
		returnClauseNode(varRefNode("g")),
	)

	logger, _ := zap.NewDevelopment()
	rc := runtimectx.New(logger, nil)
	reg := registry.NewFunctionRegistry()
	env := expr.Env{Registry: reg}

	it, err := expr.Build(node, env)
	require.NoError(t, err)
	defer it.Close()
	openErr := it.Open(rc)
	if openErr == nil {
		_, drainErr := iterator.Drain(it)
		assert.Error(t, drainErr, "grouping keys 1 and \"a\" must not silently form two groups")
		return
	}
	assert.Error(t, openErr)
}
