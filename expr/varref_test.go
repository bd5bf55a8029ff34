package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

func varRefNode(name string) ast.Node {
	return &ast.Generic{NodeKind: ast.KindVarRef, Attrs: map[string]interface{}{"name": name}}
}

func TestBuildVarRefResolvesBoundSequence(t *testing.T) {
	rc := runtimectx.New(nil, nil)
	rc.BindSequence("x", item.Sequence{item.NewInteger(1), item.NewInteger(2)})

	it, err := Build(varRefNode("x"), Env{})
	require.NoError(t, err)
	require.NoError(t, it.Open(rc))
	defer it.Close()

	out, err := iterator.Drain(it)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].(item.Integer).Value)
}

func TestBuildVarRefUnboundNameErrors(t *testing.T) {
	rc := runtimectx.New(nil, nil)
	it, err := Build(varRefNode("nope"), Env{})
	require.NoError(t, err)
	err = it.Open(rc)
	assert.Error(t, err)
}

func TestBuildVarRefRequiresRuntimeContext(t *testing.T) {
	it, err := Build(varRefNode("x"), Env{})
	require.NoError(t, err)
	err = it.Open(nil)
	assert.Error(t, err)
}
