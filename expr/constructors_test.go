package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
)

func TestSequenceConstructorFlattensChildren(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindSequenceConstructor, Kids: []ast.Node{
		literalNode(item.NewInteger(1)), literalNode(item.NewInteger(2)), literalNode(item.NewInteger(3)),
	}}
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 3)
	assert.Equal(t, int64(2), out[1].(item.Integer).Value)
}

func TestArrayConstructorWrapsItemsAsSingleArray(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindArrayConstructor, Kids: []ast.Node{
		literalNode(item.NewInteger(1)), literalNode(item.NewInteger(2)),
	}}
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	arr := out[0].(item.Array)
	assert.Equal(t, 2, arr.Len())
}

func TestObjectConstructorBuildsKeyValuePairs(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindObjectConstructor, Kids: []ast.Node{
		literalNode(item.NewString("name")), literalNode(item.NewString("Alice")),
		literalNode(item.NewString("age")), literalNode(item.NewInteger(30)),
	}}
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	obj := out[0].(item.Object)
	v, ok := obj.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", v.(item.String).Value)
}

func TestObjectConstructorRequiresEvenChildCount(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindObjectConstructor, Kids: []ast.Node{
		literalNode(item.NewString("name")),
	}}
	_, err := Build(node, Env{})
	assert.Error(t, err)
}

func TestObjectConstructorNonStringKeyIsTypeError(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindObjectConstructor, Kids: []ast.Node{
		literalNode(item.NewInteger(1)), literalNode(item.NewString("v")),
	}}
	it, err := Build(node, Env{})
	require.NoError(t, err)
	err = it.Open(nil)
	assert.Error(t, err)
}
