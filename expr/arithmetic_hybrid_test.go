package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

func TestArithmeticHybridDispatchesThroughRDDWhenModeIsRDD(t *testing.T) {
	coll := distributed.NewLocalCollection([]item.Item{item.NewInteger(1), item.NewInteger(2), item.NewInteger(3)}, 0)
	ctx := runtimectx.New(nil, nil)
	ctx.Bind("xs", runtimectx.CollectionBinding(coll))

	node := &ast.Generic{
		NodeKind: ast.KindArithmetic,
		ExecMode: ast.ModeRDD,
		Attrs:    map[string]interface{}{"op": "+"},
		Kids:     []ast.Node{varRefNode("xs"), literalNode(item.NewInteger(10))},
	}
	it, err := Build(node, Env{})
	require.NoError(t, err)
	require.NoError(t, it.Open(ctx))

	assert.True(t, it.IsRDD())
	rdd, err := it.GetRDD()
	require.NoError(t, err)
	out, err := rdd.Collect()
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, int64(11), out[0].(item.Integer).Value)
	assert.Equal(t, int64(12), out[1].(item.Integer).Value)
	assert.Equal(t, int64(13), out[2].(item.Integer).Value)
}

func TestArithmeticHybridFallsBackToLocalWhenNeitherOperandIsRDD(t *testing.T) {
	ctx := runtimectx.New(nil, nil)
	node := &ast.Generic{
		NodeKind: ast.KindArithmetic,
		ExecMode: ast.ModeRDD,
		Attrs:    map[string]interface{}{"op": "+"},
		Kids:     []ast.Node{literalNode(item.NewInteger(2)), literalNode(item.NewInteger(3))},
	}
	it, err := Build(node, Env{})
	require.NoError(t, err)
	require.NoError(t, it.Open(ctx))

	assert.False(t, it.IsRDD())
	out, err := iterator.Drain(it)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(5), out[0].(item.Integer).Value)
}
