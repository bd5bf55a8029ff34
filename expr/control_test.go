package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
)

func ifNode(cond, then, els ast.Node) ast.Node {
	return &ast.Generic{NodeKind: ast.KindIf, Kids: []ast.Node{cond, then, els}}
}

func TestIfEvaluatesThenBranchWhenTrue(t *testing.T) {
	node := ifNode(boolLiteral(true), literalNode(item.NewString("yes")), literalNode(item.NewString("no")))
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	assert.Equal(t, "yes", out[0].(item.String).Value)
}

func TestIfEvaluatesElseBranchWhenFalse(t *testing.T) {
	node := ifNode(boolLiteral(false), literalNode(item.NewString("yes")), literalNode(item.NewString("no")))
	out := drainBuilt(t, node, Env{})
	assert.Equal(t, "no", out[0].(item.String).Value)
}

func TestIfRequiresExactlyThreeChildren(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindIf, Kids: []ast.Node{boolLiteral(true)}}
	_, err := Build(node, Env{})
	assert.Error(t, err)
}

func switchNode(subject ast.Node, pairs []ast.Node, def ast.Node) ast.Node {
	kids := append([]ast.Node{subject}, pairs...)
	kids = append(kids, def)
	return &ast.Generic{NodeKind: ast.KindSwitch, Kids: kids}
}

func TestSwitchMatchesFirstEqualCase(t *testing.T) {
	node := switchNode(
		literalNode(item.NewInteger(2)),
		[]ast.Node{
			literalNode(item.NewInteger(1)), literalNode(item.NewString("one")),
			literalNode(item.NewInteger(2)), literalNode(item.NewString("two")),
		},
		literalNode(item.NewString("other")),
	)
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	assert.Equal(t, "two", out[0].(item.String).Value)
}

func TestSwitchFallsThroughToDefault(t *testing.T) {
	node := switchNode(
		literalNode(item.NewInteger(9)),
		[]ast.Node{
			literalNode(item.NewInteger(1)), literalNode(item.NewString("one")),
		},
		literalNode(item.NewString("other")),
	)
	out := drainBuilt(t, node, Env{})
	assert.Equal(t, "other", out[0].(item.String).Value)
}

func typeswitchCase(kind string, result ast.Node) ast.Node {
	return &ast.Generic{Attrs: map[string]interface{}{"kind": kind}, Kids: []ast.Node{result}}
}

func TestTypeswitchMatchesSubjectKind(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindTypeswitch, Kids: []ast.Node{
		literalNode(item.NewString("hi")),
		typeswitchCase("string", literalNode(item.NewString("matched-string"))),
		typeswitchCase("integer", literalNode(item.NewString("matched-integer"))),
		literalNode(item.NewString("default")),
	}}
	out := drainBuilt(t, node, Env{})
	require.Len(t, out, 1)
	assert.Equal(t, "matched-string", out[0].(item.String).Value)
}

func TestTypeswitchFallsThroughToDefaultOnNoMatch(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindTypeswitch, Kids: []ast.Node{
		literalNode(item.NewInteger(1)),
		typeswitchCase("string", literalNode(item.NewString("matched"))),
		literalNode(item.NewString("default")),
	}}
	out := drainBuilt(t, node, Env{})
	assert.Equal(t, "default", out[0].(item.String).Value)
}

func TestTypeswitchUnknownCaseKindErrors(t *testing.T) {
	node := &ast.Generic{NodeKind: ast.KindTypeswitch, Kids: []ast.Node{
		literalNode(item.NewInteger(1)),
		typeswitchCase("bogus-kind", literalNode(item.NewString("matched"))),
		literalNode(item.NewString("default")),
	}}
	_, err := Build(node, Env{})
	assert.Error(t, err)
}
