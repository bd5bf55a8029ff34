package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/ast"
)

func varRef(name string) ast.Node {
	return &ast.Generic{NodeKind: ast.KindVarRef, Attrs: map[string]interface{}{"name": name}}
}

func TestBuildExplainTreeLabelsVarRef(t *testing.T) {
	tree := BuildExplainTree(varRef("x"))
	assert.Equal(t, "varRef", tree.Kind)
	assert.Equal(t, "$x", tree.Detail)
}

func TestBuildExplainTreeWalksChildren(t *testing.T) {
	node := &ast.Generic{
		NodeKind: ast.KindArithmetic,
		Attrs:    map[string]interface{}{"op": "+"},
		Kids:     []ast.Node{varRef("a"), varRef("b")},
	}

	tree := BuildExplainTree(node)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "+", tree.Detail)
	assert.Equal(t, "$a", tree.Children[0].Detail)
	assert.Equal(t, "$b", tree.Children[1].Detail)
}

func TestBuildExplainTreeLabelsFunctionCall(t *testing.T) {
	node := &ast.Generic{
		NodeKind: ast.KindFunctionCall,
		Attrs:    map[string]interface{}{"name": "count"},
		Kids:     []ast.Node{varRef("x")},
	}
	tree := BuildExplainTree(node)
	assert.Equal(t, "count#1", tree.Detail)
}

func TestExplainRenderIndentsByDepth(t *testing.T) {
	node := &ast.Generic{
		NodeKind: ast.KindArithmetic,
		Attrs:    map[string]interface{}{"op": "+"},
		Kids:     []ast.Node{varRef("a")},
	}
	tree := BuildExplainTree(node)

	out := NewExplain(false).Render(tree)
	assert.Contains(t, out, "arithmetic +")
	assert.Contains(t, out, "  varRef $a")
}

func TestExplainSummarizeCountsByKind(t *testing.T) {
	node := &ast.Generic{
		NodeKind: ast.KindArithmetic,
		Attrs:    map[string]interface{}{"op": "+"},
		Kids:     []ast.Node{varRef("a"), varRef("b")},
	}
	tree := BuildExplainTree(node)

	out := NewExplain(false).Summarize(tree)
	assert.Contains(t, out, "varRef")
	assert.Contains(t, out, "arithmetic")
	assert.Contains(t, out, "2")
}
