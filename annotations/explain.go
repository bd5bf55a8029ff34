package annotations

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/dataflowql/jsoniq-core/ast"
)

// attrHolder mirrors expr's own unexported node-attribute accessor;
// duplicated here rather than exported from expr solely for this
// package's benefit, the same call made for registry/lazy.go's
// computed type.
type attrHolder interface {
	Attr(name string) (interface{}, bool)
}

func attrString(node ast.Node, key string) string {
	g, ok := node.(attrHolder)
	if !ok {
		return ""
	}
	v, ok := g.Attr(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// ExplainNode is a static description of one query-plan node, built by
// walking the AST rather than introspecting a built RuntimeIterator —
// RuntimeIterator itself exposes no structural information beyond
// ExecutionKind, since a built iterator is a closure, not a plan.
// ExplainNode is this package's own plan shape.
type ExplainNode struct {
	Kind     string
	Detail   string
	Children []*ExplainNode
}

// BuildExplainTree walks node and its descendants into an ExplainNode
// tree, labeling each with its kind and whatever identifying detail
// (variable name, operator, function name) that node's attributes
// carry.
func BuildExplainTree(node ast.Node) *ExplainNode {
	n := &ExplainNode{Kind: node.Kind().String(), Detail: detailOf(node)}
	for _, child := range node.Children() {
		n.Children = append(n.Children, BuildExplainTree(child))
	}
	return n
}

func detailOf(node ast.Node) string {
	switch node.Kind() {
	case ast.KindVarRef:
		return "$" + attrString(node, "name")
	case ast.KindArithmetic:
		return attrString(node, "op")
	case ast.KindValueComparison, ast.KindGeneralComparison:
		return attrString(node, "op")
	case ast.KindFunctionCall:
		if name := attrString(node, "name"); name != "" {
			return fmt.Sprintf("%s#%d", name, len(node.Children()))
		}
		return "dynamic"
	case ast.KindForClause, ast.KindLetClause, ast.KindCountClause:
		return "$" + attrString(node, "name")
	case ast.KindPathStep:
		if key := attrString(node, "key"); key != "" {
			return "." + key
		}
		return ""
	default:
		return ""
	}
}

// Explain renders an ExplainNode tree as an indented, color-coded
// outline, the tree-shaped counterpart to janus-datalog's flat
// per-event console lines.
type Explain struct {
	useColor bool
}

// NewExplain creates a renderer; useColor should come from detecting
// whether the destination is a terminal.
func NewExplain(useColor bool) *Explain {
	return &Explain{useColor: useColor}
}

// Render writes tree as an indented outline into a single string.
func (e *Explain) Render(tree *ExplainNode) string {
	var b strings.Builder
	e.render(&b, tree, 0)
	return b.String()
}

func (e *Explain) render(b *strings.Builder, n *ExplainNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	kind := n.Kind
	if e.useColor {
		kind = color.BlueString(kind)
	}
	b.WriteString(kind)
	if n.Detail != "" {
		detail := n.Detail
		if e.useColor {
			detail = color.CyanString(detail)
		}
		b.WriteString(" " + detail)
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		e.render(b, child, depth+1)
	}
}

// Summarize renders a flat per-kind occurrence-count table underneath
// the tree outline, grounded on janus-datalog's executor.TableFormatter
// markdown-table convention (tablewriter with the markdown renderer).
func (e *Explain) Summarize(tree *ExplainNode) string {
	counts := map[string]int{}
	var walk func(n *ExplainNode)
	walk = func(n *ExplainNode) {
		counts[n.Kind]++
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(tree)

	var out strings.Builder
	table := tablewriter.NewTable(&out,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"node kind", "count"})
	for kind, count := range counts {
		table.Append([]string{kind, fmt.Sprintf("%d", count)})
	}
	table.Render()
	return out.String()
}
