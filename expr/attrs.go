package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

type attrHolder interface {
	Attr(string) (interface{}, bool)
}

func requiredStringAttr(node ast.Node, key string) (string, error) {
	g, ok := node.(attrHolder)
	if !ok {
		return "", jerrors.NewDynamicError(node.Pos(), "node does not expose attributes")
	}
	v, ok := g.Attr(key)
	if !ok {
		return "", jerrors.NewDynamicError(node.Pos(), "node missing %q attribute", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", jerrors.NewDynamicError(node.Pos(), "node's %q attribute is not a string", key)
	}
	return s, nil
}

// stringAttr returns a string attribute and whether it was present,
// without erroring when absent — used for optional step qualifiers
// like a path step's "key".
func stringAttr(node ast.Node, key string) (string, bool) {
	g, ok := node.(attrHolder)
	if !ok {
		return "", false
	}
	v, ok := g.Attr(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intAttr returns an int attribute and whether it was present.
func intAttr(node ast.Node, key string) (int, bool) {
	g, ok := node.(attrHolder)
	if !ok {
		return 0, false
	}
	v, ok := g.Attr(key)
	if !ok {
		return 0, false
	}
	i, ok := v.(int)
	return i, ok
}

func optionalStringSliceAttr(node ast.Node, key string) ([]string, error) {
	g, ok := node.(attrHolder)
	if !ok {
		return nil, nil
	}
	v, ok := g.Attr(key)
	if !ok {
		return nil, nil
	}
	s, ok := v.([]string)
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "node's %q attribute is not a []string", key)
	}
	return s, nil
}

// singletonOf opens child against ctx and requires exactly zero or
// one result items, as most expression operators (arithmetic,
// comparisons, range bounds) require of their operands.
func singletonOf(child iterator.RuntimeIterator, ctx interface{}, pos ast.Position) (item.Item, bool, error) {
	seq, err := evalSequence(child, ctx)
	if err != nil {
		return nil, false, err
	}
	switch len(seq) {
	case 0:
		return nil, false, nil
	case 1:
		return seq[0], true, nil
	default:
		return nil, false, jerrors.NewDynamicError(pos, "operator requires a singleton operand, got %d items", len(seq))
	}
}
