package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// buildLiteral reads the pre-parsed item.Item from the node's "value"
// attribute. Parsing lexical forms into items (including the
// corrected integer/decimal-overflow contract in
// item.ParseIntegerOrDecimal) is the parser's job; this core only
// evaluates already-typed literals.
func buildLiteral(node ast.Node) (iterator.RuntimeIterator, error) {
	g, ok := node.(interface{ Attr(string) (interface{}, bool) })
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "literal node does not expose attributes")
	}
	v, ok := g.Attr("value")
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "literal node missing \"value\" attribute")
	}
	it, ok := v.(item.Item)
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "literal node's \"value\" attribute is not an item.Item")
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		return []item.Item{it}, nil
	}), nil
}
