package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// buildValueComparison implements value comparisons: both
// operands must be singletons (error otherwise) and the result is a
// single boolean.
func buildValueComparison(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	op, err := requiredStringAttr(node, "op")
	if err != nil {
		return nil, err
	}
	children := node.Children()
	if len(children) != 2 {
		return nil, jerrors.NewDynamicError(node.Pos(), "value comparison requires exactly 2 children")
	}
	left, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	right, err := Build(children[1], env)
	if err != nil {
		return nil, err
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		lv, lOK, err := singletonOf(left, ctx, node.Pos())
		if err != nil {
			return nil, err
		}
		rv, rOK, err := singletonOf(right, ctx, node.Pos())
		if err != nil {
			return nil, err
		}
		if !lOK || !rOK {
			return nil, nil
		}
		result, err := compareOp(node.Pos(), op, lv, rv)
		if err != nil {
			return nil, err
		}
		return []item.Item{item.NewBoolean(result)}, nil
	}), nil
}

// buildGeneralComparison implements general comparisons:
// existential matching over the cartesian product of both operand
// sequences, with an empty operand yielding false rather than an
// error.
func buildGeneralComparison(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	op, err := requiredStringAttr(node, "op")
	if err != nil {
		return nil, err
	}
	children := node.Children()
	if len(children) != 2 {
		return nil, jerrors.NewDynamicError(node.Pos(), "general comparison requires exactly 2 children")
	}
	left, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	right, err := Build(children[1], env)
	if err != nil {
		return nil, err
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		ls, err := evalSequence(left, ctx)
		if err != nil {
			return nil, err
		}
		rs, err := evalSequence(right, ctx)
		if err != nil {
			return nil, err
		}
		for _, lv := range ls {
			for _, rv := range rs {
				match, err := compareOp(node.Pos(), op, lv, rv)
				if err != nil {
					return nil, err
				}
				if match {
					return []item.Item{item.True}, nil
				}
			}
		}
		return []item.Item{item.False}, nil
	}), nil
}

func compareOp(pos ast.Position, op string, lv, rv item.Item) (bool, error) {
	if op == "eq" || op == "ne" {
		eq, err := item.Equal(lv, rv)
		if err != nil {
			return false, err
		}
		if op == "eq" {
			return eq, nil
		}
		return !eq, nil
	}
	c, err := item.Compare(lv, rv)
	if err != nil {
		return false, jerrors.Wrap(jerrors.UnexpectedType, pos, err, "comparison %q", op)
	}
	switch op {
	case "lt":
		return c < 0, nil
	case "le":
		return c <= 0, nil
	case "gt":
		return c > 0, nil
	case "ge":
		return c >= 0, nil
	default:
		return false, jerrors.NewInvalidArgument(pos, "unknown comparison operator %q", op)
	}
}
