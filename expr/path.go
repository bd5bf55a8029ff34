package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// buildPathStep implements an object-lookup / array-unboxing step
// (".key", "[[index]]"; function calls used as a step go through
// buildFunctionCall instead). The single child is the source
// expression; the step carries either a "key" string attribute
// (object lookup by name) or an "index" int attribute (array member
// extraction), with neither present meaning array unboxing.
func buildPathStep(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) != 1 {
		return nil, jerrors.NewDynamicError(node.Pos(), "path step requires exactly 1 child")
	}
	source, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	key, hasKey := stringAttr(node, "key")
	idx, hasIdx := intAttr(node, "index")

	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		seq, err := evalSequence(source, ctx)
		if err != nil {
			return nil, err
		}
		var out []item.Item
		for _, v := range seq {
			switch {
			case hasKey:
				obj, ok := v.(item.Object)
				if !ok {
					return nil, jerrors.NewTypeError(node.Pos(), "object lookup requires an object, got %s", v.Kind())
				}
				if val, present := obj.Get(key); present {
					out = append(out, val)
				}
			case hasIdx:
				arr, ok := v.(item.Array)
				if !ok {
					return nil, jerrors.NewTypeError(node.Pos(), "array indexing requires an array, got %s", v.Kind())
				}
				if val, present := arr.Get(idx); present {
					out = append(out, val)
				}
			default:
				arr, ok := v.(item.Array)
				if !ok {
					return nil, jerrors.NewTypeError(node.Pos(), "array unboxing requires an array, got %s", v.Kind())
				}
				out = append(out, arr.Items...)
			}
		}
		return out, nil
	}), nil
}

// predicateVar is the implicit variable a predicate step binds the
// candidate item to while evaluating, following janus-datalog's
// convention of exposing the current item under a reserved name
// rather than inventing new context-threading machinery.
const predicateVar = "$$"

// buildPredicateStep implements a "[predicate]" filter: keeps
// items of the source sequence whose predicate evaluates either to an
// integer equal to the item's 1-based position (numeric predicate
// shorthand) or whose effective boolean value is true, with the
// current candidate bound to $$ and Position/Size set for the
// duration of the predicate's evaluation.
func buildPredicateStep(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) != 2 {
		return nil, jerrors.NewDynamicError(node.Pos(), "predicate step requires exactly 2 children (source, predicate)")
	}
	source, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	predicateNode := children[1]
	if _, err := Build(predicateNode, env); err != nil {
		return nil, err
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		rc, ok := ctx.(*runtimectx.Context)
		if !ok {
			return nil, jerrors.NewDynamicError(node.Pos(), "predicate step requires a runtime context")
		}
		seq, err := evalSequence(source, ctx)
		if err != nil {
			return nil, err
		}
		var out []item.Item
		for i, v := range seq {
			scoped := rc.Child().WithPosition(i+1, len(seq))
			scoped.BindSequence(predicateVar, item.Sequence{v})
			// A built iterator is single-use, so each candidate gets a
			// freshly built predicate.
			predicate, err := Build(predicateNode, env)
			if err != nil {
				return nil, err
			}
			keep, err := evalPredicate(predicate, predicateNode, scoped, i+1)
			if err != nil {
				return nil, err
			}
			if keep {
				out = append(out, v)
			}
		}
		return out, nil
	}), nil
}

func evalPredicate(predicate iterator.RuntimeIterator, node ast.Node, scoped *runtimectx.Context, position int) (bool, error) {
	v, ok, err := singletonOf(predicate, scoped, node.Pos())
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if n, ok := v.(item.Integer); ok {
		return n.Value == int64(position), nil
	}
	seq := item.Sequence{v}
	return seq.EffectiveBooleanValue()
}
