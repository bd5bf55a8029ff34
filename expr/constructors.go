package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// buildSequenceConstructor concatenates each child's sequence in
// order, flattening (JSONiq sequences never nest).
func buildSequenceConstructor(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	built := make([]iterator.RuntimeIterator, len(children))
	for i, c := range children {
		it, err := Build(c, env)
		if err != nil {
			return nil, err
		}
		built[i] = it
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		var out []item.Item
		for _, child := range built {
			seq, err := evalSequence(child, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, seq...)
		}
		return out, nil
	}), nil
}

// buildArrayConstructor wraps its children's concatenated sequence as
// a single Array item.
func buildArrayConstructor(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	built := make([]iterator.RuntimeIterator, len(children))
	for i, c := range children {
		it, err := Build(c, env)
		if err != nil {
			return nil, err
		}
		built[i] = it
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		var b item.ArrayBuilder
		for _, child := range built {
			seq, err := evalSequence(child, ctx)
			if err != nil {
				return nil, err
			}
			for _, it := range seq {
				b.Append(it)
			}
		}
		return []item.Item{b.Build()}, nil
	}), nil
}

// buildObjectConstructor evaluates paired key/value expressions into
// an Object, rejecting duplicate keys per item.ObjectBuilder. Children
// alternate key-expression, value-expression.
func buildObjectConstructor(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children)%2 != 0 {
		return nil, jerrors.NewDynamicError(node.Pos(), "object constructor requires an even number of children (key, value pairs)")
	}
	built := make([]iterator.RuntimeIterator, len(children))
	for i, c := range children {
		it, err := Build(c, env)
		if err != nil {
			return nil, err
		}
		built[i] = it
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		b := item.NewObjectBuilder()
		for i := 0; i < len(built); i += 2 {
			kv, kOK, err := singletonOf(built[i], ctx, node.Pos())
			if err != nil {
				return nil, err
			}
			if !kOK {
				return nil, jerrors.NewDynamicError(node.Pos(), "object key expression must produce exactly one item")
			}
			ks, ok := kv.(item.String)
			if !ok {
				return nil, jerrors.NewTypeError(node.Pos(), "object key must be a string, got %s", kv.Kind())
			}
			vv, vOK, err := singletonOf(built[i+1], ctx, node.Pos())
			if err != nil {
				return nil, err
			}
			if !vOK {
				vv = item.NullValue
			}
			if err := b.Put(ks.Value, vv); err != nil {
				return nil, err
			}
		}
		return []item.Item{b.Build()}, nil
	}), nil
}
