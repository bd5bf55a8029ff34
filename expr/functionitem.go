package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// buildFunctionItemConstructor implements an inline function item
// ("function ($a, $b) { body }"): produces a single item.Function
// closing over the dynamic context present at construction time —
// closures own an immutable snapshot of their lexical scope. Params
// come from the node's "params" []string attribute; the
// single child is the function body.
func buildFunctionItemConstructor(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	params, err := optionalStringSliceAttr(node, "params")
	if err != nil {
		return nil, err
	}
	children := node.Children()
	if len(children) != 1 {
		return nil, jerrors.NewDynamicError(node.Pos(), "function item constructor requires exactly 1 body child")
	}
	body := children[0]
	name, _ := stringAttr(node, "name")

	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		rc, ok := ctx.(*runtimectx.Context)
		if !ok {
			return nil, jerrors.NewDynamicError(node.Pos(), "function item constructor requires a runtime context")
		}
		fn := item.NewFunction(name, params, body, &closureEnv{snapshot: rc.Snapshot(), env: env})
		return []item.Item{fn}, nil
	}), nil
}

// closureEnv bundles the captured dynamic-context snapshot with the
// expr.Env a function body needs to resolve further function calls
// inside itself, since item.Function.Env only has room for a single
// opaque value.
type closureEnv struct {
	snapshot *runtimectx.Context
	env      Env
}
