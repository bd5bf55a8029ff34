package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// init wires expr.BuildFLWOR to this package's pipeline builder,
// completing the expr<->flwor cycle-break: expr never imports flwor,
// but any program that imports flwor (directly or transitively, e.g.
// through registry) gets FLWOR support for free the moment this file
// runs.
func init() {
	expr.BuildFLWOR = func(node ast.Node, env expr.Env, ctx *runtimectx.Context) (iterator.RuntimeIterator, error) {
		return BuildPipeline(node, env)
	}
}
