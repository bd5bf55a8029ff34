// Package expr builds RuntimeIterators from expression AST nodes: the
// evaluator half of the core, generalizing janus-datalog's
// Predicate.Eval(bindings) (datalog/query/predicate.go) from a single
// boolean result over Datalog symbol bindings to a streamed item
// sequence over a runtimectx.Context.
package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// BuildFLWOR lets the flwor package plug in FLWOR-expression
// evaluation without expr importing flwor (which itself must import
// expr to evaluate each clause's scalar expressions). flwor's package
// init sets this; until something does, a KindFLWOR node is a build
// error rather than a nil-pointer panic.
var BuildFLWOR func(node ast.Node, env Env, ctx *runtimectx.Context) (iterator.RuntimeIterator, error)

// Registry is the subset of registry.FunctionRegistry that expr needs
// to resolve function calls, kept as an interface here so expr does
// not import the registry package directly (registry, in turn,
// registers built-ins implemented in terms of expr/item, which would
// cycle back). Callers pass their *registry.FunctionRegistry, which
// satisfies this by construction.
type Registry interface {
	Resolve(name string, arity int) (Factory, bool)
}

// Factory builds the RuntimeIterator implementing a resolved
// function's body, given its already-evaluated argument iterators.
type Factory func(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error)

// Env carries everything Build needs beyond the node itself: the
// function registry for KindFunctionCall, kept separate from
// runtimectx.Context since the registry is query-static while the
// context is per-tuple.
type Env struct {
	Registry Registry
}

// Build compiles an AST node into a RuntimeIterator, not yet opened.
// Build itself does no evaluation — it only wires closures; Open(ctx)
// does the actual work, so a single built iterator can be reused
// across distinct contexts only by rebuilding (iterators are
// single-use, mirroring janus-datalog's Iterator interface).
func Build(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	switch node.Kind() {
	case ast.KindLiteral:
		return buildLiteral(node)
	case ast.KindVarRef:
		return buildVarRef(node)
	case ast.KindArithmetic:
		return buildArithmetic(node, env)
	case ast.KindValueComparison:
		return buildValueComparison(node, env)
	case ast.KindGeneralComparison:
		return buildGeneralComparison(node, env)
	case ast.KindLogical:
		return buildLogical(node, env)
	case ast.KindRange:
		return buildRange(node, env)
	case ast.KindSequenceConstructor:
		return buildSequenceConstructor(node, env)
	case ast.KindArrayConstructor:
		return buildArrayConstructor(node, env)
	case ast.KindObjectConstructor:
		return buildObjectConstructor(node, env)
	case ast.KindPathStep:
		return buildPathStep(node, env)
	case ast.KindPredicateStep:
		return buildPredicateStep(node, env)
	case ast.KindIf:
		return buildIf(node, env)
	case ast.KindSwitch:
		return buildSwitch(node, env)
	case ast.KindTypeswitch:
		return buildTypeswitch(node, env)
	case ast.KindQuantified:
		return buildQuantified(node, env)
	case ast.KindFunctionCall:
		return buildFunctionCall(node, env)
	case ast.KindFunctionItemConstructor:
		return buildFunctionItemConstructor(node, env)
	case ast.KindFLWOR:
		return &flworDelegate{node: node, env: env}, nil
	default:
		return nil, jerrors.NewDynamicError(node.Pos(), "expr: unsupported node kind %v", node.Kind())
	}
}

// flworDelegate defers to expr.BuildFLWOR at Open time, since building
// the actual FLWOR pipeline needs the per-call *runtimectx.Context
// that Build doesn't have yet.
type flworDelegate struct {
	node     ast.Node
	env      Env
	delegate iterator.RuntimeIterator
}

func (f *flworDelegate) Open(ctx interface{}) error {
	rc, _ := ctx.(*runtimectx.Context)
	if BuildFLWOR == nil {
		return jerrors.NewDynamicError(f.node.Pos(), "expr: FLWOR evaluation not wired (flwor package not imported)")
	}
	built, err := BuildFLWOR(f.node, f.env, rc)
	if err != nil {
		return err
	}
	f.delegate = built
	return f.delegate.Open(ctx)
}

func (f *flworDelegate) HasNext() (bool, error)       { return f.delegate.HasNext() }
func (f *flworDelegate) Next() (item.Item, error)     { return f.delegate.Next() }
func (f *flworDelegate) Close() error                 { return f.delegate.Close() }
func (f *flworDelegate) Reset() error                 { return f.delegate.Reset() }
func (f *flworDelegate) IsRDD() bool                  { return f.delegate != nil && f.delegate.IsRDD() }
func (f *flworDelegate) IsDataFrame() bool            { return f.delegate != nil && f.delegate.IsDataFrame() }

func (f *flworDelegate) GetRDD() (distributed.PartitionedCollection, error) {
	return f.delegate.GetRDD()
}

func (f *flworDelegate) GetDataFrame() (distributed.DataFrame, error) {
	return f.delegate.GetDataFrame()
}

func (f *flworDelegate) ExecutionKind() iterator.ExecutionKind { return f.delegate.ExecutionKind() }
