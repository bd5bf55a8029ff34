package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// buildFunctionCall implements a function call, covering both a
// statically named call ("name" attribute present, resolved through
// env.Registry — this is how every built-in and every named
// user-defined function is invoked) and a dynamic call through a
// function item value (no "name" attribute: the first child is the
// callee expression, the rest are arguments — covers higher-order use
// like calling a parameter bound to a function item, or an inline
// function item applied immediately).
func buildFunctionCall(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	if name, ok := stringAttr(node, "name"); ok {
		return buildNamedCall(node, env, name)
	}
	return buildDynamicCall(node, env)
}

func buildNamedCall(node ast.Node, env Env, name string) (iterator.RuntimeIterator, error) {
	children := node.Children()
	args := make([]iterator.RuntimeIterator, len(children))
	for i, c := range children {
		it, err := Build(c, env)
		if err != nil {
			return nil, err
		}
		args[i] = it
	}
	if env.Registry == nil {
		return nil, jerrors.NewFunctionNotFound(node.Pos(), "function %s#%d not found", name, len(args))
	}
	factory, ok := env.Registry.Resolve(name, len(args))
	if !ok {
		return nil, jerrors.NewFunctionNotFound(node.Pos(), "function %s#%d not found", name, len(args))
	}
	return &deferredCall{pos: node.Pos(), build: func(ctx interface{}) (iterator.RuntimeIterator, error) {
		rc, ok := ctx.(*runtimectx.Context)
		if !ok {
			return nil, jerrors.NewDynamicError(node.Pos(), "function call requires a runtime context")
		}
		return factory(rc, args)
	}}, nil
}

func buildDynamicCall(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) == 0 {
		return nil, jerrors.NewDynamicError(node.Pos(), "dynamic function call requires a callee expression")
	}
	callee, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	argNodes := children[1:]
	args := make([]iterator.RuntimeIterator, len(argNodes))
	for i, c := range argNodes {
		it, err := Build(c, env)
		if err != nil {
			return nil, err
		}
		args[i] = it
	}
	return &deferredCall{pos: node.Pos(), build: func(ctx interface{}) (iterator.RuntimeIterator, error) {
		fv, ok, err := singletonOf(callee, ctx, node.Pos())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, jerrors.NewDynamicError(node.Pos(), "dynamic call target must be a singleton function item")
		}
		fn, ok := fv.(item.Function)
		if !ok {
			return nil, jerrors.NewTypeError(node.Pos(), "dynamic call target must be a function item, got %s", fv.Kind())
		}
		return invokeFunction(node.Pos(), fn, args, ctx)
	}}, nil
}

// invokeFunction binds each evaluated argument to its formal parameter
// name in a fresh child of the function's captured closure context
// (never the caller's context — lexical, not dynamic, scoping)
// and builds the function body against the closure's own expr.Env so
// that recursive calls resolve through the same registry the function
// was defined with.
func invokeFunction(pos ast.Position, fn item.Function, args []iterator.RuntimeIterator, callerCtx interface{}) (iterator.RuntimeIterator, error) {
	if len(args) != fn.Arity() {
		return nil, jerrors.NewInvalidArgument(pos, "function %s expects %d arguments, got %d", fn.Name, fn.Arity(), len(args))
	}
	closure, ok := fn.Env.(*closureEnv)
	if !ok {
		return nil, jerrors.NewDynamicError(pos, "function item has no usable closure environment")
	}
	callCtx := closure.snapshot.Child()
	for i, paramName := range fn.Params {
		seq, err := evalSequence(args[i], callerCtx)
		if err != nil {
			return nil, err
		}
		callCtx.BindSequence(paramName, seq)
	}
	body, err := Build(fn.Body, closure.env)
	if err != nil {
		return nil, err
	}
	return &pinnedContext{inner: body, ctx: callCtx}, nil
}

// pinnedContext wraps an iterator built from a function body so that
// it always opens against the call's own context (parameters bound,
// lexical scope from the closure) rather than whatever context the
// caller happens to pass to Open — necessary because deferredCall.Open
// forwards its caller's ctx unconditionally.
type pinnedContext struct {
	inner iterator.RuntimeIterator
	ctx   *runtimectx.Context
}

func (p *pinnedContext) Open(interface{}) error                              { return p.inner.Open(p.ctx) }
func (p *pinnedContext) HasNext() (bool, error)                              { return p.inner.HasNext() }
func (p *pinnedContext) Next() (item.Item, error)                            { return p.inner.Next() }
func (p *pinnedContext) Close() error                                        { return p.inner.Close() }
func (p *pinnedContext) Reset() error                                        { return p.inner.Reset() }
func (p *pinnedContext) IsRDD() bool                                         { return p.inner.IsRDD() }
func (p *pinnedContext) GetRDD() (distributed.PartitionedCollection, error)  { return p.inner.GetRDD() }
func (p *pinnedContext) IsDataFrame() bool                                   { return p.inner.IsDataFrame() }
func (p *pinnedContext) GetDataFrame() (distributed.DataFrame, error)        { return p.inner.GetDataFrame() }
func (p *pinnedContext) ExecutionKind() iterator.ExecutionKind               { return p.inner.ExecutionKind() }

// deferredCall defers its inner iterator's construction to Open time,
// since a named call's factory and a dynamic call's target function
// both need the live runtime context (for argument evaluation and, in
// the named case, registry-side context-sensitive construction) that
// isn't available until Open is actually invoked.
type deferredCall struct {
	iterator.Guard
	pos   ast.Position
	build func(ctx interface{}) (iterator.RuntimeIterator, error)
	inner iterator.RuntimeIterator
}

func (d *deferredCall) Open(ctx interface{}) error {
	if err := d.Guard.MarkOpen(); err != nil {
		return err
	}
	inner, err := d.build(ctx)
	if err != nil {
		return err
	}
	if err := inner.Open(ctx); err != nil {
		return err
	}
	d.inner = inner
	return nil
}

func (d *deferredCall) HasNext() (bool, error) {
	if err := d.Guard.RequireOpen(); err != nil {
		return false, err
	}
	return d.inner.HasNext()
}

func (d *deferredCall) Next() (item.Item, error) {
	if err := d.Guard.RequireOpen(); err != nil {
		return nil, err
	}
	return d.inner.Next()
}

func (d *deferredCall) Close() error {
	d.Guard.MarkClosed()
	if d.inner != nil {
		return d.inner.Close()
	}
	return nil
}

func (d *deferredCall) Reset() error {
	if d.inner == nil {
		return jerrors.NewNotRewindable("function call iterator was never opened")
	}
	return d.inner.Reset()
}

func (d *deferredCall) IsRDD() bool { return d.inner != nil && d.inner.IsRDD() }

func (d *deferredCall) GetRDD() (distributed.PartitionedCollection, error) {
	if d.inner == nil {
		return nil, jerrors.NewIteratorFlow("GetRDD called before Open")
	}
	return d.inner.GetRDD()
}

func (d *deferredCall) IsDataFrame() bool { return d.inner != nil && d.inner.IsDataFrame() }

func (d *deferredCall) GetDataFrame() (distributed.DataFrame, error) {
	if d.inner == nil {
		return nil, jerrors.NewIteratorFlow("GetDataFrame called before Open")
	}
	return d.inner.GetDataFrame()
}

func (d *deferredCall) ExecutionKind() iterator.ExecutionKind {
	if d.inner == nil {
		return iterator.ExecutionLocal
	}
	return d.inner.ExecutionKind()
}
