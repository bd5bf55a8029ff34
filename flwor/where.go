package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// whereClause implements "where cond": passes through input tuples
// whose cond has effective boolean value true, dropping the rest.
// Binds no new variable.
type whereClause struct {
	Base
	condExpr ast.Node
	env      expr.Env
	upstream TupleIterator
	rootCtx  *runtimectx.Context

	pending    Tuple
	hasPending bool
}

func BuildWhere(node ast.Node, env expr.Env, upstream TupleIterator) (TupleIterator, error) {
	children := node.Children()
	if len(children) != 1 {
		return nil, jerrors.NewDynamicError(node.Pos(), "where clause requires exactly 1 condition child")
	}
	return &whereClause{
		Base: Base{
			BoundVars:    upstream.GetVariablesBoundInCurrentFLWORExpression(),
			Dependencies: upstream.GetVariableDependencies(),
			Projection:   upstream.GetProjection(),
		},
		condExpr: children[0],
		env:      env,
		upstream: upstream,
	}, nil
}

func (w *whereClause) Open(ctx *runtimectx.Context) error {
	w.rootCtx = ctx
	return w.upstream.Open(ctx)
}

func (w *whereClause) HasNext() (bool, error) {
	if w.hasPending {
		return true, nil
	}
	for {
		has, err := w.upstream.HasNext()
		if err != nil || !has {
			return false, err
		}
		tup, err := w.upstream.Next()
		if err != nil {
			return false, err
		}
		it, err := expr.Build(w.condExpr, w.env)
		if err != nil {
			return false, err
		}
		evalCtx := tup.ToContext(w.rootCtx)
		if err := it.Open(evalCtx); err != nil {
			return false, err
		}
		seq, err := iterator.Drain(it)
		if err != nil {
			return false, err
		}
		ebv, err := seq.EffectiveBooleanValue()
		if err != nil {
			return false, err
		}
		if ebv {
			w.pending = tup
			w.hasPending = true
			return true, nil
		}
	}
}

func (w *whereClause) Next() (Tuple, error) {
	has, err := w.HasNext()
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, jerrors.NewIteratorFlow("Next called with no tuple available")
	}
	w.hasPending = false
	return w.pending, nil
}

func (w *whereClause) Close() error { return w.upstream.Close() }

func (w *whereClause) Reset() error {
	w.hasPending = false
	w.pending = nil
	return w.upstream.Reset()
}
