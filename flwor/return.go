package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// returnIterator is the terminal stage of a FLWOR pipeline: it drives
// the upstream TupleIterator, evaluates the return expression against
// each tuple's bindings, and flattens the per-tuple result sequences
// into the single item stream a RuntimeIterator exposes. This is the
// one place a TupleIterator chain turns back into a RuntimeIterator.
type returnIterator struct {
	iterator.Guard
	returnExpr ast.Node
	env        expr.Env
	upstream   TupleIterator
	rootCtx    *runtimectx.Context

	buffer []item.Item
	bufPos int
}

// BuildReturn wraps upstream (the fully assembled clause chain) with
// the FLWOR's return expression, producing the RuntimeIterator
// expr.BuildFLWOR hands back to the rest of the expression tree.
func BuildReturn(node ast.Node, env expr.Env, upstream TupleIterator) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) != 1 {
		return nil, jerrors.NewDynamicError(node.Pos(), "return clause requires exactly 1 expression child")
	}
	return &returnIterator{returnExpr: children[0], env: env, upstream: upstream}, nil
}

func (r *returnIterator) Open(ctx interface{}) error {
	if err := r.Guard.MarkOpen(); err != nil {
		return err
	}
	rc, ok := ctx.(*runtimectx.Context)
	if !ok {
		return jerrors.NewDynamicError(jerrors.Position{}, "FLWOR return clause requires a runtime context")
	}
	r.rootCtx = rc
	return r.upstream.Open(rc)
}

func (r *returnIterator) fillBuffer() (bool, error) {
	for r.bufPos >= len(r.buffer) {
		has, err := r.upstream.HasNext()
		if err != nil || !has {
			return false, err
		}
		tup, err := r.upstream.Next()
		if err != nil {
			return false, err
		}
		it, err := expr.Build(r.returnExpr, r.env)
		if err != nil {
			return false, err
		}
		evalCtx := tup.ToContext(r.rootCtx)
		if err := it.Open(evalCtx); err != nil {
			return false, err
		}
		seq, err := iterator.Drain(it)
		if err != nil {
			return false, err
		}
		r.buffer = seq
		r.bufPos = 0
	}
	return true, nil
}

func (r *returnIterator) HasNext() (bool, error) {
	if err := r.Guard.RequireOpen(); err != nil {
		return false, err
	}
	return r.fillBuffer()
}

func (r *returnIterator) Next() (item.Item, error) {
	if err := r.Guard.RequireOpen(); err != nil {
		return nil, err
	}
	has, err := r.fillBuffer()
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, jerrors.NewIteratorFlow("Next called with no item available")
	}
	v := r.buffer[r.bufPos]
	r.bufPos++
	return v, nil
}

func (r *returnIterator) Close() error {
	r.Guard.MarkClosed()
	return r.upstream.Close()
}

func (r *returnIterator) Reset() error {
	r.buffer = nil
	r.bufPos = 0
	return r.upstream.Reset()
}

func (r *returnIterator) IsRDD() bool                                       { return false }
func (r *returnIterator) GetRDD() (distributed.PartitionedCollection, error) { return nil, nil }
func (r *returnIterator) IsDataFrame() bool                                 { return false }
func (r *returnIterator) GetDataFrame() (distributed.DataFrame, error)     { return nil, nil }
func (r *returnIterator) ExecutionKind() iterator.ExecutionKind            { return iterator.ExecutionLocal }
