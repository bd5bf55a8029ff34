package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// buildRange implements "Range (a to b)": a lazily-produced
// inclusive sequence of integers, empty when a > b, erroring if
// either bound isn't an integer singleton. Unlike most expressions
// here, range genuinely benefits from true streaming — a large range
// should not be materialized up front — so it gets its own
// RuntimeIterator instead of going through lazyEval.
func buildRange(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) != 2 {
		return nil, jerrors.NewDynamicError(node.Pos(), "range expression requires exactly 2 children")
	}
	from, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	to, err := Build(children[1], env)
	if err != nil {
		return nil, err
	}
	return &rangeIterator{pos: node.Pos(), from: from, to: to}, nil
}

type rangeIterator struct {
	iterator.Guard
	pos      ast.Position
	from, to iterator.RuntimeIterator

	cur, end int64
	started  bool
}

func (r *rangeIterator) Open(ctx interface{}) error {
	if err := r.Guard.MarkOpen(); err != nil {
		return err
	}
	fv, fOK, err := singletonOf(r.from, ctx, r.pos)
	if err != nil {
		return err
	}
	tv, tOK, err := singletonOf(r.to, ctx, r.pos)
	if err != nil {
		return err
	}
	if !fOK || !tOK {
		return jerrors.NewDynamicError(r.pos, "range bounds must be integer singletons")
	}
	fi, ok := fv.(item.Integer)
	if !ok {
		return jerrors.NewTypeError(r.pos, "range lower bound must be an integer, got %s", fv.Kind())
	}
	ti, ok := tv.(item.Integer)
	if !ok {
		return jerrors.NewTypeError(r.pos, "range upper bound must be an integer, got %s", tv.Kind())
	}
	r.cur = fi.Value - 1
	r.end = ti.Value
	return nil
}

func (r *rangeIterator) HasNext() (bool, error) {
	if err := r.Guard.RequireOpen(); err != nil {
		return false, err
	}
	return r.cur+1 <= r.end, nil
}

func (r *rangeIterator) Next() (item.Item, error) {
	if err := r.Guard.RequireOpen(); err != nil {
		return nil, err
	}
	r.cur++
	return item.NewInteger(r.cur), nil
}

func (r *rangeIterator) Close() error { r.Guard.MarkClosed(); return nil }

func (r *rangeIterator) Reset() error {
	return jerrors.NewNotRewindable("range iterator does not support reset; rebuild instead")
}

func (r *rangeIterator) IsRDD() bool                                        { return false }
func (r *rangeIterator) GetRDD() (distributed.PartitionedCollection, error) { return nil, nil }
func (r *rangeIterator) IsDataFrame() bool                                  { return false }
func (r *rangeIterator) GetDataFrame() (distributed.DataFrame, error)       { return nil, nil }
func (r *rangeIterator) ExecutionKind() iterator.ExecutionKind              { return iterator.ExecutionLocal }
